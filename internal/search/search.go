// Package search runs BLAST similarity searches for a sequence, either with a
// local blastn executable or against the NCBI BLAST URL API.
//
// Both are driven the same way: Submit a query to get a JobID, Poll the job
// until it's Ready, then Parse its tabular output into Matches. Wait and Run
// do the polling with a backoff between polls.
package search

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jjtimmons/seqtools/config"
	"github.com/pkg/errors"
)

// ErrFailed is for a search that the service reports as failed or unknown
var ErrFailed = errors.New("search failed")

// JobID identifies a submitted search
type JobID string

// Status is the state of a submitted search
type Status int

const (
	// Waiting is a search that's still running
	Waiting Status = iota

	// Ready is a finished search whose output can be parsed
	Ready

	// Failed is a search that didn't finish
	Failed
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case Ready:
		return "READY"
	case Failed:
		return "FAILED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// RawResult is the state of a search and, once Ready, its tabular output
type RawResult struct {
	ID     JobID
	Status Status

	// Body is the tabular BLAST output of a Ready search
	Body []byte

	// Message describes why a search Failed
	Message string
}

// Query is a sequence to search with
type Query interface {
	ID() string
	String() string
}

// Service submits searches and reports on them
type Service interface {
	// Submit starts a search for q
	Submit(ctx context.Context, q Query) (JobID, error)

	// Poll reports the state of a search
	Poll(ctx context.Context, id JobID) (*RawResult, error)

	// Parse reads the matches from a Ready result
	Parse(r *RawResult) ([]Match, error)

	// Cancel stops a search that's no longer waited on and frees what it holds
	Cancel(ctx context.Context, id JobID) error
}

// New returns the Service selected by c: NCBI when c.Remote is set,
// a local blastn otherwise
func New(c *config.SearchConfig) Service {
	if c.Remote {
		return NewNCBI(c, &http.Client{Timeout: time.Minute})
	}
	return NewLocal(c)
}

// cancelTimeout bounds the cleanup of a search that Run gave up on
const cancelTimeout = 5 * time.Second

// Run submits q to svc, waits for the search to finish and returns its matches
func Run(ctx context.Context, svc Service, q Query, c *config.SearchConfig, w *Watcher) ([]Match, error) {
	id, err := svc.Submit(ctx, q)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit search for %s", q.ID())
	}

	res, err := Wait(ctx, svc, id, c, w)
	if err != nil {
		// ctx may be done already, cleanup gets its own deadline
		cctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
		defer cancel()
		if cerr := svc.Cancel(cctx, id); cerr != nil {
			return nil, errors.Wrapf(err, "failed to cancel search %s (%v)", id, cerr)
		}
		return nil, err
	}
	return svc.Parse(res)
}
