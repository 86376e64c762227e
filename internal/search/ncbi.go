package search

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/jjtimmons/seqtools/config"
	"github.com/pkg/errors"
)

var (
	// ridPattern finds the request ID in a Put response
	ridPattern = regexp.MustCompile(`RID = (\S+)`)

	// statusPattern finds the job status in a SearchInfo response
	statusPattern = regexp.MustCompile(`Status=(\w+)`)

	// hitsPattern finds whether a finished job has any hits
	hitsPattern = regexp.MustCompile(`ThereAreHits=(\w+)`)
)

// NCBI runs searches against the NCBI BLAST URL API
// https://ncbi.github.io/blast-cloud/dev/api.html
type NCBI struct {
	conf   *config.SearchConfig
	client *http.Client
}

// NewNCBI returns a Service for the BLAST URL API at c.Endpoint
func NewNCBI(c *config.SearchConfig, client *http.Client) *NCBI {
	if client == nil {
		client = http.DefaultClient
	}
	return &NCBI{conf: c, client: client}
}

// Submit puts a new search for q and returns its request ID (RID)
func (n *NCBI) Submit(ctx context.Context, q Query) (JobID, error) {
	form := n.params()
	form.Set("CMD", "Put")
	form.Set("PROGRAM", n.conf.Program)
	form.Set("DATABASE", n.conf.Database)
	form.Set("QUERY", ">"+q.ID()+"\n"+q.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.conf.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := n.do(req)
	if err != nil {
		return "", err
	}

	match := ridPattern.FindSubmatch(body)
	if match == nil {
		return "", errors.New("no RID in BLAST submission response")
	}
	return JobID(match[1]), nil
}

// Poll asks for the search's status and, once it's READY, fetches its
// tabular output
func (n *NCBI) Poll(ctx context.Context, id JobID) (*RawResult, error) {
	info := n.params()
	info.Set("CMD", "Get")
	info.Set("FORMAT_OBJECT", "SearchInfo")
	info.Set("RID", string(id))

	body, err := n.get(ctx, info)
	if err != nil {
		return nil, err
	}

	match := statusPattern.FindSubmatch(body)
	if match == nil {
		return nil, errors.Errorf("no status in BLAST search info for %s", id)
	}

	switch status := string(match[1]); status {
	case "WAITING":
		return &RawResult{ID: id, Status: Waiting}, nil
	case "READY":
	default:
		// FAILED and UNKNOWN (expired or never existed)
		return &RawResult{ID: id, Status: Failed, Message: "NCBI reported " + status}, nil
	}

	if hits := hitsPattern.FindSubmatch(body); hits == nil || string(hits[1]) != "yes" {
		return &RawResult{ID: id, Status: Ready}, nil
	}

	get := n.params()
	get.Set("CMD", "Get")
	get.Set("FORMAT_TYPE", "Tabular")
	get.Set("RID", string(id))

	out, err := n.get(ctx, get)
	if err != nil {
		return nil, err
	}
	return &RawResult{ID: id, Status: Ready, Body: out}, nil
}

// Parse reads the tabular output of a finished search
func (n *NCBI) Parse(r *RawResult) ([]Match, error) {
	return parseReady(r)
}

// Cancel is a no-op: the URL API can't stop a search, and NCBI drops
// unclaimed results on its own
func (n *NCBI) Cancel(ctx context.Context, id JobID) error {
	return nil
}

// params are the parameters sent with every request
func (n *NCBI) params() url.Values {
	v := url.Values{}
	if n.conf.Tool != "" {
		v.Set("TOOL", n.conf.Tool)
	}
	if n.conf.Email != "" {
		v.Set("EMAIL", n.conf.Email)
	}
	return v
}

// get makes a GET request with query parameters v
func (n *NCBI) get(ctx context.Context, v url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.conf.Endpoint+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return n.do(req)
}

// do sends req and returns the response body, failing on non-200 responses
func (n *NCBI) do(req *http.Request) ([]byte, error) {
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach BLAST service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read BLAST response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected BLAST response status %s", resp.Status)
	}
	return body, nil
}
