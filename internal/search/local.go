package search

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jjtimmons/seqtools/config"
	"github.com/pkg/errors"
)

// killWait bounds how long a killed blastn's output pipes are waited on
const killWait = 500 * time.Millisecond

// Local runs searches with a blastn executable on this machine. Each search
// is a blastn child process writing to an output file in the work dir.
type Local struct {
	conf *config.SearchConfig

	mu   sync.Mutex
	jobs map[JobID]*localJob
}

// localJob is a single running (or finished) blastn process
type localJob struct {
	// the path to the input FASTA file
	in string

	// the path for the BLAST output
	out string

	// the blastn process
	cmd *exec.Cmd

	// kills the process
	cancel context.CancelFunc

	// closed when the process exits
	done chan struct{}

	// err is the process' exit error, with its stderr
	err error
}

// NewLocal returns a Service that runs c.Blastn against the db at c.Database
func NewLocal(c *config.SearchConfig) *Local {
	return &Local{
		conf: c,
		jobs: make(map[JobID]*localJob),
	}
}

// Submit writes q to an input file and starts blastn on it
func (l *Local) Submit(ctx context.Context, q Query) (JobID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// make sure the blast executable exists
	blastn, err := exec.LookPath(l.conf.Blastn)
	if err != nil {
		return "", errors.Wrapf(err, "failed to find a BLAST executable at %s", l.conf.Blastn)
	}

	if err := os.MkdirAll(l.conf.WorkDir, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "failed to create BLAST dir %s", l.conf.WorkDir)
	}

	id := JobID(uuid.New().String())
	job := &localJob{
		in:   filepath.Join(l.conf.WorkDir, string(id)+".input.fa"),
		out:  filepath.Join(l.conf.WorkDir, string(id)+".output"),
		done: make(chan struct{}),
	}

	// create the query sequence file
	file := fmt.Sprintf(">%s\n%s\n", q.ID(), q.String())
	if err := os.WriteFile(job.in, []byte(file), 0666); err != nil {
		return "", errors.Wrapf(err, "failed at creating BLAST input file at %s", job.in)
	}

	threads := runtime.NumCPU() - 1
	if threads < 1 {
		threads = 1
	}

	// the process outlives Submit's ctx, so it's stopped through Cancel
	procCtx, cancel := context.WithCancel(context.Background())

	// https://www.ncbi.nlm.nih.gov/books/NBK279682/
	cmd := exec.CommandContext(
		procCtx,
		blastn,
		"-task", l.conf.Program,
		"-db", l.conf.Database,
		"-query", job.in,
		"-out", job.out,
		"-outfmt", "7",
		"-num_threads", strconv.Itoa(threads),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = killWait
	job.cmd = cmd
	job.cancel = cancel

	if err := cmd.Start(); err != nil {
		cancel()
		os.Remove(job.in)
		return "", errors.Wrap(err, "failed to start BLAST")
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			job.err = errors.Errorf("%v: %s", err, stderr.String())
		}
		cancel()
		close(job.done)
	}()

	l.mu.Lock()
	l.jobs[id] = job
	l.mu.Unlock()

	return id, nil
}

// Poll reports whether the blastn process for id has exited. Once it has,
// the output file is read into the result and the job's files are removed
func (l *Local) Poll(ctx context.Context, id JobID) (*RawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	job, ok := l.jobs[id]
	l.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("no BLAST job %s", id)
	}

	select {
	case <-job.done:
	default:
		return &RawResult{ID: id, Status: Waiting}, nil
	}

	l.mu.Lock()
	delete(l.jobs, id)
	l.mu.Unlock()
	defer os.Remove(job.in)
	defer os.Remove(job.out)

	if job.err != nil {
		return &RawResult{ID: id, Status: Failed, Message: job.err.Error()}, nil
	}

	body, err := os.ReadFile(job.out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read BLAST output %s", job.out)
	}
	return &RawResult{ID: id, Status: Ready, Body: body}, nil
}

// Cancel kills the blastn process for id, if it's still running, and removes
// its files. Jobs that were already collected by Poll are ignored
func (l *Local) Cancel(ctx context.Context, id JobID) error {
	l.mu.Lock()
	job, ok := l.jobs[id]
	delete(l.jobs, id)
	l.mu.Unlock()
	if !ok {
		return nil
	}

	job.cancel()
	select {
	case <-job.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	for _, f := range []string{job.in, job.out} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to remove %s", f)
		}
	}
	return nil
}

// Parse reads the -outfmt 7 output of blastn
func (l *Local) Parse(r *RawResult) ([]Match, error) {
	return parseReady(r)
}

// parseReady parses the tabular body of a Ready result
func parseReady(r *RawResult) ([]Match, error) {
	if r == nil || r.Status != Ready {
		return nil, errors.New("search output isn't ready")
	}
	return ParseTabular(r.Body)
}
