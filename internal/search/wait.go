package search

import (
	"context"
	"io"
	"time"

	"github.com/jjtimmons/seqtools/config"
	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	pb "gopkg.in/cheggaaa/pb.v1"
)

// Watcher draws a progress bar, one step per poll, while a search runs
type Watcher struct {
	out io.Writer
}

// NewWatcher returns a Watcher that draws to out
func NewWatcher(out io.Writer) *Watcher {
	return &Watcher{out: out}
}

// start returns a started bar with total steps, or nil for a nil Watcher
func (w *Watcher) start(id JobID, total int) *pb.ProgressBar {
	if w == nil || w.out == nil {
		return nil
	}
	bar := pb.New(total).Prefix("BLAST " + string(id) + " ")
	bar.Output = w.out
	bar.ShowSpeed = false
	bar.ShowTimeLeft = false
	bar.Start()
	return bar
}

// Wait polls svc until the search id is Ready, waiting longer between each
// poll from c.PollMin up to c.PollMax. It gives up after c.MaxPolls polls.
// A Failed search returns ErrFailed
func Wait(ctx context.Context, svc Service, id JobID, c *config.SearchConfig, w *Watcher) (*RawResult, error) {
	maxPolls := c.MaxPolls
	if maxPolls < 1 {
		maxPolls = 1
	}

	b := &backoff.Backoff{
		Min:    c.PollMin,
		Max:    c.PollMax,
		Factor: 2,
	}

	bar := w.start(id, maxPolls)
	if bar != nil {
		defer bar.Finish()
	}

	for poll := 0; poll < maxPolls; poll++ {
		res, err := svc.Poll(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to poll search %s", id)
		}
		if bar != nil {
			bar.Increment()
		}

		switch res.Status {
		case Ready:
			if bar != nil {
				bar.Set(maxPolls)
			}
			return res, nil
		case Failed:
			return nil, errors.Wrapf(ErrFailed, "%s: %s", id, res.Message)
		}

		if poll == maxPolls-1 {
			break
		}

		timer := time.NewTimer(b.Duration())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, errors.Errorf("search %s not ready after %d polls", id, maxPolls)
}
