package poller

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/pkg/httpErrors"
	"github.com/ohmnow/content-gen/pkg/logger"
)

const (
	defaultInitialInterval = 2 * time.Second
	defaultMaxInterval     = 10 * time.Second
)

// StatusRetriever fetches a fresh job record from the upstream provider.
// It is deliberately narrower than the full repository so the poller cannot
// reach any cached state.
type StatusRetriever interface {
	GetVideo(ctx context.Context, videoID string) (*models.VideoJob, error)
}

// Poller blocks a caller until a job reaches a terminal state or a deadline
// elapses, backing off geometrically between status checks.
type Poller struct {
	retriever       StatusRetriever
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          logger.Logger
	sleep           func(ctx context.Context, d time.Duration) error
}

func New(retriever StatusRetriever, cfg *config.Config, log logger.Logger) *Poller {
	initial := time.Duration(cfg.Poller.InitialInterval) * time.Second
	if initial <= 0 {
		initial = defaultInitialInterval
	}
	max := time.Duration(cfg.Poller.MaxInterval) * time.Second
	if max <= 0 {
		max = defaultMaxInterval
	}
	return &Poller{
		retriever:       retriever,
		initialInterval: initial,
		maxInterval:     max,
		logger:          log,
		sleep:           sleepContext,
	}
}

// PollUntilComplete retrieves the job status until it is terminal. The
// deadline is checked against the wall clock before every retrieve except
// the first, so even timeout=0 gets one status check. Intervals grow
// 2s,4s,8s then cap at 10s; no jitter, no retry cap beyond the deadline.
// Retrieval errors propagate as-is.
func (p *Poller) PollUntilComplete(ctx context.Context, videoID string, timeout time.Duration) (*models.VideoJob, error) {
	p.logger.Infof("starting poll for video %s, timeout: %s", videoID, timeout)

	start := time.Now()
	interval := p.initialInterval

	for attempt := 0; ; attempt++ {
		if attempt > 0 && time.Since(start) > timeout {
			p.logger.Warnf("polling timeout reached for video %s after %s", videoID, time.Since(start).Round(time.Millisecond))
			return nil, errors.Wrapf(httpErrors.ErrTimeout, "polling timeout after %s", timeout)
		}

		job, err := p.retriever.GetVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			p.logger.Infof("video %s finished with status: %s", videoID, job.Status)
			return job, nil
		}
		p.logger.Debugf("video %s status: %s, next check in %s", videoID, job.Status, interval)

		if err := p.sleep(ctx, interval); err != nil {
			return nil, errors.Wrap(err, "poller.PollUntilComplete.sleep")
		}
		interval *= 2
		if interval > p.maxInterval {
			interval = p.maxInterval
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
