package poller

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/pkg/httpErrors"
	"github.com/ohmnow/content-gen/pkg/logger"
)

type fakeRetriever struct {
	calls    int
	statuses []models.VideoStatus
	err      error
}

func (f *fakeRetriever) GetVideo(ctx context.Context, videoID string) (*models.VideoJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	status := f.statuses[len(f.statuses)-1]
	if f.calls < len(f.statuses) {
		status = f.statuses[f.calls]
	}
	f.calls++
	return &models.VideoJob{ID: videoID, Status: status}, nil
}

func newTestPoller(retriever StatusRetriever) *Poller {
	return New(retriever, &config.Config{
		Poller: config.PollerConfig{InitialInterval: 2, MaxInterval: 10},
	}, logger.NewNopLogger())
}

func TestPollUntilCompleteTerminalImmediately(t *testing.T) {
	retriever := &fakeRetriever{statuses: []models.VideoStatus{models.StatusCompleted}}
	p := newTestPoller(retriever)

	var slept []time.Duration
	p.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	job, err := p.PollUntilComplete(context.Background(), "video_1", 0)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, job.Status)
	require.Equal(t, 1, retriever.calls)
	require.Empty(t, slept, "terminal on first check must not sleep")
}

func TestPollUntilCompleteBackoffSequence(t *testing.T) {
	retriever := &fakeRetriever{statuses: []models.VideoStatus{
		models.StatusQueued,
		models.StatusInProgress,
		models.StatusInProgress,
		models.StatusInProgress,
		models.StatusInProgress,
		models.StatusInProgress,
		models.StatusCompleted,
	}}
	p := newTestPoller(retriever)

	var slept []time.Duration
	p.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	job, err := p.PollUntilComplete(context.Background(), "video_1", time.Hour)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, job.Status)

	want := []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}
	require.Equal(t, want, slept)
}

func TestPollUntilCompleteTimeout(t *testing.T) {
	retriever := &fakeRetriever{statuses: []models.VideoStatus{models.StatusInProgress}}
	p := &Poller{
		retriever:       retriever,
		initialInterval: 5 * time.Millisecond,
		maxInterval:     10 * time.Millisecond,
		logger:          logger.NewNopLogger(),
		sleep:           sleepContext,
	}

	start := time.Now()
	_, err := p.PollUntilComplete(context.Background(), "video_1", 30*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	require.ErrorIs(t, err, httpErrors.ErrTimeout)
	require.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	require.GreaterOrEqual(t, retriever.calls, 1, "first status check always happens")
}

func TestPollUntilCompleteZeroTimeoutStillChecksOnce(t *testing.T) {
	retriever := &fakeRetriever{statuses: []models.VideoStatus{models.StatusInProgress}}
	p := newTestPoller(retriever)
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	_, err := p.PollUntilComplete(context.Background(), "video_1", 0)
	require.ErrorIs(t, err, httpErrors.ErrTimeout)
	require.Equal(t, 1, retriever.calls)
}

func TestPollUntilCompleteRetrieveErrorPropagates(t *testing.T) {
	wrapped := errors.Wrap(httpErrors.ErrNotFound, "video video_missing")
	retriever := &fakeRetriever{err: wrapped}
	p := newTestPoller(retriever)

	_, err := p.PollUntilComplete(context.Background(), "video_missing", time.Minute)
	require.ErrorIs(t, err, httpErrors.ErrNotFound)
}

func TestPollUntilCompleteFailedIsTerminal(t *testing.T) {
	retriever := &fakeRetriever{statuses: []models.VideoStatus{models.StatusFailed}}
	p := newTestPoller(retriever)
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	job, err := p.PollUntilComplete(context.Background(), "video_1", time.Minute)
	require.NoError(t, err)
	require.Equal(t, models.StatusFailed, job.Status)
}

func TestPollUntilCompleteContextCancelled(t *testing.T) {
	retriever := &fakeRetriever{statuses: []models.VideoStatus{models.StatusInProgress}}
	p := newTestPoller(retriever)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PollUntilComplete(ctx, "video_1", time.Minute)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
