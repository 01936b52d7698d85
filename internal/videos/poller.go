package videos

import (
	"context"
	"time"

	"github.com/ohmnow/content-gen/internal/models"
)

// Poller blocks until a job is terminal or the timeout elapses.
type Poller interface {
	PollUntilComplete(ctx context.Context, videoID string, timeout time.Duration) (*models.VideoJob, error)
}
