package videos

import (
	"context"

	"github.com/ohmnow/content-gen/internal/models"
)

// RedisRepository caches terminal job records. Non-terminal jobs are never
// stored so a cached read can never mask an upstream status transition.
type RedisRepository interface {
	GetVideoCtx(ctx context.Context, key string) (*models.VideoJob, error)
	SetVideoCtx(ctx context.Context, key string, seconds int, video *models.VideoJob) error
	DeleteVideoCtx(ctx context.Context, key string) error
}
