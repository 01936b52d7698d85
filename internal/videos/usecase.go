package videos

import (
	"context"
	"time"

	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/pkg/utils"
)

type UseCase interface {
	CreateVideo(ctx context.Context, input *models.CreateVideoInput) (*models.VideoJob, error)
	GetVideo(ctx context.Context, videoID string) (*models.VideoJob, error)
	PollVideo(ctx context.Context, videoID string, timeout time.Duration) (*models.VideoJob, error)
	DownloadContent(ctx context.Context, videoID string, variant models.Variant) ([]byte, string, error)
	ListVideos(ctx context.Context, params *utils.ListParams) (*models.VideoList, error)
	DeleteVideo(ctx context.Context, videoID string) (*models.VideoDeleteResponse, error)
	RemixVideo(ctx context.Context, videoID string, input *models.RemixVideoInput) (*models.VideoJob, error)
}
