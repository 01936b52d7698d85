package videos

import (
	"context"

	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/pkg/utils"
)

// SoraRepository is the typed client for the upstream video generation API.
type SoraRepository interface {
	CreateVideo(ctx context.Context, input *models.CreateVideoInput) (*models.VideoJob, error)
	GetVideo(ctx context.Context, videoID string) (*models.VideoJob, error)
	ListVideos(ctx context.Context, params *utils.ListParams) (*models.VideoList, error)
	DeleteVideo(ctx context.Context, videoID string) (*models.VideoDeleteResponse, error)
	RemixVideo(ctx context.Context, videoID string, prompt string) (*models.VideoJob, error)
	DownloadContent(ctx context.Context, videoID string, variant models.Variant) ([]byte, error)
}
