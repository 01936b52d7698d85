package videos

import "github.com/ohmnow/content-gen/internal/models"

// StorageRepository is the local write-through cache for downloaded assets,
// keyed by (video id, variant).
type StorageRepository interface {
	GetVideoPath(videoID string, variant models.Variant) (string, bool)
	SaveVideo(videoID string, content []byte, variant models.Variant) (string, error)
	DeleteVideoFiles(videoID string) (int, error)
	ContentType(variant models.Variant) string
}
