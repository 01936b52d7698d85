package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/internal/videos"
	"github.com/ohmnow/content-gen/pkg/httpErrors"
	"github.com/ohmnow/content-gen/pkg/utils"
)

var variantExtensions = map[models.Variant]string{
	models.VariantVideo:       ".mp4",
	models.VariantThumbnail:   ".webp",
	models.VariantSpritesheet: ".jpg",
}

var variantContentTypes = map[models.Variant]string{
	models.VariantVideo:       "video/mp4",
	models.VariantThumbnail:   "image/webp",
	models.VariantSpritesheet: "image/jpeg",
}

type fileRepository struct {
	storagePath  string
	maxDiskUsage float64
}

func NewFileRepository(cfg *config.Config) (videos.StorageRepository, error) {
	if err := os.MkdirAll(cfg.Storage.VideoPath, 0o755); err != nil {
		return nil, errors.Wrap(err, "fileRepository.MkdirAll")
	}
	return &fileRepository{
		storagePath:  cfg.Storage.VideoPath,
		maxDiskUsage: cfg.Storage.MaxDiskUsage,
	}, nil
}

// filename is deterministic per (video id, variant) so DeleteVideoFiles'
// glob matches exactly what SaveVideo produced for that id.
func (f *fileRepository) filename(videoID string, variant models.Variant) string {
	ext, ok := variantExtensions[variant]
	if !ok {
		ext = ".bin"
	}
	return fmt.Sprintf("%s_%s%s", videoID, variant, ext)
}

func (f *fileRepository) GetVideoPath(videoID string, variant models.Variant) (string, bool) {
	path := filepath.Join(f.storagePath, f.filename(videoID, variant))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (f *fileRepository) SaveVideo(videoID string, content []byte, variant models.Variant) (string, error) {
	if ok, usage := utils.CheckDiskUsage(f.storagePath, f.maxDiskUsage); !ok {
		return "", errors.Wrapf(httpErrors.ErrStorage, "storage volume at %.1f%% usage, refusing to cache", usage)
	}
	path := filepath.Join(f.storagePath, f.filename(videoID, variant))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.Wrapf(httpErrors.ErrStorage, "write %s: %v", path, err)
	}
	return path, nil
}

func (f *fileRepository) DeleteVideoFiles(videoID string) (int, error) {
	pattern := filepath.Join(f.storagePath, videoID+"_*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, errors.Wrapf(httpErrors.ErrStorage, "glob %s: %v", pattern, err)
	}
	deleted := 0
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			return deleted, errors.Wrapf(httpErrors.ErrStorage, "remove %s: %v", path, err)
		}
		deleted++
	}
	return deleted, nil
}

func (f *fileRepository) ContentType(variant models.Variant) string {
	if contentType, ok := variantContentTypes[variant]; ok {
		return contentType
	}
	return "application/octet-stream"
}
