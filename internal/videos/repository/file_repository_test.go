package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
)

func newTestFileRepo(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Storage: config.StorageConfig{
			VideoPath:    dir,
			MaxDiskUsage: 100,
		},
	}
	return cfg, dir
}

func TestSaveAndGetVideoPath(t *testing.T) {
	cfg, _ := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	content := []byte("fake mp4 bytes")
	path, err := repo.SaveVideo("video_1", content, models.VariantVideo)
	require.NoError(t, err)
	require.Equal(t, "video_1_video.mp4", filepath.Base(path))

	got, ok := repo.GetVideoPath("video_1", models.VariantVideo)
	require.True(t, ok)
	require.Equal(t, path, got)

	onDisk, err := os.ReadFile(got)
	require.NoError(t, err)
	require.Equal(t, content, onDisk)
}

func TestGetVideoPathMiss(t *testing.T) {
	cfg, _ := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	_, ok := repo.GetVideoPath("video_unknown", models.VariantVideo)
	require.False(t, ok)
}

func TestSaveOverwrites(t *testing.T) {
	cfg, _ := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	_, err = repo.SaveVideo("video_1", []byte("old"), models.VariantThumbnail)
	require.NoError(t, err)
	path, err := repo.SaveVideo("video_1", []byte("new"), models.VariantThumbnail)
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), onDisk)
}

func TestVariantExtensions(t *testing.T) {
	cfg, _ := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	cases := map[models.Variant]string{
		models.VariantVideo:       "video_1_video.mp4",
		models.VariantThumbnail:   "video_1_thumbnail.webp",
		models.VariantSpritesheet: "video_1_spritesheet.jpg",
		models.Variant("weird"):   "video_1_weird.bin",
	}
	for variant, want := range cases {
		path, err := repo.SaveVideo("video_1", []byte("x"), variant)
		require.NoError(t, err)
		require.Equal(t, want, filepath.Base(path))
	}
}

func TestDeleteVideoFiles(t *testing.T) {
	cfg, dir := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	for _, variant := range []models.Variant{models.VariantVideo, models.VariantThumbnail, models.VariantSpritesheet} {
		_, err := repo.SaveVideo("video_1", []byte("x"), variant)
		require.NoError(t, err)
	}
	// A different id must survive the purge.
	otherPath, err := repo.SaveVideo("video_2", []byte("x"), models.VariantVideo)
	require.NoError(t, err)

	count, err := repo.DeleteVideoFiles("video_1")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, filepath.Base(otherPath), entries[0].Name())
}

func TestDeleteVideoFilesNone(t *testing.T) {
	cfg, _ := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	count, err := repo.DeleteVideoFiles("video_unknown")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestContentType(t *testing.T) {
	cfg, _ := newTestFileRepo(t)
	repo, err := NewFileRepository(cfg)
	require.NoError(t, err)

	require.Equal(t, "video/mp4", repo.ContentType(models.VariantVideo))
	require.Equal(t, "image/webp", repo.ContentType(models.VariantThumbnail))
	require.Equal(t, "image/jpeg", repo.ContentType(models.VariantSpritesheet))
	require.Equal(t, "application/octet-stream", repo.ContentType(models.Variant("weird")))
}
