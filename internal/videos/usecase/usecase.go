package usecase

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/internal/videos"
	"github.com/ohmnow/content-gen/pkg/httpErrors"
	"github.com/ohmnow/content-gen/pkg/logger"
	"github.com/ohmnow/content-gen/pkg/utils"
)

const videoCachePrefix = "videos:"

type videoUC struct {
	cfg           *config.Config
	soraRepo      videos.SoraRepository
	storageRepo   videos.StorageRepository
	redisRepo     videos.RedisRepository
	poller        videos.Poller
	logger        logger.Logger
	downloadGroup singleflight.Group
}

func NewVideoUseCase(
	cfg *config.Config,
	soraRepo videos.SoraRepository,
	storageRepo videos.StorageRepository,
	redisRepo videos.RedisRepository,
	poller videos.Poller,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		cfg:         cfg,
		soraRepo:    soraRepo,
		storageRepo: storageRepo,
		redisRepo:   redisRepo,
		poller:      poller,
		logger:      log,
	}
}

func (u *videoUC) CreateVideo(ctx context.Context, input *models.CreateVideoInput) (*models.VideoJob, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("CreateVideo - ValidateStruct error: %v", err)
		return nil, err
	}

	u.logger.Infof("creating video: model=%s, seconds=%d, size=%s", input.Model, input.Seconds, input.Size)
	job, err := u.soraRepo.CreateVideo(ctx, input)
	if err != nil {
		u.logger.Errorf("CreateVideo - upstream error: %v", err)
		return nil, err
	}
	u.logger.Infof("video creation started: %s, status: %s", job.ID, job.Status)
	return job, nil
}

func (u *videoUC) GetVideo(ctx context.Context, videoID string) (*models.VideoJob, error) {
	cached, err := u.redisRepo.GetVideoCtx(ctx, videoCachePrefix+videoID)
	if err != nil {
		u.logger.Warnf("GetVideo - cache read error for %s: %v", videoID, err)
	}
	if cached != nil {
		return cached, nil
	}

	job, err := u.soraRepo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	u.cacheIfTerminal(ctx, job)
	return job, nil
}

func (u *videoUC) PollVideo(ctx context.Context, videoID string, timeout time.Duration) (*models.VideoJob, error) {
	if timeout <= 0 {
		timeout = time.Duration(u.cfg.Poller.DefaultTimeout) * time.Second
	}
	if max := time.Duration(u.cfg.Poller.MaxTimeout) * time.Second; max > 0 && timeout > max {
		timeout = max
	}

	job, err := u.poller.PollUntilComplete(ctx, videoID, timeout)
	if err != nil {
		return nil, err
	}
	u.cacheIfTerminal(ctx, job)
	return job, nil
}

// DownloadContent serves a completed job's asset, local cache first. A cache
// miss downloads from the provider and writes through before responding;
// concurrent misses for the same key share a single download.
func (u *videoUC) DownloadContent(ctx context.Context, videoID string, variant models.Variant) ([]byte, string, error) {
	if !variant.Valid() {
		return nil, "", errors.Wrapf(httpErrors.ErrBadRequest, "invalid variant %q", variant)
	}

	job, err := u.GetVideo(ctx, videoID)
	if err != nil {
		return nil, "", err
	}
	if job.Status != models.StatusCompleted {
		return nil, "", errors.Wrapf(httpErrors.ErrConflict, "video is not ready for download, current status: %s", job.Status)
	}

	contentType := u.storageRepo.ContentType(variant)

	if path, ok := u.storageRepo.GetVideoPath(videoID, variant); ok {
		u.logger.Infof("serving %s for video %s from local storage: %s", variant, videoID, path)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, "", errors.Wrapf(httpErrors.ErrStorage, "read %s: %v", path, err)
		}
		return content, contentType, nil
	}

	result, err, _ := u.downloadGroup.Do(videoID+":"+string(variant), func() (interface{}, error) {
		u.logger.Infof("downloading %s for video %s from upstream", variant, videoID)
		content, err := u.soraRepo.DownloadContent(ctx, videoID, variant)
		if err != nil {
			return nil, err
		}
		path, err := u.storageRepo.SaveVideo(videoID, content, variant)
		if err != nil {
			return nil, err
		}
		u.logger.Infof("cached %d bytes of %s for video %s at %s", len(content), variant, videoID, path)
		return content, nil
	})
	if err != nil {
		u.logger.Errorf("DownloadContent - %s/%s: %v", videoID, variant, err)
		return nil, "", err
	}
	return result.([]byte), contentType, nil
}

func (u *videoUC) ListVideos(ctx context.Context, params *utils.ListParams) (*models.VideoList, error) {
	if params == nil {
		params = &utils.ListParams{Limit: 20, Order: "desc"}
	}
	u.logger.Infof("listing videos: limit=%d, after=%q, order=%s", params.Limit, params.After, params.Order)

	list, err := u.soraRepo.ListVideos(ctx, params)
	if err != nil {
		u.logger.Errorf("ListVideos - upstream error: %v", err)
		return nil, err
	}
	u.logger.Infof("retrieved %d videos, has_more: %v", len(list.Data), list.HasMore)
	return list, nil
}

// DeleteVideo removes the job upstream, then purges local variants. A purge
// failure is logged but not surfaced since the upstream delete already took
// effect.
func (u *videoUC) DeleteVideo(ctx context.Context, videoID string) (*models.VideoDeleteResponse, error) {
	res, err := u.soraRepo.DeleteVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	deleted, err := u.storageRepo.DeleteVideoFiles(videoID)
	if err != nil {
		u.logger.Errorf("DeleteVideo - purging local files for %s: %v", videoID, err)
	} else {
		u.logger.Infof("deleted %d local files for video %s", deleted, videoID)
	}

	if err := u.redisRepo.DeleteVideoCtx(ctx, videoCachePrefix+videoID); err != nil {
		u.logger.Warnf("DeleteVideo - cache invalidation for %s: %v", videoID, err)
	}
	return res, nil
}

func (u *videoUC) RemixVideo(ctx context.Context, videoID string, input *models.RemixVideoInput) (*models.VideoJob, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("RemixVideo - ValidateStruct error: %v", err)
		return nil, err
	}

	source, err := u.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if source.Status != models.StatusCompleted {
		return nil, errors.Wrapf(httpErrors.ErrConflict, "source video must be completed, current status: %s", source.Status)
	}

	remix, err := u.soraRepo.RemixVideo(ctx, videoID, input.Prompt)
	if err != nil {
		u.logger.Errorf("RemixVideo - upstream error: %v", err)
		return nil, err
	}
	u.logger.Infof("remix created: %s, remixed from: %s", remix.ID, videoID)
	return remix, nil
}

func (u *videoUC) cacheIfTerminal(ctx context.Context, job *models.VideoJob) {
	if !job.Status.Terminal() {
		return
	}
	if err := u.redisRepo.SetVideoCtx(ctx, videoCachePrefix+job.ID, u.cfg.Redis.VideoCacheTTL, job); err != nil {
		u.logger.Warnf("cache write error for %s: %v", job.ID, err)
	}
}
