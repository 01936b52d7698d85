package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/internal/videos"
)

type videoRedisRepo struct {
	redisClient *redis.Client
}

func NewVideoRedisRepo(redisClient *redis.Client) videos.RedisRepository {
	return &videoRedisRepo{
		redisClient: redisClient,
	}
}

func (v *videoRedisRepo) GetVideoCtx(ctx context.Context, key string) (*models.VideoJob, error) {
	videoBytes, err := v.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "videoRedisRepo.GetVideoCtx.Get")
	}
	job := &models.VideoJob{}
	if err = json.Unmarshal(videoBytes, job); err != nil {
		return nil, errors.Wrap(err, "videoRedisRepo.GetVideoCtx.Unmarshal")
	}
	return job, nil
}

func (v *videoRedisRepo) SetVideoCtx(ctx context.Context, key string, seconds int, video *models.VideoJob) error {
	videoBytes, err := json.Marshal(video)
	if err != nil {
		return errors.Wrap(err, "videoRedisRepo.SetVideoCtx.Marshal")
	}
	if err = v.redisClient.Set(ctx, key, videoBytes, time.Second*time.Duration(seconds)).Err(); err != nil {
		return errors.Wrap(err, "videoRedisRepo.SetVideoCtx.Set")
	}
	return nil
}

func (v *videoRedisRepo) DeleteVideoCtx(ctx context.Context, key string) error {
	if err := v.redisClient.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "videoRedisRepo.DeleteVideoCtx.Del")
	}
	return nil
}
