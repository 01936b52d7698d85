package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/ohmnow/content-gen/internal/middleware"
	"github.com/ohmnow/content-gen/internal/poller"
	videoHttp "github.com/ohmnow/content-gen/internal/videos/delivery/http"
	videoRepository "github.com/ohmnow/content-gen/internal/videos/repository"
	videoUsecase "github.com/ohmnow/content-gen/internal/videos/usecase"
	"github.com/ohmnow/content-gen/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	soraRepo := videoRepository.NewSoraRepository(s.cfg, nil)
	storageRepo, err := videoRepository.NewFileRepository(s.cfg)
	if err != nil {
		return err
	}
	redisRepo := videoRepository.NewVideoRedisRepo(s.redisClient)

	videoPoller := poller.New(soraRepo, s.cfg, s.logger)
	videoUC := videoUsecase.NewVideoUseCase(s.cfg, soraRepo, storageRepo, redisRepo, videoPoller, s.logger)
	videoHandlers := videoHttp.NewVideoHandlers(s.cfg, videoUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/videos")

	videoHttp.MapVideoRoutes(videoGroup, videoHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK", "version": s.cfg.Server.AppVersion})
	})
	return nil
}
