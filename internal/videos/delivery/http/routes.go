package http

import (
	"github.com/labstack/echo/v4"

	"github.com/ohmnow/content-gen/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handlers) {
	videoGroup.POST("", h.CreateVideo())
	videoGroup.GET("", h.ListVideos())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.GET("/:video_id/poll", h.PollVideo())
	videoGroup.GET("/:video_id/content", h.DownloadContent())
	videoGroup.DELETE("/:video_id", h.DeleteVideo())
	videoGroup.POST("/:video_id/remix", h.RemixVideo())
}
