package videos

import "github.com/labstack/echo/v4"

type Handlers interface {
	CreateVideo() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	PollVideo() echo.HandlerFunc
	DownloadContent() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	DeleteVideo() echo.HandlerFunc
	RemixVideo() echo.HandlerFunc
}
