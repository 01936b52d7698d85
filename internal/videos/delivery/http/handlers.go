package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/internal/videos"
	"github.com/ohmnow/content-gen/pkg/httpErrors"
	"github.com/ohmnow/content-gen/pkg/logger"
	"github.com/ohmnow/content-gen/pkg/utils"
)

type videoHandlers struct {
	cfg     *config.Config
	videoUC videos.UseCase
	logger  logger.Logger
}

func NewVideoHandlers(cfg *config.Config, videoUC videos.UseCase, log logger.Logger) videos.Handlers {
	return &videoHandlers{
		cfg:     cfg,
		videoUC: videoUC,
		logger:  log,
	}
}

func (h *videoHandlers) CreateVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.CreateVideoInput{
			Prompt:  c.FormValue("prompt"),
			Model:   c.FormValue("model"),
			Size:    c.FormValue("size"),
			Seconds: h.cfg.Sora.DefaultSeconds,
		}
		if input.Model == "" {
			input.Model = h.cfg.Sora.DefaultModel
		}
		if input.Size == "" {
			input.Size = h.cfg.Sora.DefaultSize
		}
		if raw := c.FormValue("seconds"); raw != "" {
			seconds, err := strconv.Atoi(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError(fmt.Sprintf("invalid seconds: %q", raw)))
			}
			input.Seconds = seconds
		}

		fileHeader, err := c.FormFile("input_reference")
		if err == nil && fileHeader != nil {
			if fileHeader.Size > h.cfg.Sora.MaxFileSize {
				return c.JSON(http.StatusRequestEntityTooLarge, httpErrors.NewRestError(
					http.StatusRequestEntityTooLarge,
					fmt.Sprintf("file too large, maximum size is %d bytes", h.cfg.Sora.MaxFileSize),
				))
			}
			mimeType := fileHeader.Header.Get("Content-Type")
			if !strings.HasPrefix(mimeType, "image/") {
				return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError("input reference must be an image"))
			}
			file, err := fileHeader.Open()
			if err != nil {
				h.logger.Errorf("CreateVideo - open reference: %v, RequestID: %s", err, utils.GetRequestID(c))
				return c.JSON(httpErrors.ErrorResponse(err))
			}
			defer file.Close()
			content, err := io.ReadAll(file)
			if err != nil {
				h.logger.Errorf("CreateVideo - read reference: %v, RequestID: %s", err, utils.GetRequestID(c))
				return c.JSON(httpErrors.ErrorResponse(err))
			}
			input.InputReference = content
			input.ReferenceMIME = mimeType
			input.ReferenceName = fileHeader.Filename
		}

		job, err := h.videoUC.CreateVideo(c.Request().Context(), input)
		if err != nil {
			h.logger.Errorf("CreateVideo: %v, RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusCreated, job)
	}
}

func (h *videoHandlers) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := h.videoUC.GetVideo(c.Request().Context(), c.Param("video_id"))
		if err != nil {
			h.logger.Errorf("GetVideoByID: %v, RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *videoHandlers) PollVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		timeout := h.cfg.Poller.DefaultTimeout
		if raw := c.QueryParam("timeout"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > h.cfg.Poller.MaxTimeout {
				return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError(
					fmt.Sprintf("timeout must be between 1 and %d seconds", h.cfg.Poller.MaxTimeout),
				))
			}
			timeout = parsed
		}

		job, err := h.videoUC.PollVideo(c.Request().Context(), c.Param("video_id"), time.Duration(timeout)*time.Second)
		if err != nil {
			h.logger.Errorf("PollVideo: %v, RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *videoHandlers) DownloadContent() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID := c.Param("video_id")
		variant := models.Variant(c.QueryParam("variant"))
		if variant == "" {
			variant = models.VariantVideo
		}

		content, contentType, err := h.videoUC.DownloadContent(c.Request().Context(), videoID, variant)
		if err != nil {
			h.logger.Errorf("DownloadContent: %v, RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}

		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%s.%s", videoID, variant, variant)))
		return c.Blob(http.StatusOK, contentType, content)
	}
}

func (h *videoHandlers) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := utils.GetListParamsFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError(err.Error()))
		}
		list, err := h.videoUC.ListVideos(c.Request().Context(), params)
		if err != nil {
			h.logger.Errorf("ListVideos: %v, RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *videoHandlers) DeleteVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := h.videoUC.DeleteVideo(c.Request().Context(), c.Param("video_id"))
		if err != nil {
			h.logger.Errorf("DeleteVideo: %v, RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, res)
	}
}

func (h *videoHandlers) RemixVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.RemixVideoInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError("invalid request payload"))
		}

		remix, err := h.videoUC.RemixVideo(c.Request().Context(), c.Param("video_id"), input)
		if err != nil {
			h.logger.Errorf("RemixVideo: %v, RequestID: %s", err, utils.GetRequestID(c))
			// A not-completed source is a client mistake on this endpoint.
			if errors.Is(err, httpErrors.ErrConflict) {
				return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError(err.Error()))
			}
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusCreated, remix)
	}
}
