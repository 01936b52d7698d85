package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/models"
	"github.com/ohmnow/content-gen/internal/videos"
	"github.com/ohmnow/content-gen/pkg/httpErrors"
	"github.com/ohmnow/content-gen/pkg/utils"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultAPITimeout = 120 * time.Second
	videosPath        = "/videos"
	defaultSeconds    = "4"
)

type soraRepository struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewSoraRepository builds the upstream job client. Passing a nil httpClient
// gets a plain client with a generous timeout; content downloads can be slow.
func NewSoraRepository(cfg *config.Config, httpClient *http.Client) videos.SoraRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultAPITimeout}
	}
	baseURL := strings.TrimRight(cfg.Sora.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &soraRepository{
		client:  httpClient,
		baseURL: baseURL,
		apiKey:  cfg.Sora.APIKey,
	}
}

// videoJobResponse declares every field the provider may return, optional
// ones as pointers. Seconds stays raw because the provider has returned it
// both as a number and as a string.
type videoJobResponse struct {
	ID                 string          `json:"id"`
	Object             string          `json:"object"`
	Status             string          `json:"status"`
	Model              string          `json:"model"`
	Progress           *float64        `json:"progress"`
	CreatedAt          int64           `json:"created_at"`
	CompletedAt        *int64          `json:"completed_at"`
	ExpiresAt          *int64          `json:"expires_at"`
	Size               string          `json:"size"`
	Seconds            json.RawMessage `json:"seconds"`
	RemixedFromVideoID string          `json:"remixed_from_video_id"`
	Error              *videoJobError  `json:"error"`
}

type videoJobError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type videoListResponse struct {
	Object  string             `json:"object"`
	Data    []videoJobResponse `json:"data"`
	HasMore bool               `json:"has_more"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (s *soraRepository) CreateVideo(ctx context.Context, input *models.CreateVideoInput) (*models.VideoJob, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"prompt":  input.Prompt,
		"model":   input.Model,
		"seconds": strconv.Itoa(input.Seconds),
		"size":    input.Size,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, errors.Wrap(err, "soraRepository.CreateVideo.WriteField")
		}
	}

	if len(input.InputReference) > 0 {
		filename := input.ReferenceName
		if filename == "" {
			filename = "reference"
		}
		mimeType := input.ReferenceMIME
		if mimeType == "" {
			mimeType = http.DetectContentType(input.InputReference)
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf("form-data; name=%q; filename=%q", "input_reference", filename))
		header.Set("Content-Type", mimeType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, errors.Wrap(err, "soraRepository.CreateVideo.CreatePart")
		}
		if _, err = part.Write(input.InputReference); err != nil {
			return nil, errors.Wrap(err, "soraRepository.CreateVideo.WriteReference")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "soraRepository.CreateVideo.CloseWriter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+videosPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.CreateVideo.NewRequest")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return s.doJobRequest(req)
}

func (s *soraRepository) GetVideo(ctx context.Context, videoID string) (*models.VideoJob, error) {
	endpoint := fmt.Sprintf("%s%s/%s", s.baseURL, videosPath, url.PathEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.GetVideo.NewRequest")
	}
	return s.doJobRequest(req)
}

func (s *soraRepository) ListVideos(ctx context.Context, params *utils.ListParams) (*models.VideoList, error) {
	endpoint, err := url.Parse(s.baseURL + videosPath)
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.ListVideos.ParseURL")
	}
	query := endpoint.Query()
	query.Set("limit", strconv.Itoa(params.Limit))
	query.Set("order", params.Order)
	if params.After != "" {
		query.Set("after", params.After)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.ListVideos.NewRequest")
	}
	raw, err := s.do(req)
	if err != nil {
		return nil, err
	}

	var page videoListResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, errors.Wrap(err, "soraRepository.ListVideos.Unmarshal")
	}
	list := &models.VideoList{
		Object:  "list",
		Data:    make([]*models.VideoJob, 0, len(page.Data)),
		HasMore: page.HasMore,
	}
	for i := range page.Data {
		list.Data = append(list.Data, normalizeVideoJob(&page.Data[i]))
	}
	return list, nil
}

func (s *soraRepository) DeleteVideo(ctx context.Context, videoID string) (*models.VideoDeleteResponse, error) {
	endpoint := fmt.Sprintf("%s%s/%s", s.baseURL, videosPath, url.PathEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.DeleteVideo.NewRequest")
	}
	if _, err = s.do(req); err != nil {
		return nil, err
	}
	return &models.VideoDeleteResponse{
		ID:      videoID,
		Object:  "video",
		Deleted: true,
	}, nil
}

func (s *soraRepository) RemixVideo(ctx context.Context, videoID string, prompt string) (*models.VideoJob, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.RemixVideo.Marshal")
	}
	endpoint := fmt.Sprintf("%s%s/%s/remix", s.baseURL, videosPath, url.PathEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.RemixVideo.NewRequest")
	}
	req.Header.Set("Content-Type", "application/json")
	return s.doJobRequest(req)
}

func (s *soraRepository) DownloadContent(ctx context.Context, videoID string, variant models.Variant) ([]byte, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s%s/%s/content", s.baseURL, videosPath, url.PathEscape(videoID)))
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.DownloadContent.ParseURL")
	}
	query := endpoint.Query()
	query.Set("variant", string(variant))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "soraRepository.DownloadContent.NewRequest")
	}
	return s.do(req)
}

func (s *soraRepository) doJobRequest(req *http.Request) (*models.VideoJob, error) {
	raw, err := s.do(req)
	if err != nil {
		return nil, err
	}
	var job videoJobResponse
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, errors.Wrap(err, "soraRepository.doJobRequest.Unmarshal")
	}
	if job.ID == "" {
		return nil, errors.Wrap(httpErrors.ErrUpstream, "upstream response missing job id")
	}
	return normalizeVideoJob(&job), nil
}

func (s *soraRepository) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(httpErrors.ErrUpstream, "request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(httpErrors.ErrUpstream, "read response: %v", err)
	}
	if resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

// parseAPIError converts the provider's error body into a typed error kind.
// Upstream 404 is the only status with a dedicated kind.
func parseAPIError(status int, raw []byte) error {
	message := strings.TrimSpace(string(raw))
	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}
	if status == http.StatusNotFound {
		return errors.Wrap(httpErrors.ErrNotFound, message)
	}
	return errors.Wrapf(httpErrors.ErrUpstream, "upstream status %d: %s", status, message)
}

// normalizeVideoJob converts the provider shape into the canonical record.
// Every optional field gets an explicit default here so nothing upstream of
// this function has to probe for presence.
func normalizeVideoJob(resp *videoJobResponse) *models.VideoJob {
	job := &models.VideoJob{
		ID:                 resp.ID,
		Object:             resp.Object,
		Status:             models.VideoStatus(resp.Status),
		Model:              resp.Model,
		CreatedAt:          resp.CreatedAt,
		CompletedAt:        resp.CompletedAt,
		ExpiresAt:          resp.ExpiresAt,
		Size:               resp.Size,
		Seconds:            normalizeSeconds(resp.Seconds),
		RemixedFromVideoID: resp.RemixedFromVideoID,
	}
	if job.Object == "" {
		job.Object = "video"
	}
	if resp.Progress != nil {
		progress := int(*resp.Progress)
		job.Progress = &progress
	}
	if resp.Error != nil {
		job.Error = &models.VideoError{
			Message: resp.Error.Message,
			Type:    resp.Error.Type,
		}
	}
	return job
}

// normalizeSeconds accepts "4", 4 or 4.0 from the wire and always emits a
// string form of the duration.
func normalizeSeconds(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return defaultSeconds
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if n, err := asNumber.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return asNumber.String()
	}
	return defaultSeconds
}
