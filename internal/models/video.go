package models

type VideoStatus string

const (
	StatusQueued     VideoStatus = "queued"
	StatusInProgress VideoStatus = "in_progress"
	StatusCompleted  VideoStatus = "completed"
	StatusFailed     VideoStatus = "failed"
)

// Terminal reports whether the upstream provider will never change the
// status again.
func (s VideoStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type Variant string

const (
	VariantVideo       Variant = "video"
	VariantThumbnail   Variant = "thumbnail"
	VariantSpritesheet Variant = "spritesheet"
)

func (v Variant) Valid() bool {
	switch v {
	case VariantVideo, VariantThumbnail, VariantSpritesheet:
		return true
	}
	return false
}

type VideoError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// VideoJob is the canonical job record. The provider owns every field; the
// backend never mutates status locally.
type VideoJob struct {
	ID                 string      `json:"id"`
	Object             string      `json:"object"`
	Status             VideoStatus `json:"status"`
	Model              string      `json:"model"`
	Progress           *int        `json:"progress,omitempty"`
	CreatedAt          int64       `json:"created_at"`
	CompletedAt        *int64      `json:"completed_at,omitempty"`
	ExpiresAt          *int64      `json:"expires_at,omitempty"`
	Size               string      `json:"size"`
	Seconds            string      `json:"seconds"`
	RemixedFromVideoID string      `json:"remixed_from_video_id,omitempty"`
	Error              *VideoError `json:"error,omitempty"`
}

type VideoList struct {
	Object  string      `json:"object"`
	Data    []*VideoJob `json:"data"`
	HasMore bool        `json:"has_more"`
}

type VideoDeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type CreateVideoInput struct {
	Prompt         string `json:"prompt" validate:"required,min=1,max=2000"`
	Model          string `json:"model" validate:"required,oneof=sora-2 sora-2-pro"`
	Seconds        int    `json:"seconds" validate:"required,oneof=4 8 12"`
	Size           string `json:"size" validate:"required"`
	InputReference []byte `json:"-"`
	ReferenceMIME  string `json:"-"`
	ReferenceName  string `json:"-"`
}

type RemixVideoInput struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}
