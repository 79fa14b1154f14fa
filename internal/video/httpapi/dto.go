package httpapi

import "github.com/justic/video-gateway/internal/video/models"

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type GenerateResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type ListResponse struct {
	Videos []string `json:"videos"`
}

type PublishRequest struct {
	VideoKey    string `json:"video_key" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// PublishResponse reports the platform id as null rather than "" when
// the platform accepted the upload without returning one.
type PublishResponse struct {
	Status         string  `json:"status"`
	YouTubeVideoID *string `json:"youtube_video_id"`
}

type LibraryResponse struct {
	Videos []LibraryItem `json:"videos"`
}

type LibraryItem struct {
	VideoKey    string  `json:"video_key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Published   bool    `json:"published"`
	PublishedID *string `json:"published_id"`
	SelectedAt  string  `json:"selected_at"`
	PublishedAt *string `json:"published_at"`
}

func toLibraryItem(v models.FinalVideo) LibraryItem {
	item := LibraryItem{
		VideoKey:    v.VideoKey,
		Title:       v.Title,
		Description: v.Description,
		Published:   v.Published,
		PublishedID: v.PublishedID,
		SelectedAt:  v.SelectedAt.Format(timeLayout),
	}
	if v.PublishedAt != nil {
		s := v.PublishedAt.Format(timeLayout)
		item.PublishedAt = &s
	}
	return item
}
