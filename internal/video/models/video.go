package models

import "time"

type LogStatus string

const (
	StatusSuccess LogStatus = "SUCCESS"
	StatusFail    LogStatus = "FAIL"
	StatusUnknown LogStatus = "UNKNOWN"
)

// VideoTask identifies one generation request. It lives only for the
// duration of that request; everything persisted afterwards references
// it by TaskID.
type VideoTask struct {
	TaskID     string
	UserID     string
	Prompt     string
	CreatedVia string
}

// Generation is what the upstream generation API answered: an opaque
// task identifier and the URL of the produced source video.
type Generation struct {
	TaskID   string
	VideoURL string
}

// FinalVideo is one row per video key. Re-inserting the same key only
// overwrites title and description; the published fields flip once and
// never revert.
type FinalVideo struct {
	VideoKey    string     `db:"video_key" json:"video_key"`
	UserID      string     `db:"user_id" json:"-"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Published   bool       `db:"published" json:"published"`
	PublishedID *string    `db:"published_id" json:"published_id"`
	SelectedAt  time.Time  `db:"selected_at" json:"selected_at"`
	PublishedAt *time.Time `db:"published_at" json:"published_at"`
}

// OperationLog is an append-only audit record. CreatedAt is assigned by
// the store.
type OperationLog struct {
	UserID   string    `db:"user_id"`
	LogType  string    `db:"log_type"`
	Status   LogStatus `db:"status"`
	VideoKey string    `db:"video_key"`
	Message  string    `db:"message"`
}

// JobDescriptor is the message handed to the post-processing worker.
// Ownership passes to the queue at enqueue time.
type JobDescriptor struct {
	InputKey  string `json:"input_key"`
	OutputKey string `json:"output_key"`
	Variant   string `json:"variant"`
}
