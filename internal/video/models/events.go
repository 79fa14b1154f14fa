package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// OperationLogged mirrors one operation_logs row for the audit channel.
type OperationLogged struct {
	eventID    uuid.UUID
	userID     string
	logType    string
	status     LogStatus
	videoKey   string
	message    string
	occurredAt time.Time
}

func NewOperationLogged(entry *OperationLog, at time.Time) *OperationLogged {
	return &OperationLogged{
		eventID:    uuid.New(),
		userID:     entry.UserID,
		logType:    entry.LogType,
		status:     entry.Status,
		videoKey:   entry.VideoKey,
		message:    entry.Message,
		occurredAt: at,
	}
}

func (e *OperationLogged) EventID() uuid.UUID    { return e.eventID }
func (e *OperationLogged) EventType() string     { return "OperationLogged" }
func (e *OperationLogged) OccurredAt() time.Time { return e.occurredAt }

// AggregateID is the video key when one was assigned, otherwise the user.
func (e *OperationLogged) AggregateID() string {
	if e.videoKey != "" {
		return e.videoKey
	}
	return e.userID
}

func (e *OperationLogged) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID    uuid.UUID `json:"event_id"`
		UserID     string    `json:"user_id"`
		LogType    string    `json:"log_type"`
		Status     LogStatus `json:"status"`
		VideoKey   string    `json:"video_key,omitempty"`
		Message    string    `json:"message"`
		OccurredAt time.Time `json:"occurred_at"`
	}{
		EventID:    e.eventID,
		UserID:     e.userID,
		LogType:    e.logType,
		Status:     e.status,
		VideoKey:   e.videoKey,
		Message:    e.message,
		OccurredAt: e.occurredAt,
	})
}
