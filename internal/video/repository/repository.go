package repository

import (
	"context"

	"github.com/justic/video-gateway/internal/video/models"
)

type MetadataRepository interface {
	UpsertFinalVideo(ctx context.Context, v *models.FinalVideo) error
	MarkPublished(ctx context.Context, videoKey, publishedID string) error
	ListLibrary(ctx context.Context, userID string) ([]models.FinalVideo, error)
	AppendLog(ctx context.Context, entry *models.OperationLog) error
}
