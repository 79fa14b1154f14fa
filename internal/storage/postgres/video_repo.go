package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/justic/video-gateway/internal/video/models"
)

type VideoRepo struct {
	db     *sqlx.DB
	outbox *OutboxRepo
	clock  func() time.Time
}

func NewVideoRepo(db *sqlx.DB, outbox *OutboxRepo) *VideoRepo {
	return &VideoRepo{db: db, outbox: outbox, clock: time.Now}
}

func (r *VideoRepo) UpsertFinalVideo(ctx context.Context, v *models.FinalVideo) error {
	const q = `
		INSERT INTO final_videos (video_key, user_id, title, description, selected_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (video_key)
		DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description
	`
	selectedAt := v.SelectedAt
	if selectedAt.IsZero() {
		selectedAt = r.clock()
	}
	_, err := r.db.ExecContext(ctx, q, v.VideoKey, v.UserID, v.Title, v.Description, selectedAt)
	if err != nil {
		return fmt.Errorf("final video upsert: %w", err)
	}
	return nil
}

func (r *VideoRepo) MarkPublished(ctx context.Context, videoKey, publishedID string) error {
	const q = `
		UPDATE final_videos
		SET published = TRUE, published_id = $2, published_at = NOW()
		WHERE video_key = $1
	`
	res, err := r.db.ExecContext(ctx, q, videoKey, publishedID)
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *VideoRepo) ListLibrary(ctx context.Context, userID string) ([]models.FinalVideo, error) {
	const q = `
		SELECT video_key, user_id, title, description,
		       published, published_id, selected_at, published_at
		FROM final_videos
		WHERE user_id = $1
		ORDER BY selected_at DESC
	`
	var out []models.FinalVideo
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return out, nil
}

// AppendLog writes the audit row and its outbox event in one transaction,
// so the Kafka side channel never sees an entry the table does not have.
func (r *VideoRepo) AppendLog(ctx context.Context, entry *models.OperationLog) error {
	const q = `
		INSERT INTO operation_logs (user_id, log_type, status, video_key, message)
		VALUES ($1, $2, $3, $4, $5)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, q,
		nullable(entry.UserID), entry.LogType, entry.Status, nullable(entry.VideoKey), entry.Message,
	); err != nil {
		return fmt.Errorf("operation log insert: %w", err)
	}

	event := models.NewOperationLogged(entry, r.clock())
	if err := r.outbox.Add(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *VideoRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
