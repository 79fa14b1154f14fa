package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/justic/video-gateway/internal/video/models"
)

// GoogleToken is a stored per-user platform credential. The access token
// may be stale; the publisher's oauth client refreshes it as needed.
type GoogleToken struct {
	UserID       string     `db:"user_id"`
	RefreshToken string     `db:"refresh_token"`
	AccessToken  *string    `db:"access_token"`
	Expiry       *time.Time `db:"expiry"`
}

type TokenRepo struct {
	db *sqlx.DB
}

func NewTokenRepo(db *sqlx.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Get(ctx context.Context, userID string) (*GoogleToken, error) {
	const q = `
		SELECT user_id, refresh_token, access_token, expiry
		FROM google_tokens
		WHERE user_id = $1
	`
	var t GoogleToken
	if err := r.db.GetContext(ctx, &t, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("google token get: %w", err)
	}
	return &t, nil
}
