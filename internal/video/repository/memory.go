package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/justic/video-gateway/internal/video/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	videos map[string]*models.FinalVideo
	logs   []models.OperationLog
	clock  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		videos: make(map[string]*models.FinalVideo),
		clock:  time.Now,
	}
}

func (r *MemoryRepository) UpsertFinalVideo(ctx context.Context, v *models.FinalVideo) error {
	if v == nil || v.VideoKey == "" {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.videos[v.VideoKey]; ok {
		// Key collision only overwrites title and description.
		existing.Title = v.Title
		existing.Description = v.Description
		return nil
	}

	cp := *v
	if cp.SelectedAt.IsZero() {
		cp.SelectedAt = r.clock()
	}
	r.videos[v.VideoKey] = &cp
	return nil
}

func (r *MemoryRepository) MarkPublished(ctx context.Context, videoKey, publishedID string) error {
	if videoKey == "" || publishedID == "" {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[videoKey]
	if !ok {
		return models.ErrNotFound
	}

	now := r.clock()
	v.Published = true
	v.PublishedID = &publishedID
	v.PublishedAt = &now
	return nil
}

func (r *MemoryRepository) ListLibrary(ctx context.Context, userID string) ([]models.FinalVideo, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.FinalVideo
	for _, v := range r.videos {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SelectedAt.After(out[j].SelectedAt)
	})
	return out, nil
}

func (r *MemoryRepository) AppendLog(ctx context.Context, entry *models.OperationLog) error {
	if entry == nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, *entry)
	return nil
}

// Logs returns a copy of the recorded operation log, oldest first.
func (r *MemoryRepository) Logs() []models.OperationLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.OperationLog, len(r.logs))
	copy(out, r.logs)
	return out
}

// Get returns a copy of the stored record for a key.
func (r *MemoryRepository) Get(videoKey string) (*models.FinalVideo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.videos[videoKey]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}
