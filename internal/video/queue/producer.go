package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/justic/video-gateway/internal/video/models"
)

// Producer pushes job descriptors onto the list the post-processing
// worker consumes. Delivery is fire-and-forget: once the push succeeds
// the job belongs to the worker.
type Producer struct {
	rdb  redis.UniversalClient
	list string
}

func NewProducer(rdb redis.UniversalClient, list string) *Producer {
	return &Producer{rdb: rdb, list: list}
}

func (p *Producer) Enqueue(ctx context.Context, job models.JobDescriptor) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := p.rdb.LPush(ctx, p.list, data).Err(); err != nil {
		return fmt.Errorf("queue push: %w", err)
	}
	return nil
}

func (p *Producer) Ping(ctx context.Context) error {
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
