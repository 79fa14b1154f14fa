package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justic/video-gateway/internal/video/models"
)

func setupProducer(t *testing.T) (*Producer, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewProducer(rdb, "video_processing_jobs"), rdb
}

func TestEnqueue_PayloadShape(t *testing.T) {
	ctx := context.Background()
	p, rdb := setupProducer(t)

	job := models.JobDescriptor{
		InputKey:  "u1/abc.mp4",
		OutputKey: "u1/abc_processed.mp4",
		Variant:   "v1",
	}
	require.NoError(t, p.Enqueue(ctx, job))

	raw, err := rdb.RPop(ctx, "video_processing_jobs").Result()
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, map[string]string{
		"input_key":  "u1/abc.mp4",
		"output_key": "u1/abc_processed.mp4",
		"variant":    "v1",
	}, got)
}

func TestEnqueue_Order(t *testing.T) {
	ctx := context.Background()
	p, rdb := setupProducer(t)

	require.NoError(t, p.Enqueue(ctx, models.JobDescriptor{InputKey: "first"}))
	require.NoError(t, p.Enqueue(ctx, models.JobDescriptor{InputKey: "second"}))

	// Worker consumes with RPOP, so the first push comes out first.
	raw, err := rdb.RPop(ctx, "video_processing_jobs").Result()
	require.NoError(t, err)
	assert.Contains(t, raw, "first")
}

func TestPing(t *testing.T) {
	p, _ := setupProducer(t)
	require.NoError(t, p.Ping(context.Background()))
}
