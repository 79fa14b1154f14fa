package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justic/video-gateway/internal/video/models"
)

func TestGenerate_V1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/veo/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a cat", body["prompt"])
		_, hasModel := body["model"]
		assert.False(t, hasModel, "v1 must not send a model selector")

		json.NewEncoder(w).Encode(map[string]string{"id": "abc", "video_url": "https://x/file.mp4"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	got, err := c.Generate(context.Background(), models.VariantV1, "a cat")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.TaskID)
	assert.Equal(t, "https://x/file.mp4", got.VideoURL)
}

func TestGenerate_V2SendsModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/createTask", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "grok-imagine", body["model"])

		json.NewEncoder(w).Encode(map[string]string{"id": "xyz", "video_url": "https://x/v.mp4"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	got, err := c.Generate(context.Background(), models.VariantV2, "a dog")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got.TaskID)
}

func TestGenerate_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	_, err := c.Generate(context.Background(), models.VariantV1, "a cat")
	require.ErrorIs(t, err, models.ErrUpstream)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_MissingFieldsTolerated(t *testing.T) {
	// The API sometimes answers without an id; the orchestrator assigns
	// a local one in that case, so the client just passes empties through.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	got, err := c.Generate(context.Background(), models.VariantV1, "a cat")
	require.NoError(t, err)
	assert.Empty(t, got.TaskID)
	assert.Empty(t, got.VideoURL)
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient(Config{}).Configured())
	assert.True(t, NewClient(Config{APIKey: "k"}).Configured())
}
