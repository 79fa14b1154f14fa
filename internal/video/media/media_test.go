package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadToTemp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video-bytes"))
	}))
	defer srv.Close()

	d := NewHTTPDownloader()
	path, err := d.DownloadToTemp(context.Background(), srv.URL, "video-*.mp4")
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}

func TestDownloadToTemp_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewHTTPDownloader()
	path, err := d.DownloadToTemp(context.Background(), srv.URL, "video-*.mp4")
	require.Error(t, err)
	assert.Empty(t, path)
}

func TestDownloadToTemp_CleansUpOnFailure(t *testing.T) {
	before := tempEntries(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewHTTPDownloader()
	_, err := d.DownloadToTemp(context.Background(), srv.URL, "gateway-dl-*.mp4")
	require.Error(t, err)

	assert.Equal(t, before, tempEntries(t), "failed download must not leave a temp file behind")
}

func tempEntries(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(os.TempDir())
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if len(e.Name()) >= 10 && e.Name()[:10] == "gateway-dl" {
			n++
		}
	}
	return n
}

func TestThumbnailArgs(t *testing.T) {
	args := thumbnailArgs("/tmp/in.mp4", "/tmp/out.jpg")
	assert.Equal(t, []string{"-y", "-i", "/tmp/in.mp4", "-ss", "00:00:01", "-vframes", "1", "/tmp/out.jpg"}, args)
}
