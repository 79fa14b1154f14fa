package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// HTTPDownloader fetches a URL into a temp file and hands back the path.
// The caller owns the file and is responsible for removing it.
type HTTPDownloader struct {
	Client *http.Client
}

func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{Client: http.DefaultClient}
}

func (d *HTTPDownloader) DownloadToTemp(ctx context.Context, url, pattern string) (string, error) {
	out, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := out.Name()

	cleanup := func() {
		out.Close()
		os.Remove(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cleanup()
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		cleanup()
		return "", fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cleanup()
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		cleanup()
		return "", fmt.Errorf("write download: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close download: %w", err)
	}
	return path, nil
}
