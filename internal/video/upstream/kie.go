package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/justic/video-gateway/internal/video/models"
)

const defaultBaseURL = "https://api.kie.ai"

// Client calls the KIE text-to-video API. Each call is a single attempt;
// a failed generation is terminal for the request that triggered it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// Configured reports whether an API key is present. The orchestrator
// refuses generation requests before making any call when it is not.
func (c *Client) Configured() bool { return c.apiKey != "" }

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

type generateResponse struct {
	ID       string `json:"id"`
	VideoURL string `json:"video_url"`
}

func (c *Client) Generate(ctx context.Context, variant models.Variant, prompt string) (*models.Generation, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, Model: variant.Model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+variant.GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", models.ErrUpstream, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", models.ErrUpstream, err)
	}

	return &models.Generation{TaskID: out.ID, VideoURL: out.VideoURL}, nil
}
