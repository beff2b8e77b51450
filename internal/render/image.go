package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nuscanoeing/canoebot/internal/logger"
)

const (
	// DefaultEndpoint is the HTML/CSS to Image API.
	DefaultEndpoint = "https://hcti.io/v1/image"
	// Timeout bounds a single render request.
	Timeout = 15 * time.Second

	maxResponseBytes = 1 << 20
	maxErrorExcerpt  = 200
)

// ImageClient renders HTML to a hosted image.
type ImageClient struct {
	client   *http.Client
	endpoint string
	userID   string
	apiKey   string
}

// NewImageClient creates a client for the public API.
func NewImageClient(userID, apiKey string) *ImageClient {
	return NewImageClientWithURL(DefaultEndpoint, userID, apiKey)
}

// NewImageClientWithURL creates a client for a custom endpoint.
func NewImageClientWithURL(endpoint, userID, apiKey string) *ImageClient {
	return &ImageClient{
		client:   &http.Client{Timeout: Timeout},
		endpoint: endpoint,
		userID:   userID,
		apiKey:   apiKey,
	}
}

type imageRequest struct {
	HTML string `json:"html"`
	CSS  string `json:"css,omitempty"`
}

type imageResponse struct {
	URL string `json:"url"`
}

// Render uploads html and css and returns the URL of the resulting image.
func (c *ImageClient) Render(ctx context.Context, html, css string) (string, error) {
	if c.userID == "" || c.apiKey == "" {
		return "", fmt.Errorf("image rendering credentials are not configured")
	}

	payload, err := json.Marshal(imageRequest{HTML: html, CSS: css})
	if err != nil {
		return "", fmt.Errorf("encoding render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating render request: %w", err)
	}
	req.SetBasicAuth(c.userID, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	logger.RecordTiming("render.image", time.Since(start))
	if err != nil {
		logger.IncrCounter("render.errors")
		return "", fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.IncrCounter("render.errors")
		return "", fmt.Errorf("reading render response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.IncrCounter("render.errors")
		return "", fmt.Errorf("render API returned status %d: %s", resp.StatusCode, excerpt(body))
	}

	var out imageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decoding render response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("render response has no image URL")
	}

	logger.Debug("Rendered image", logger.Fields{"url": out.URL, "html_bytes": len(html)})
	return out.URL, nil
}

func excerpt(body []byte) string {
	s := string(bytes.TrimSpace(body))
	if r := []rune(s); len(r) > maxErrorExcerpt {
		return string(r[:maxErrorExcerpt]) + "..."
	}
	return s
}
