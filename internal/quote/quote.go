package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nuscanoeing/canoebot/internal/logger"
)

const (
	RandomURL = "https://zenquotes.io/api/random"
	UserAgent = "canoebot/1.0 (github.com/nuscanoeing/canoebot)"
	Timeout   = 10 * time.Second

	// ErrGenerate is sent when the quote API cannot be reached or answers with a
	// non-200 status.
	ErrGenerate = "There was an error with the web request for the quote."
	// ErrParse is sent when the quote API answers 200 with an unexpected body.
	ErrParse = "There was an error parsing the response."

	maxBodyBytes = 64 << 10
)

// entry is one element of the ZenQuotes response array.
type entry struct {
	Quote  *string `json:"q"`
	Author *string `json:"a"`
}

// Client fetches quotes over HTTP.
type Client struct {
	client *http.Client
	url    string
}

// New creates a Client for the public ZenQuotes endpoint.
func New() *Client {
	return NewWithURL(RandomURL)
}

// NewWithURL creates a Client for an alternative endpoint.
func NewWithURL(url string) *Client {
	return &Client{
		client: &http.Client{Timeout: Timeout},
		url:    url,
	}
}

// Fetch retrieves one quote and returns the reply text. It never fails: errors
// are logged and mapped to ErrGenerate or ErrParse.
func (c *Client) Fetch(ctx context.Context) string {
	start := time.Now()
	defer func() { logger.RecordTiming("quote.fetch", time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		logger.Error("Building quote request failed", logger.Fields{"url": c.url}, err)
		return ErrGenerate
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Warn("Quote request failed", logger.Fields{"url": c.url, "error": err.Error()})
		logger.IncrCounter("quote.errors")
		return ErrGenerate
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Warn("Reading quote response failed", logger.Fields{"error": err.Error()})
		logger.IncrCounter("quote.errors")
		return ErrGenerate
	}

	return Format(resp.StatusCode, body)
}

// Format turns a raw API response into the reply text. A non-200 status always
// yields ErrGenerate; a 200 body that is not a JSON array holding an object with
// "q" and "a" yields ErrParse.
func Format(status int, body []byte) string {
	if status != http.StatusOK {
		logger.Warn("Quote API returned non-200 status", logger.Fields{"status": status})
		return ErrGenerate
	}
	q, err := parse(body)
	if err != nil {
		logger.Warn("Quote API response could not be parsed", logger.Fields{"error": err.Error()})
		return ErrParse
	}
	return q.text()
}

// Quote is a parsed quote.
type Quote struct {
	Text   string
	Author string
}

func (q Quote) text() string {
	return q.Text + "\n\n - " + q.Author
}

func parse(body []byte) (Quote, error) {
	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return Quote{}, fmt.Errorf("decoding quote: %w", err)
	}
	if len(entries) == 0 {
		return Quote{}, fmt.Errorf("empty quote list")
	}
	first := entries[0]
	if first.Quote == nil || first.Author == nil {
		return Quote{}, fmt.Errorf("quote is missing q or a")
	}
	return Quote{Text: *first.Quote, Author: *first.Author}, nil
}
