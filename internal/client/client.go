package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/basel-ax/storyteller/internal/domain"
)

// Messages shown to the user, matching the browser form
const (
	MessageMissingInput = "Please upload an image and enter a Vibe Keyword!"
	MessageServerError  = "Server error. Check server logs."
)

// Client submits images to a running relay, the way the browser form does
type Client struct {
	httpClient *http.Client
	relayURL   string
}

// NewClient creates a client for the relay at baseURL (e.g. "http://localhost:8080")
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		relayURL:   strings.TrimRight(baseURL, "/") + domain.RelayPath,
	}
}

// DataURL encodes data the way a browser FileReader does
func DataURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// StripDataURLPrefix returns everything after the first comma, or "" when there is none
func StripDataURLPrefix(dataURL string) string {
	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return ""
	}
	return payload
}

// Submit sends the image and keyword to the relay in a single request and
// returns the Markdown report. Missing input fails before any request is made.
func (c *Client) Submit(ctx context.Context, image []byte, vibeKeyword string) (string, error) {
	if len(image) == 0 || vibeKeyword == "" {
		return "", &domain.ValidationError{Message: MessageMissingInput}
	}

	payload, err := json.Marshal(domain.StoryRequest{
		ImageBase64: StripDataURLPrefix(DataURL(image)),
		VibeKeyword: vibeKeyword,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Output  string `json:"output"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if result.Message != "" {
			return "", errors.New(result.Message)
		}
		return "", errors.New(MessageServerError)
	}

	return result.Output, nil
}
