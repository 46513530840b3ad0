package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/basel-ax/storyteller/internal/domain"
	"github.com/basel-ax/storyteller/internal/lib/sl"
)

const DefaultModel = "gemini-2.5-flash"

// Client represents the Gemini API client
type Client struct {
	genai *genai.Client
	model string
	log   *slog.Logger
}

// NewClient creates a Gemini client authenticated with an API key. An empty
// endpoint keeps the public Gemini API base URL.
func NewClient(ctx context.Context, apiKey, model, endpoint string, log *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		genai: client,
		model: model,
		log:   log.With(sl.Module("gemini")),
	}, nil
}

// Describe issues exactly one generateContent call with a text part and an
// inline image part.
func (c *Client) Describe(ctx context.Context, prompt domain.VisionPrompt) (string, error) {
	mimeType := prompt.MimeType
	if mimeType == "" {
		mimeType = domain.JPEGMimeType
	}

	image, err := base64.StdEncoding.DecodeString(prompt.ImageBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt.Text),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	t := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, modelName(c.model), contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	c.log.With(
		slog.String("model", c.model),
		slog.Int("image_bytes", len(image)),
		slog.Int("chars", len(text)),
		slog.Int64("took_ms", time.Since(t).Milliseconds()),
	).Debug("content generated")

	return text, nil
}

// modelName turns "gemini-2.5-flash" into the "models/gemini-2.5-flash" resource name
func modelName(model string) string {
	if strings.HasPrefix(model, "models/") || strings.HasPrefix(model, "tunedModels/") {
		return model
	}
	return "models/" + model
}

// responseText returns the text of the first candidate. An empty response
// is an error naming why the model produced nothing.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt was blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("candidate has no content (finish reason: %s)", candidate.FinishReason)
	}

	return resp.Text(), nil
}
