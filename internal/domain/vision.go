package domain

import (
	"context"
)

// JPEGMimeType is how every uploaded image is tagged for the model
const JPEGMimeType = "image/jpeg"

// VisionPrompt represents one multimodal input: an instruction text part
// followed by an inline image part
type VisionPrompt struct {
	Text        string
	ImageBase64 string
	MimeType    string
}

// VisionModel defines the interface for the upstream generative model
type VisionModel interface {
	// Describe sends the prompt and image in a single call and returns the
	// model's raw text
	Describe(ctx context.Context, prompt VisionPrompt) (string, error)
}
