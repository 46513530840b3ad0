package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/basel-ax/storyteller/internal/domain"
	"github.com/basel-ax/storyteller/internal/lib/sl"
	"github.com/basel-ax/storyteller/internal/prompt"
)

// StorytellerService turns an image and a vibe keyword into the model's report
type StorytellerService struct {
	model    domain.VisionModel
	template *prompt.Template
	log      *slog.Logger
}

// NewStorytellerService creates a new storyteller service
func NewStorytellerService(model domain.VisionModel, template *prompt.Template, log *slog.Logger) *StorytellerService {
	return &StorytellerService{
		model:    model,
		template: template,
		log:      log.With(sl.Module("storyteller")),
	}
}

// Tell validates the request, calls the model once and returns its text with
// surrounding whitespace trimmed. The Markdown is not checked against the
// structure the prompt asks for.
func (s *StorytellerService) Tell(ctx context.Context, req domain.StoryRequest) (*domain.StoryResponse, error) {
	if req.ImageBase64 == "" || req.VibeKeyword == "" {
		return nil, &domain.ValidationError{Message: domain.MessageMissingInput}
	}

	output, err := s.model.Describe(ctx, domain.VisionPrompt{
		Text:        s.template.Render(req.VibeKeyword),
		ImageBase64: req.ImageBase64,
		MimeType:    domain.JPEGMimeType,
	})
	if err != nil {
		s.log.With(
			slog.String("vibe", req.VibeKeyword),
			slog.Int("image_len", len(req.ImageBase64)),
		).Error("gemini API error", sl.Err(err))
		return nil, &domain.UpstreamError{Err: err}
	}

	output = strings.TrimSpace(output)
	s.log.With(
		slog.String("vibe", req.VibeKeyword),
		slog.Int("output_len", len(output)),
	).Info("story generated")

	return &domain.StoryResponse{Output: output}, nil
}
