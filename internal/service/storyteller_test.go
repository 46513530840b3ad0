package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/storyteller/internal/domain"
	"github.com/basel-ax/storyteller/internal/lib/sl"
	"github.com/basel-ax/storyteller/internal/prompt"
)

type fakeModel struct {
	calls   int
	prompts []domain.VisionPrompt
	output  string
	err     error
}

func (f *fakeModel) Describe(_ context.Context, p domain.VisionPrompt) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, p)
	return f.output, f.err
}

func newService(t *testing.T, model *fakeModel) *StorytellerService {
	t.Helper()
	tmpl, err := prompt.LensPoet()
	require.NoError(t, err)
	return NewStorytellerService(model, tmpl, sl.Discard())
}

func TestTellMissingInputNeverCallsModel(t *testing.T) {
	tests := []struct {
		name string
		req  domain.StoryRequest
	}{
		{"Empty", domain.StoryRequest{}},
		{"NoImage", domain.StoryRequest{VibeKeyword: "Nostalgia"}},
		{"NoKeyword", domain.StoryRequest{ImageBase64: "/9j/4AAQ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{output: "unused"}
			svc := newService(t, model)

			resp, err := svc.Tell(context.Background(), tt.req)

			assert.Nil(t, resp)
			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, "Missing image or vibe keyword.", validationErr.Message)
			assert.Equal(t, 0, model.calls)
		})
	}
}

func TestTellCallsModelOnce(t *testing.T) {
	model := &fakeModel{output: "# Reflection Subject: The Harbor"}
	svc := newService(t, model)

	resp, err := svc.Tell(context.Background(), domain.StoryRequest{
		ImageBase64: "/9j/4AAQSkZJRg==",
		VibeKeyword: "Nostalgia",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, "# Reflection Subject: The Harbor", resp.Output)

	sent := model.prompts[0]
	assert.Equal(t, "/9j/4AAQSkZJRg==", sent.ImageBase64)
	assert.Equal(t, "image/jpeg", sent.MimeType)
	assert.True(t, strings.HasSuffix(sent.Text, "\n\nUser's Vibe Keyword: Nostalgia"))
	assert.Contains(t, sent.Text, "Lens Poet")
}

func TestTellTrimsButOtherwiseKeepsOutput(t *testing.T) {
	raw := "\n\n  # Title\n\n## Visual Analysis\n> **Metaphorical Insight:**  quoted  \n\t\n"
	model := &fakeModel{output: raw}
	svc := newService(t, model)

	resp, err := svc.Tell(context.Background(), domain.StoryRequest{ImageBase64: "aGk=", VibeKeyword: "Calm"})
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(raw), resp.Output)
}

func TestTellDoesNotValidateMarkdown(t *testing.T) {
	model := &fakeModel{output: "not markdown at all"}
	svc := newService(t, model)

	resp, err := svc.Tell(context.Background(), domain.StoryRequest{ImageBase64: "aGk=", VibeKeyword: "Calm"})
	require.NoError(t, err)

	assert.Equal(t, "not markdown at all", resp.Output)
	assert.Equal(t, 1, model.calls)
}

func TestTellWrapsUpstreamError(t *testing.T) {
	cause := errors.New("Error 429, Message: Resource has been exhausted (e.g. check quota)., Status: RESOURCE_EXHAUSTED")
	model := &fakeModel{err: cause}
	svc := newService(t, model)

	resp, err := svc.Tell(context.Background(), domain.StoryRequest{ImageBase64: "aGk=", VibeKeyword: "Calm"})

	assert.Nil(t, resp)
	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "AI Generation Failed: "))
	assert.Equal(t, 1, model.calls)
}
