package domain

// RelayPath is where the relay accepts story requests
const RelayPath = "/api/relay"

// StoryRequest is the body the client form posts to the relay
type StoryRequest struct {
	ImageBase64 string `json:"imageBase64"`
	VibeKeyword string `json:"vibeKeyword"`
}

// StoryResponse carries the model's Markdown report back to the client
type StoryResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is the envelope for every non-2xx relay response
type ErrorResponse struct {
	Message string `json:"message"`
}
