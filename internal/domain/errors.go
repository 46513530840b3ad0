package domain

import (
	"fmt"
)

// Messages returned in the relay's error envelope
const (
	MessageMissingInput     = "Missing image or vibe keyword."
	MessageMethodNotAllowed = "Method Not Allowed"
)

// ValidationError is returned when the caller left out a required input.
// It is reported as-is and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError collapses every failure of the model call (network, auth,
// quota, oversized payload) into one kind.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI Generation Failed: %s. Check your API Key and image size.", e.Err.Error())
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
