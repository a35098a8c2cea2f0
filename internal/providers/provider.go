// Package providers implements the decision function on top of
// OpenAI-compatible chat completion endpoints.
package providers

import "fmt"

// APIError is a non-200 answer from the chat endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
