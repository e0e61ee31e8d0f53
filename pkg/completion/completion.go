// Package completion sends single-prompt text completion requests.
package completion

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoChoices is returned when the endpoint answers without any choice.
var ErrNoChoices = errors.New("empty completion choices")

// Request is one completion call.
type Request struct {
	APIKey      string
	Model       string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// Completer returns the raw text of the first choice for req.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// APIError is an error reported by the remote API itself, such as a
// rejected credential. Transport failures are never APIErrors.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsAPIError reports whether err is, or wraps, an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
