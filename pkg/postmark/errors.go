package postmark

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed wraps transport failures and non-2xx responses.
	ErrRequestFailed = errors.New("postmark: request failed")

	// ErrDecodeFailed is returned when a response body is not the expected JSON.
	ErrDecodeFailed = errors.New("postmark: failed to decode response")

	// ErrMissingToken is returned when the token required by an endpoint is empty.
	ErrMissingToken = errors.New("postmark: missing API token")
)

// APIError is an error response from the Postmark API.
type APIError struct {
	StatusCode int
	ErrorCode  int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("postmark: status %d, error code %d: %s", e.StatusCode, e.ErrorCode, e.Message)
}
