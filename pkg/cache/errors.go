package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("cache: closed")

	// ErrMarshal is returned when a list cannot be serialized.
	ErrMarshal = errors.New("cache: failed to marshal list")

	// ErrUnmarshal is returned when a stored list cannot be deserialized.
	ErrUnmarshal = errors.New("cache: failed to unmarshal list")

	// ErrStore is returned when the backend fails to read or write an entry.
	ErrStore = errors.New("cache: backend operation failed")

	// ErrLoad is returned when the load function of a Loader fails.
	ErrLoad = errors.New("cache: failed to load list")
)
