package senders

import "errors"

var (
	// ErrNoClient is returned by New when no account API client is given.
	ErrNoClient = errors.New("senders: an account API client is required")

	// ErrNoCache is returned by New when no cache store is given.
	ErrNoCache = errors.New("senders: a cache store is required")
)
