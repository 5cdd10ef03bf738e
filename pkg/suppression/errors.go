package suppression

import "errors"

var (
	// ErrNoClient is returned by New when no API client is given.
	ErrNoClient = errors.New("suppression: an API client is required")

	// ErrNoCache is returned by New when no cache store is given.
	ErrNoCache = errors.New("suppression: a cache store is required")

	// ErrMalformedSuppressionList is returned when the Suppressions field of a
	// response is not a list.
	ErrMalformedSuppressionList = errors.New("suppression: expected the Suppressions field to contain a list")

	// ErrMalformedSuppressionRecord is returned when a suppression record has no
	// string EmailAddress.
	ErrMalformedSuppressionRecord = errors.New("suppression: expected each suppression record to have a string EmailAddress")
)
