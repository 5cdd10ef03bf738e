package transport

import "errors"

var (
	// ErrMissingFromAddress is returned when a message has no From address.
	ErrMissingFromAddress = errors.New("transport: a from address has not been specified")

	// ErrNilMessage is returned when there is no message to translate.
	ErrNilMessage = errors.New("transport: message is nil")

	// ErrNoSender is returned by New when no Sender is given.
	ErrNoSender = errors.New("transport: a sender is required")

	// ErrSendFailed wraps errors returned by the Sender.
	ErrSendFailed = errors.New("transport: failed to send message")
)
