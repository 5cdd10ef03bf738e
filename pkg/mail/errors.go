package mail

import "errors"

var (
	// ErrInvalidLinkTracking is returned when a link tracking value is not one of
	// None, HtmlAndText, TextOnly or HtmlOnly.
	ErrInvalidLinkTracking = errors.New("mail: invalid link tracking mode")

	// ErrInvalidAddress is returned when an address cannot be parsed.
	ErrInvalidAddress = errors.New("mail: invalid address")

	// ErrParseMessage is returned when a raw message cannot be parsed.
	ErrParseMessage = errors.New("mail: failed to parse message")
)
