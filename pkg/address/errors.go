package address

import "errors"

var (
	// ErrEmptyInput is returned when the value to classify is empty.
	ErrEmptyInput = errors.New("address: a non empty string is required")

	// ErrNeitherEmailNorHostname is returned when the value is neither a valid
	// email address nor a valid hostname.
	ErrNeitherEmailNorHostname = errors.New("address: value is neither a valid email address, nor a valid hostname")

	// ErrNotAnEmailAddress is returned by operations that only accept email addresses.
	ErrNotAnEmailAddress = errors.New("address: value is not a valid email address")
)
