package validate

import (
	"errors"
	"strings"
)

var (
	// ErrValidationFailed matches every *Failure with errors.Is.
	ErrValidationFailed = errors.New("the message provided does not pass Postmark validation rules")

	// ErrNilMessage is returned when there is no message to validate.
	ErrNilMessage = errors.New("validate: message is nil")
)

// Violation codes.
const (
	CodeMissingFrom          = "MissingFrom"
	CodeTooManyFrom          = "TooManyFrom"
	CodeMissingSubject       = "MissingSubject"
	CodeMissingTo            = "MissingTo"
	CodeTooManyRecipients    = "TooManyRecipients"
	CodeTooManyReplyTo       = "TooManyReplyTo"
	CodeMetaDataKeyTooLong   = "MetaDataKeyTooLong"
	CodeMetaDataValueTooLong = "MetaDataValueTooLong"
	CodeNotPermitted         = "NotPermitted"
	CodeNotValidEmailAddress = "NotValidEmailAddress"
	CodeIsSuppressed         = "IsSuppressed"
)

// Violation is a single broken rule.
type Violation struct {
	Code    string
	Message string
	Params  map[string]any
}

// Failure is returned when a check reports violations.
type Failure struct {
	Violations []Violation
}

// Error lists every violation message on its own line.
func (f *Failure) Error() string {
	msgs := make([]string, 0, len(f.Violations))
	for _, v := range f.Violations {
		msgs = append(msgs, v.Message)
	}
	return ErrValidationFailed.Error() + ": \n" + strings.Join(msgs, "\n")
}

// Is reports whether target is ErrValidationFailed.
func (f *Failure) Is(target error) bool {
	return target == ErrValidationFailed
}

// Has reports whether any violation carries code.
func (f *Failure) Has(code string) bool {
	for _, v := range f.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the violation codes in order.
func (f *Failure) Codes() []string {
	codes := make([]string, 0, len(f.Violations))
	for _, v := range f.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
