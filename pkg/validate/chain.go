package validate

import (
	"context"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
)

// Postmark limits.
const (
	MaxFrom              = 1
	MaxRecipients        = 50
	MaxReplyTo           = 1
	MaxMetadataKeyLength = 20
	MaxMetadataValueLen  = 80
)

// MessageValidator validates a message before it is sent.
type MessageValidator interface {
	Validate(ctx context.Context, msg *mail.Message) error
}

// MessageCheck inspects a message. It returns violations for broken rules
// and an error when the check itself could not run.
type MessageCheck func(ctx context.Context, msg *mail.Message) ([]Violation, error)

// Chain runs checks in order and stops at the first one reporting violations.
type Chain []MessageCheck

// NewMessageValidator returns the standard Postmark chain followed by extra checks:
// HasFromAddress, MaxFromCount(1), HasSubject, HasToRecipient,
// MaxRecipientCount(50), MaxReplyToCount(1), MetaData.
func NewMessageValidator(extra ...MessageCheck) Chain {
	c := Chain{
		HasFromAddress(),
		MaxFromCount(MaxFrom),
		HasSubject(),
		HasToRecipient(),
		MaxRecipientCount(MaxRecipients),
		MaxReplyToCount(MaxReplyTo),
		MetaData(),
	}
	return append(c, extra...)
}

// Validate returns a *Failure holding the violations of the first failing
// check, the error of a check that could not run, or nil.
func (c Chain) Validate(ctx context.Context, msg *mail.Message) error {
	if msg == nil {
		return ErrNilMessage
	}
	for _, check := range c {
		violations, err := check(ctx, msg)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return &Failure{Violations: violations}
		}
	}
	return nil
}

var _ MessageValidator = Chain(nil)
