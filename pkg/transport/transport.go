package transport

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
	"github.com/dmitrymomot/postmarkit/pkg/validate"
)

// SendResult is the provider's acknowledgement of an accepted message.
type SendResult struct {
	MessageID   string
	SubmittedAt time.Time
	To          string
}

// Sender delivers a translated payload.
type Sender interface {
	SendEmail(ctx context.Context, p *Payload) (*SendResult, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, p *Payload) (*SendResult, error)

// SendEmail calls f.
func (f SenderFunc) SendEmail(ctx context.Context, p *Payload) (*SendResult, error) {
	return f(ctx, p)
}

// Option configures a Transport.
type Option func(*options)

type options struct {
	validator validate.MessageValidator
}

func defaultOptions() *options {
	return &options{
		validator: validate.NewMessageValidator(),
	}
}

// WithValidator replaces the message validator.
// Default: validate.NewMessageValidator().
func WithValidator(v validate.MessageValidator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// Transport validates, translates and sends messages.
type Transport struct {
	sender Sender
	opts   *options
}

// New creates a Transport.
func New(sender Sender, opts ...Option) (*Transport, error) {
	if sender == nil {
		return nil, ErrNoSender
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Transport{sender: sender, opts: o}, nil
}

// Send validates msg, translates it and hands it to the sender.
// Validation failures are returned as *validate.Failure and nothing is sent.
func (t *Transport) Send(ctx context.Context, msg *mail.Message) error {
	_, err := t.SendWithResult(ctx, msg)
	return err
}

// SendWithResult is Send returning the provider's acknowledgement.
func (t *Transport) SendWithResult(ctx context.Context, msg *mail.Message) (*SendResult, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	if err := t.opts.validator.Validate(ctx, msg); err != nil {
		return nil, err
	}

	payload, err := Translate(msg)
	if err != nil {
		return nil, err
	}

	res, err := t.sender.SendEmail(ctx, payload)
	if err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	return res, nil
}
