package mailer

import (
	"context"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
	"github.com/dmitrymomot/postmarkit/pkg/transport"
)

// Option configures a Mailer.
type Option func(*Mailer)

// WithFrom sets the default From address, e.g. "Team <team@example.com>".
func WithFrom(from string) Option {
	return func(m *Mailer) {
		m.from = from
	}
}

// WithFallbackSubject sets the subject used when neither the call nor the
// template provides one.
func WithFallbackSubject(subject string) Option {
	return func(m *Mailer) {
		m.fallbackSubject = subject
	}
}

// Mailer composes templated messages and sends them through a Transport,
// which validates them first.
type Mailer struct {
	composer        *Composer
	transport       *transport.Transport
	from            string
	fallbackSubject string
}

// New creates a Mailer.
func New(composer *Composer, tr *transport.Transport, opts ...Option) *Mailer {
	m := &Mailer{composer: composer, transport: tr}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendParams describes one templated message. Address fields accept
// RFC 5322 lists ("a@x.io, Bob <b@x.io>").
type SendParams struct {
	To       string
	Template string
	Data     any

	Subject     string // overrides the template subject
	From        string // overrides the default sender
	ReplyTo     string
	Cc          string
	Bcc         string
	Tag         string // overrides the template tag
	Metadata    map[string]any
	Headers     map[string]string
	Attachments []*mail.Part
}

// Build composes the message without sending it.
func (m *Mailer) Build(p SendParams) (*mail.Message, error) {
	to, err := mail.ParseAddressList(p.To)
	if err != nil {
		return nil, err
	}
	if len(to) == 0 {
		return nil, ErrNoRecipient
	}

	fromStr := p.From
	if fromStr == "" {
		fromStr = m.from
	}
	if fromStr == "" {
		return nil, ErrNoFromAddress
	}
	from, err := mail.ParseAddressList(fromStr)
	if err != nil {
		return nil, err
	}

	msg := mail.NewPostmarkMessage()
	msg.From = from
	msg.To = to
	for _, list := range []struct {
		dst *[]mail.Address
		raw string
	}{
		{&msg.Cc, p.Cc},
		{&msg.Bcc, p.Bcc},
		{&msg.ReplyTo, p.ReplyTo},
	} {
		if *list.dst, err = mail.ParseAddressList(list.raw); err != nil {
			return nil, err
		}
	}

	comp, err := m.composer.Compose(p.Template, p.Data)
	if err != nil {
		return nil, err
	}
	if err := comp.Apply(msg); err != nil {
		return nil, err
	}

	switch {
	case p.Subject != "":
		msg.SetSubject(p.Subject)
	case msg.Subject == "":
		msg.SetSubject(m.fallbackSubject)
	}
	if p.Tag != "" {
		msg.SetTag(p.Tag)
	}
	for k, v := range p.Metadata {
		msg.SetMetadata(k, v)
	}
	for name, value := range p.Headers {
		msg.Headers.Set(name, value)
	}
	for _, a := range p.Attachments {
		msg.AddPart(a)
	}
	return msg, nil
}

// Send builds the message and hands it to the transport.
func (m *Mailer) Send(ctx context.Context, p SendParams) (*transport.SendResult, error) {
	msg, err := m.Build(p)
	if err != nil {
		return nil, err
	}
	return m.transport.SendWithResult(ctx, msg)
}
