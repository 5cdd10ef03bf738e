package transport

import (
	"encoding/base64"
	"maps"
	"strings"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
)

// Payload holds the fourteen arguments of a Postmark send call, in order.
// Nil pointers, maps and slices mean the field is absent.
type Payload struct {
	From        string
	To          *string
	Subject     string
	HTMLBody    *string
	TextBody    *string
	Tag         *string
	TrackOpens  bool
	ReplyTo     *string
	Cc          *string
	Bcc         *string
	Headers     map[string]string
	Attachments []Attachment
	TrackLinks  *mail.LinkTracking
	Metadata    map[string]any
}

// Attachment is a file attached to a Payload.
type Attachment struct {
	Name        string
	Content     string // base64 encoded
	ContentType string
	ContentID   string
}

// reservedHeaders are carried by dedicated Payload fields or set by Postmark.
// Names are matched exactly.
var reservedHeaders = map[string]struct{}{
	"Bcc":          {},
	"Cc":           {},
	"From":         {},
	"Reply-To":     {},
	"Sender":       {},
	"Subject":      {},
	"To":           {},
	"Date":         {},
	"Content-Type": {},
}

// Translate converts a message into a Payload.
func Translate(msg *mail.Message) (*Payload, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	if len(msg.From) == 0 {
		return nil, ErrMissingFromAddress
	}

	p := &Payload{
		From:        msg.From[0].String(),
		To:          optional(joinAddresses(msg.To)),
		Subject:     msg.Subject,
		TrackOpens:  true,
		Cc:          optional(joinAddresses(msg.Cc)),
		Bcc:         optional(joinAddresses(msg.Bcc)),
		Headers:     extractHeaders(msg.Headers),
		Attachments: extractAttachments(msg.Body),
	}

	if len(msg.ReplyTo) > 0 {
		replyTo := msg.ReplyTo[0].String()
		p.ReplyTo = &replyTo
	}

	if text, ok := msg.Body.Text(); ok {
		p.TextBody = &text
	}
	if parts, ok := msg.Body.Parts(); ok {
		p.HTMLBody = firstContent(parts, mail.TypeTextHTML)
		p.TextBody = firstContent(parts, mail.TypeTextPlain)
	}

	if c := msg.Capabilities; c != nil {
		if c.Tag != nil {
			tag := *c.Tag
			p.Tag = &tag
		}
		if c.TrackOpens != nil {
			p.TrackOpens = *c.TrackOpens
		}
		if c.TrackLinks != nil {
			mode := *c.TrackLinks
			p.TrackLinks = &mode
		}
		if len(c.Metadata) > 0 {
			p.Metadata = maps.Clone(c.Metadata)
		}
	}

	return p, nil
}

func joinAddresses(list []mail.Address) string {
	formatted := make([]string, 0, len(list))
	for _, a := range list {
		formatted = append(formatted, a.String())
	}
	return strings.Join(formatted, ",")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstContent(parts []*mail.Part, contentType string) *string {
	for _, p := range parts {
		if p.Type == contentType && !p.IsAttachment() {
			s := string(p.Content)
			return &s
		}
	}
	return nil
}

func extractHeaders(headers mail.Headers) map[string]string {
	var out map[string]string
	for _, h := range headers {
		if _, reserved := reservedHeaders[h.Name]; reserved {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[h.Name] = h.Value
	}
	return out
}

func extractAttachments(body mail.Body) []Attachment {
	parts, ok := body.Parts()
	if !ok {
		return nil
	}

	var out []Attachment
	for _, p := range parts {
		if !p.IsAttachment() {
			continue
		}
		out = append(out, Attachment{
			Name:        p.Filename,
			Content:     base64.StdEncoding.EncodeToString(p.Content),
			ContentType: p.Type,
			ContentID:   p.ID,
		})
	}
	return out
}
