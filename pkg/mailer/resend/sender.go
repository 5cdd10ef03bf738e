package resend

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
	"github.com/dmitrymomot/postmarkit/pkg/transport"
)

var (
	ErrMissingAPIKey     = errors.New("resend: missing API key")
	ErrInvalidPayload    = errors.New("resend: invalid payload")
	ErrInvalidAttachment = errors.New("resend: invalid attachment")
)

// Config holds Resend credentials.
type Config struct {
	APIKey string `env:"RESEND_API_KEY" mapstructure:"api_key"`
}

// EmailsAPI is the part of the Resend SDK used by Sender.
// The Emails service of a *resend.Client satisfies it.
type EmailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// TagName is the Resend tag carrying the Postmark tag of a payload.
const TagName = "tag"

// Sender delivers transport payloads through Resend. Open and link
// tracking directives have no Resend equivalent and are dropped.
type Sender struct {
	emails EmailsAPI
	now    func() time.Time
}

// New creates a Sender using the Resend HTTP API.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewWithAPI(resend.NewClient(cfg.APIKey).Emails), nil
}

// NewWithAPI creates a Sender on top of an existing emails API.
func NewWithAPI(emails EmailsAPI) *Sender {
	return &Sender{emails: emails, now: time.Now}
}

// SendEmail implements transport.Sender.
func (s *Sender) SendEmail(ctx context.Context, p *transport.Payload) (*transport.SendResult, error) {
	req, err := buildRequest(p)
	if err != nil {
		return nil, err
	}

	resp, err := s.emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resend: send: %w", err)
	}
	return &transport.SendResult{
		MessageID:   resp.Id,
		SubmittedAt: s.now().UTC(),
		To:          deref(p.To),
	}, nil
}

func buildRequest(p *transport.Payload) (*resend.SendEmailRequest, error) {
	from, err := mail.ParseAddress(p.From)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	to, err := addressList(deref(p.To))
	if err != nil {
		return nil, err
	}

	req := &resend.SendEmailRequest{
		From:    format(from),
		To:      to,
		Subject: p.Subject,
		Html:    deref(p.HTMLBody),
		Text:    deref(p.TextBody),
		Headers: p.Headers,
	}
	if req.Cc, err = addressList(deref(p.Cc)); err != nil {
		return nil, err
	}
	if req.Bcc, err = addressList(deref(p.Bcc)); err != nil {
		return nil, err
	}
	if p.ReplyTo != nil {
		replyTo, err := mail.ParseAddress(*p.ReplyTo)
		if err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		req.ReplyTo = format(replyTo)
	}

	for _, a := range p.Attachments {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAttachment, a.Name, err)
		}
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    a.Name,
			Content:     content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		})
	}

	if p.Tag != nil && *p.Tag != "" {
		req.Tags = append(req.Tags, resend.Tag{Name: TagName, Value: *p.Tag})
	}
	for _, k := range slices.Sorted(maps.Keys(p.Metadata)) {
		req.Tags = append(req.Tags, resend.Tag{Name: k, Value: tagValue(p.Metadata[k])})
	}
	return req, nil
}

func addressList(s string) ([]string, error) {
	list, err := mail.ParseAddressList(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = format(a)
	}
	return out, nil
}

// format drops the angle brackets of nameless addresses.
func format(a mail.Address) string {
	if a.Name == "" {
		return a.Email
	}
	return a.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func tagValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

var _ transport.Sender = (*Sender)(nil)
