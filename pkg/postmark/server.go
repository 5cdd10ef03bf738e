package postmark

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/dmitrymomot/postmarkit/pkg/transport"
)

// Client talks to the server-scoped Postmark API: sending and suppressions.
type Client struct {
	api    *api
	stream string
}

// New creates a server API client authenticated with cfg.ServerToken.
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		api:    newAPI(cfg, cfg.ServerToken, serverTokenHeader, opts),
		stream: cfg.MessageStream,
	}
}

type emailHeader struct {
	Name  string
	Value string
}

type emailAttachment struct {
	Name        string
	Content     string
	ContentType string
	ContentID   string `json:",omitempty"`
}

type emailRequest struct {
	From          string
	To            string `json:",omitempty"`
	Cc            string `json:",omitempty"`
	Bcc           string `json:",omitempty"`
	Subject       string
	Tag           string        `json:",omitempty"`
	HtmlBody      string        `json:",omitempty"`
	TextBody      string        `json:",omitempty"`
	ReplyTo       string        `json:",omitempty"`
	Headers       []emailHeader `json:",omitempty"`
	TrackOpens    bool
	TrackLinks    string            `json:",omitempty"`
	Attachments   []emailAttachment `json:",omitempty"`
	Metadata      map[string]any    `json:",omitempty"`
	MessageStream string            `json:",omitempty"`
}

type emailResponse struct {
	To          string
	SubmittedAt time.Time
	MessageID   string
	ErrorCode   int
	Message     string
}

// SendEmail sends a translated message through POST /email.
func (c *Client) SendEmail(ctx context.Context, p *transport.Payload) (*transport.SendResult, error) {
	var resp emailResponse
	if err := c.api.do(ctx, http.MethodPost, "/email", nil, c.emailRequest(p), &resp); err != nil {
		return nil, err
	}
	if resp.ErrorCode != 0 {
		return nil, errors.Join(ErrRequestFailed, &APIError{
			StatusCode: http.StatusOK,
			ErrorCode:  resp.ErrorCode,
			Message:    resp.Message,
		})
	}

	return &transport.SendResult{
		MessageID:   resp.MessageID,
		SubmittedAt: resp.SubmittedAt,
		To:          resp.To,
	}, nil
}

// GetSuppressions returns the suppression dump of the configured message stream.
// A non-empty emailFilter restricts the dump to that address.
func (c *Client) GetSuppressions(ctx context.Context, emailFilter string) (map[string]any, error) {
	params := url.Values{}
	if emailFilter != "" {
		params.Set("EmailAddress", emailFilter)
	}

	out := map[string]any{}
	path := "/message-streams/" + url.PathEscape(c.stream) + "/suppressions/dump"
	if err := c.api.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Server fetches the server settings. It is a cheap authenticated call,
// used as a health probe.
func (c *Client) Server(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.api.do(ctx, http.MethodGet, "/server", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) emailRequest(p *transport.Payload) *emailRequest {
	req := &emailRequest{
		From:          p.From,
		To:            deref(p.To),
		Subject:       p.Subject,
		Cc:            deref(p.Cc),
		Bcc:           deref(p.Bcc),
		Tag:           deref(p.Tag),
		HtmlBody:      deref(p.HTMLBody),
		TextBody:      deref(p.TextBody),
		ReplyTo:       deref(p.ReplyTo),
		TrackOpens:    p.TrackOpens,
		Metadata:      p.Metadata,
		MessageStream: c.stream,
	}
	if p.TrackLinks != nil {
		req.TrackLinks = p.TrackLinks.String()
	}
	for _, name := range slices.Sorted(maps.Keys(p.Headers)) {
		req.Headers = append(req.Headers, emailHeader{Name: name, Value: p.Headers[name]})
	}
	for _, a := range p.Attachments {
		req.Attachments = append(req.Attachments, emailAttachment(a))
	}
	return req
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ transport.Sender = (*Client)(nil)
