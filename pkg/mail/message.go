package mail

import (
	"slices"
	"strings"
)

// MIME dispositions recognised by the translator.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Common part content types.
const (
	TypeTextPlain = "text/plain"
	TypeTextHTML  = "text/html"
)

// Part is one content block of a MIME body.
type Part struct {
	Type        string // media type without parameters, e.g. "text/html"
	Disposition string // "", DispositionInline or DispositionAttachment
	Filename    string
	ID          string // Content-ID without angle brackets
	Charset     string
	Content     []byte // decoded content
}

// IsAttachment reports whether the part has an attachment disposition.
func (p *Part) IsAttachment() bool {
	return p.Disposition == DispositionAttachment
}

// NewTextPart returns a text/plain part.
func NewTextPart(content string) *Part {
	return &Part{Type: TypeTextPlain, Charset: "utf-8", Content: []byte(content)}
}

// NewHTMLPart returns a text/html part.
func NewHTMLPart(content string) *Part {
	return &Part{Type: TypeTextHTML, Charset: "utf-8", Content: []byte(content)}
}

// NewAttachment returns an attachment part.
func NewAttachment(filename, contentType string, content []byte) *Part {
	return &Part{
		Type:        contentType,
		Disposition: DispositionAttachment,
		Filename:    filename,
		Content:     content,
	}
}

// Body is either empty, a flat text body, or a list of MIME parts.
// The zero value is an empty body.
type Body struct {
	text  *string
	parts []*Part
}

// NewTextBody returns a flat text body.
func NewTextBody(s string) Body {
	return Body{text: &s}
}

// NewMultipartBody returns a MIME body holding parts.
// Calling it without parts yields an empty MIME body.
func NewMultipartBody(parts ...*Part) Body {
	if parts == nil {
		parts = []*Part{}
	}
	return Body{parts: parts}
}

// Text returns the flat text body and whether the body is flat text.
func (b Body) Text() (string, bool) {
	if b.text == nil {
		return "", false
	}
	return *b.text, true
}

// Parts returns the MIME parts and whether the body is a MIME body.
func (b Body) Parts() ([]*Part, bool) {
	if b.parts == nil {
		return nil, false
	}
	return b.parts, true
}

// IsEmpty reports whether the body is neither flat text nor a MIME body.
func (b Body) IsEmpty() bool {
	return b.text == nil && b.parts == nil
}

// Header is a single message header field.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of header fields. Repeated names are allowed.
type Headers []Header

// Add appends a header field.
func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// Set replaces every field named name (case-insensitive) with a single one.
func (h *Headers) Set(name, value string) {
	h.Del(name)
	h.Add(name, value)
}

// Del removes every field named name (case-insensitive).
func (h *Headers) Del(name string) {
	*h = slices.DeleteFunc(*h, func(f Header) bool {
		return strings.EqualFold(f.Name, name)
	})
}

// Get returns the value of the first field named name (case-insensitive).
func (h Headers) Get(name string) string {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Values returns the values of every field named name (case-insensitive), in order.
func (h Headers) Values(name string) []string {
	var out []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Message is a candidate outbound email.
type Message struct {
	From    []Address
	To      []Address
	Cc      []Address
	Bcc     []Address
	ReplyTo []Address
	Subject string
	Headers Headers
	Body    Body

	// Capabilities is nil for plain messages.
	Capabilities *Capabilities
}

// NewMessage returns an empty message without Postmark extensions.
func NewMessage() *Message {
	return &Message{}
}

// NewPostmarkMessage returns an empty message with every Postmark extension
// enabled (see NewCapabilities).
func NewPostmarkMessage() *Message {
	return &Message{Capabilities: NewCapabilities()}
}

// AddFrom appends a From address.
func (m *Message) AddFrom(email string, name ...string) *Message {
	m.From = append(m.From, NewAddress(email, name...))
	return m
}

// AddTo appends a To recipient.
func (m *Message) AddTo(email string, name ...string) *Message {
	m.To = append(m.To, NewAddress(email, name...))
	return m
}

// AddCc appends a Cc recipient.
func (m *Message) AddCc(email string, name ...string) *Message {
	m.Cc = append(m.Cc, NewAddress(email, name...))
	return m
}

// AddBcc appends a Bcc recipient.
func (m *Message) AddBcc(email string, name ...string) *Message {
	m.Bcc = append(m.Bcc, NewAddress(email, name...))
	return m
}

// AddReplyTo appends a Reply-To address.
func (m *Message) AddReplyTo(email string, name ...string) *Message {
	m.ReplyTo = append(m.ReplyTo, NewAddress(email, name...))
	return m
}

// SetSubject sets the subject.
func (m *Message) SetSubject(subject string) *Message {
	m.Subject = subject
	return m
}

// SetText replaces the body with flat text.
func (m *Message) SetText(text string) *Message {
	m.Body = NewTextBody(text)
	return m
}

// AddPart appends a MIME part, converting a flat or empty body to a MIME body.
// A flat text body becomes a leading text/plain part.
func (m *Message) AddPart(p *Part) *Message {
	parts, ok := m.Body.Parts()
	if !ok {
		if text, isText := m.Body.Text(); isText {
			parts = []*Part{NewTextPart(text)}
		}
	}
	m.Body = NewMultipartBody(append(parts, p)...)
	return m
}

// Recipients returns To, Cc and Bcc in that order.
func (m *Message) Recipients() []Address {
	out := make([]Address, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// SetTag sets the Postmark tag, enabling the capability descriptor if needed.
func (m *Message) SetTag(tag string) *Message {
	m.capabilities().Tag = &tag
	return m
}

// SetMetadata sets one metadata key, enabling the capability descriptor if needed.
func (m *Message) SetMetadata(key string, value any) *Message {
	c := m.capabilities()
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	c.Metadata[key] = value
	return m
}

// SetTrackOpens sets open tracking, enabling the capability descriptor if needed.
func (m *Message) SetTrackOpens(track bool) *Message {
	m.capabilities().TrackOpens = &track
	return m
}

// SetTrackLinks sets the link tracking mode, enabling the capability descriptor if needed.
func (m *Message) SetTrackLinks(mode LinkTracking) *Message {
	m.capabilities().TrackLinks = &mode
	return m
}

func (m *Message) capabilities() *Capabilities {
	if m.Capabilities == nil {
		m.Capabilities = NewCapabilities()
	}
	return m.Capabilities
}
