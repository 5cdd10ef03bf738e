package mail

import (
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset" // registers non UTF-8 charsets
	gomail "github.com/emersion/go-message/mail"
)

// Header fields that Parse maps to structured Message fields or that only
// describe the MIME encoding of the raw message.
var structuralHeaders = map[string]struct{}{
	"From":                      {},
	"To":                        {},
	"Cc":                        {},
	"Bcc":                       {},
	"Reply-To":                  {},
	"Subject":                   {},
	"Mime-Version":              {},
	"Content-Transfer-Encoding": {},
}

// Parse reads an RFC 5322 message into a Message without capabilities.
//
// Address headers and Subject populate the matching fields. Every other header
// is kept in order. A single text/plain entity becomes a flat text body;
// anything else becomes a MIME body whose parts are the leaves of the entity
// tree in encounter order.
func Parse(r io.Reader) (*Message, error) {
	e, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, errors.Join(ErrParseMessage, err)
	}

	h := gomail.Header{Header: e.Header}
	msg := NewMessage()

	for _, f := range []struct {
		name string
		dst  *[]Address
	}{
		{"From", &msg.From},
		{"To", &msg.To},
		{"Cc", &msg.Cc},
		{"Bcc", &msg.Bcc},
		{"Reply-To", &msg.ReplyTo},
	} {
		if strings.TrimSpace(h.Get(f.name)) == "" {
			continue
		}
		list, err := h.AddressList(f.name)
		if err != nil {
			return nil, errors.Join(ErrParseMessage, fmt.Errorf("%s: %w", f.name, err))
		}
		*f.dst = fromGoMessage(list)
	}

	if msg.Subject, err = h.Subject(); err != nil {
		msg.Subject = h.Get("Subject")
	}

	fields := e.Header.Fields()
	for fields.Next() {
		if _, skip := structuralHeaders[textproto.CanonicalMIMEHeaderKey(fields.Key())]; skip {
			continue
		}
		value, err := fields.Text()
		if err != nil {
			value = fields.Value()
		}
		msg.Headers.Add(fields.Key(), value)
	}

	if mr := e.MultipartReader(); mr != nil {
		parts, err := readParts(mr)
		if err != nil {
			return nil, err
		}
		msg.Body = NewMultipartBody(parts...)
		return msg, nil
	}

	part, err := readPart(e)
	if err != nil {
		return nil, err
	}
	if part.Type == TypeTextPlain && !part.IsAttachment() {
		msg.Body = NewTextBody(string(part.Content))
	} else {
		msg.Body = NewMultipartBody(part)
	}

	return msg, nil
}

func readParts(mr message.MultipartReader) ([]*Part, error) {
	parts := []*Part{}
	for {
		e, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return parts, nil
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return nil, errors.Join(ErrParseMessage, err)
		}

		if inner := e.MultipartReader(); inner != nil {
			nested, err := readParts(inner)
			if err != nil {
				return nil, err
			}
			parts = append(parts, nested...)
			continue
		}

		part, err := readPart(e)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
}

func readPart(e *message.Entity) (*Part, error) {
	p := &Part{Type: TypeTextPlain}

	var typeParams map[string]string
	if e.Header.Get("Content-Type") != "" {
		t, params, err := e.Header.ContentType()
		if err != nil {
			return nil, errors.Join(ErrParseMessage, err)
		}
		p.Type = strings.ToLower(t)
		p.Charset = params["charset"]
		typeParams = params
	}

	if e.Header.Get("Content-Disposition") != "" {
		disp, params, err := e.Header.ContentDisposition()
		if err != nil {
			return nil, errors.Join(ErrParseMessage, err)
		}
		p.Disposition = strings.ToLower(disp)
		p.Filename = params["filename"]
	}
	if p.Filename == "" {
		p.Filename = typeParams["name"]
	}

	p.ID = strings.Trim(strings.TrimSpace(e.Header.Get("Content-Id")), "<>")

	content, err := io.ReadAll(e.Body)
	if err != nil {
		return nil, errors.Join(ErrParseMessage, err)
	}
	p.Content = content

	return p, nil
}
