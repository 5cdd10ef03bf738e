package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
)

// PermittedSenders reports whether an address may send through Postmark.
type PermittedSenders interface {
	IsPermittedSender(ctx context.Context, candidate string) (bool, error)
}

// SuppressionList reports whether Postmark refuses to deliver to an address.
type SuppressionList interface {
	IsSuppressed(ctx context.Context, email string) (bool, error)
}

// HasFromAddress requires at least one From address.
func HasFromAddress() MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if len(msg.From) == 0 {
			return []Violation{missingFrom()}, nil
		}
		return nil, nil
	}
}

// MaxFromCount limits the number of From addresses.
func MaxFromCount(limit int) MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if n := len(msg.From); n > limit {
			return []Violation{{
				Code:    CodeTooManyFrom,
				Message: fmt.Sprintf("The message has %d from addresses but should not exceed %d", n, limit),
				Params:  map[string]any{"count": n, "max": limit},
			}}, nil
		}
		return nil, nil
	}
}

// HasSubject requires a non-empty subject.
func HasSubject() MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if msg.Subject == "" {
			return []Violation{{
				Code:    CodeMissingSubject,
				Message: "The message does not have a subject",
			}}, nil
		}
		return nil, nil
	}
}

// HasToRecipient requires at least one To recipient.
func HasToRecipient() MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if len(msg.To) == 0 {
			return []Violation{{
				Code:    CodeMissingTo,
				Message: "The message does not have any recipients in the To field",
			}}, nil
		}
		return nil, nil
	}
}

// MaxRecipientCount limits the combined number of To, Cc and Bcc recipients.
func MaxRecipientCount(limit int) MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if n := len(msg.To) + len(msg.Cc) + len(msg.Bcc); n > limit {
			return []Violation{{
				Code:    CodeTooManyRecipients,
				Message: fmt.Sprintf("The message has %d recipients but should not exceed %d", n, limit),
				Params:  map[string]any{"count": n, "max": limit},
			}}, nil
		}
		return nil, nil
	}
}

// MaxReplyToCount limits the number of Reply-To addresses.
func MaxReplyToCount(limit int) MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if n := len(msg.ReplyTo); n > limit {
			return []Violation{{
				Code:    CodeTooManyReplyTo,
				Message: fmt.Sprintf("The message has %d reply-to addresses but should not exceed %d", n, limit),
				Params:  map[string]any{"count": n, "max": limit},
			}}, nil
		}
		return nil, nil
	}
}

// MetaData enforces Postmark's metadata limits: keys up to 20 bytes and
// scalar values up to 80 bytes in their string form. Keys are checked in
// sorted order and the first offending pair is reported.
func MetaData() MessageCheck {
	return func(_ context.Context, msg *mail.Message) ([]Violation, error) {
		if msg.Capabilities == nil || len(msg.Capabilities.Metadata) == 0 {
			return nil, nil
		}

		md := msg.Capabilities.Metadata
		keys := make([]string, 0, len(md))
		for k := range md {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			if n := len(k); n > MaxMetadataKeyLength {
				return []Violation{{
					Code:    CodeMetaDataKeyTooLong,
					Message: fmt.Sprintf("The metadata key \"%s\" is too long. It is %d characters but should not exceed %d", k, n, MaxMetadataKeyLength),
					Params:  map[string]any{"key": k, "length": n, "max": MaxMetadataKeyLength},
				}}, nil
			}

			s, ok := scalarString(md[k])
			if !ok {
				continue
			}
			if n := len(s); n > MaxMetadataValueLen {
				return []Violation{{
					Code:    CodeMetaDataValueTooLong,
					Message: fmt.Sprintf("The metadata value for \"%s\" is too long. It is %d characters but should not exceed %d", k, n, MaxMetadataValueLen),
					Params:  map[string]any{"key": k, "length": n, "max": MaxMetadataValueLen},
				}}, nil
			}
		}
		return nil, nil
	}
}

// FromAddress requires every From address to be a permitted sender.
func FromAddress(permitted PermittedSenders) MessageCheck {
	return func(ctx context.Context, msg *mail.Message) ([]Violation, error) {
		if len(msg.From) == 0 {
			return []Violation{missingFrom()}, nil
		}
		for _, a := range msg.From {
			ok, err := permitted.IsPermittedSender(ctx, a.Email)
			if err != nil {
				return nil, err
			}
			if !ok {
				return []Violation{notPermitted(a.Email)}, nil
			}
		}
		return nil, nil
	}
}

// Recipients requires no To, Cc or Bcc recipient to be suppressed.
// The first suppressed recipient is reported.
func Recipients(list SuppressionList) MessageCheck {
	check := NotSuppressed(list)
	return func(ctx context.Context, msg *mail.Message) ([]Violation, error) {
		for _, a := range msg.Recipients() {
			violations, err := check(ctx, a.Email)
			if err != nil || len(violations) > 0 {
				return violations, err
			}
		}
		return nil, nil
	}
}

func missingFrom() Violation {
	return Violation{
		Code:    CodeMissingFrom,
		Message: "The message does not have a from address",
	}
}

func notPermitted(email string) Violation {
	return Violation{
		Code:    CodeNotPermitted,
		Message: fmt.Sprintf("The email address %s is not listed in Postmark's sender signatures", email),
		Params:  map[string]any{"email": email},
	}
}

// scalarString returns the string form of a scalar metadata value.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		if x {
			return "1", true
		}
		return "", true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x), true
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}
