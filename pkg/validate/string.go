package validate

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/postmarkit/pkg/address"
)

// StringCheck inspects a single string value such as an email address.
type StringCheck func(ctx context.Context, value string) ([]Violation, error)

// ValidateString runs checks in order and stops at the first one reporting
// violations, returning them as a *Failure.
func ValidateString(ctx context.Context, value string, checks ...StringCheck) error {
	for _, check := range checks {
		violations, err := check(ctx, value)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return &Failure{Violations: violations}
		}
	}
	return nil
}

// IsPermittedSender requires value to be an email address that may send
// through Postmark.
func IsPermittedSender(permitted PermittedSenders) StringCheck {
	return func(ctx context.Context, value string) ([]Violation, error) {
		if !address.IsEmail(value) {
			return []Violation{notValidEmail(value)}, nil
		}
		ok, err := permitted.IsPermittedSender(ctx, value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []Violation{notPermitted(value)}, nil
		}
		return nil, nil
	}
}

// NotSuppressed requires value to be an email address Postmark still delivers to.
func NotSuppressed(list SuppressionList) StringCheck {
	return func(ctx context.Context, value string) ([]Violation, error) {
		if !address.IsEmail(value) {
			return []Violation{notValidEmail(value)}, nil
		}
		suppressed, err := list.IsSuppressed(ctx, value)
		if err != nil {
			return nil, err
		}
		if suppressed {
			return []Violation{{
				Code:    CodeIsSuppressed,
				Message: fmt.Sprintf("The email address \"%s\" has been suppressed. Email messages cannot be sent to this address.", value),
				Params:  map[string]any{"value": value},
			}}, nil
		}
		return nil, nil
	}
}

func notValidEmail(value string) Violation {
	return Violation{
		Code:    CodeNotValidEmailAddress,
		Message: fmt.Sprintf("\"%s\" is not a valid email address", value),
		Params:  map[string]any{"value": value},
	}
}
