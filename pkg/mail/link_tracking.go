package mail

import "fmt"

// LinkTracking selects which body parts Postmark rewrites links in.
type LinkTracking int

const (
	LinkTrackingNone LinkTracking = iota + 1
	LinkTrackingHTMLAndText
	LinkTrackingTextOnly
	LinkTrackingHTMLOnly
)

// DefaultLinkTracking is the mode used when a message never sets one.
const DefaultLinkTracking = LinkTrackingHTMLOnly

var linkTrackingNames = map[LinkTracking]string{
	LinkTrackingNone:        "None",
	LinkTrackingHTMLAndText: "HtmlAndText",
	LinkTrackingTextOnly:    "TextOnly",
	LinkTrackingHTMLOnly:    "HtmlOnly",
}

// ParseLinkTracking converts a wire value into a LinkTracking.
func ParseLinkTracking(s string) (LinkTracking, error) {
	for lt, name := range linkTrackingNames {
		if name == s {
			return lt, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLinkTracking, s)
}

// LinkTrackingModes returns every mode in declaration order.
func LinkTrackingModes() []LinkTracking {
	return []LinkTracking{
		LinkTrackingNone,
		LinkTrackingHTMLAndText,
		LinkTrackingTextOnly,
		LinkTrackingHTMLOnly,
	}
}

// IsValid reports whether lt is one of the four known modes.
func (lt LinkTracking) IsValid() bool {
	_, ok := linkTrackingNames[lt]
	return ok
}

// String returns the wire value.
func (lt LinkTracking) String() string {
	if name, ok := linkTrackingNames[lt]; ok {
		return name
	}
	return fmt.Sprintf("LinkTracking(%d)", int(lt))
}

// MarshalText implements encoding.TextMarshaler.
func (lt LinkTracking) MarshalText() ([]byte, error) {
	if !lt.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLinkTracking, int(lt))
	}
	return []byte(lt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lt *LinkTracking) UnmarshalText(text []byte) error {
	v, err := ParseLinkTracking(string(text))
	if err != nil {
		return err
	}
	*lt = v
	return nil
}
