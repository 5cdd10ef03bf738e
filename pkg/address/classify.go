package address

import (
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/net/idna"
)

const maxLocalPartLength = 64

// hostnameProfile maps and validates hostnames for DNS lookup.
// StrictDomainName limits ASCII labels to letters, digits and hyphens.
var hostnameProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.VerifyDNSLength(true),
	idna.StrictDomainName(true),
)

// Result is the outcome of Classify.
type Result struct {
	Email    string // lower-cased email, empty for hostname-only input
	Hostname string // lower-cased hostname, or the domain part of Email
}

// HasEmail reports whether the classified value was an email address.
func (r Result) HasEmail() bool {
	return r.Email != ""
}

// Classify determines whether input is an email address or a hostname.
func Classify(input string) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}, ErrEmptyInput
	}

	if IsEmail(input) {
		email := strings.ToLower(input)
		return Result{
			Email:    email,
			Hostname: DomainOf(email),
		}, nil
	}

	if IsHostname(input) {
		return Result{Hostname: strings.ToLower(input)}, nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrNeitherEmailNorHostname, input)
}

// IsEmail reports whether s is a syntactically valid email address.
// Internationalized domains and quoted local parts are accepted.
func IsEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at < 1 || at > maxLocalPartLength {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if !IsHostname(domain) {
		return false
	}
	asciiDomain, err := hostnameProfile.ToASCII(domain)
	if err != nil {
		return false
	}

	if isQuotedLocal(local) {
		local = "quoted"
	} else if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}

	return checkmail.ValidateFormat(local+"@"+asciiDomain) == nil
}

// isQuotedLocal reports whether local is a quoted string of printable
// ASCII with backslash escapes.
func isQuotedLocal(local string) bool {
	if len(local) < 3 || local[0] != '"' || local[len(local)-1] != '"' {
		return false
	}
	inner := local[1 : len(local)-1]
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\':
			i++
			if i == len(inner) || inner[i] < 0x20 || inner[i] > 0x7e {
				return false
			}
		case c == '"', c < 0x20, c > 0x7e:
			return false
		}
	}
	return true
}

// IsHostname reports whether s is a syntactically valid DNS hostname.
func IsHostname(s string) bool {
	if s == "" || strings.HasSuffix(s, ".") {
		return false
	}

	ascii, err := hostnameProfile.ToASCII(s)
	if err != nil {
		return false
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}

	return isTopLevelLabel(labels[len(labels)-1])
}

// DomainOf returns the part of email after the last "@".
// It returns an empty string when email has no "@".
func DomainOf(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

func isTopLevelLabel(label string) bool {
	if strings.HasPrefix(label, "xn--") {
		return len(label) > len("xn--")
	}
	if len(label) < 2 {
		return false
	}
	for _, r := range label {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
