package mail

import (
	"errors"
	"strings"

	gomail "github.com/emersion/go-message/mail"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// NewAddress returns an Address with the given email and optional name.
func NewAddress(email string, name ...string) Address {
	a := Address{Email: email}
	if len(name) > 0 {
		a.Name = name[0]
	}
	return a
}

// String formats the address as "<email>" or "Name <email>".
// Names containing specials are quoted.
func (a Address) String() string {
	if a.Name == "" {
		return "<" + a.Email + ">"
	}
	return quoteName(a.Name) + " <" + a.Email + ">"
}

// ParseAddress parses a single RFC 5322 address such as "Jane <jane@example.com>".
func ParseAddress(s string) (Address, error) {
	addr, err := gomail.ParseAddress(s)
	if err != nil {
		return Address{}, errors.Join(ErrInvalidAddress, err)
	}
	return Address{Name: addr.Name, Email: addr.Address}, nil
}

// ParseAddressList parses a comma separated list of RFC 5322 addresses.
// An empty string yields an empty list.
func ParseAddressList(s string) ([]Address, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	list, err := gomail.ParseAddressList(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}
	return fromGoMessage(list), nil
}

// MustParseAddressList is like ParseAddressList but panics on error.
// Intended for tests and static configuration.
func MustParseAddressList(s string) []Address {
	list, err := ParseAddressList(s)
	if err != nil {
		panic(err)
	}
	return list
}

func fromGoMessage(list []*gomail.Address) []Address {
	if len(list) == 0 {
		return nil
	}
	out := make([]Address, 0, len(list))
	for _, a := range list {
		out = append(out, Address{Name: a.Name, Email: a.Address})
	}
	return out
}

const nameSpecials = `()<>[]:;@\,"`

func quoteName(name string) string {
	if !strings.ContainsAny(name, nameSpecials) {
		return name
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(name) + `"`
}
