package address_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/pkg/address"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("emails are lower-cased and split", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{
			"me@example.com",
			"ME@Example.com",
			"first.last+tag@mail.Example.co.uk",
			"  padded@example.org  ",
			"user@xn--mnchen-3ya.de",
			"user@München.de",
			`"quoted"@example.com`,
			`"with space"@example.com`,
		} {
			res, err := address.Classify(in)
			require.NoError(t, err, in)
			want := strings.ToLower(strings.TrimSpace(in))
			assert.True(t, res.HasEmail(), in)
			assert.Equal(t, want, res.Email, in)
			assert.Equal(t, address.DomainOf(want), res.Hostname, in)
		}
	})

	t.Run("hostnames have no email", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{
			"example.com",
			"Example.COM",
			"mail.sub-domain.example.io",
			"xn--mnchen-3ya.de",
		} {
			res, err := address.Classify(in)
			require.NoError(t, err, in)
			assert.False(t, res.HasEmail(), in)
			assert.Empty(t, res.Email, in)
			assert.Equal(t, strings.ToLower(in), res.Hostname, in)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "   "} {
			_, err := address.Classify(in)
			require.ErrorIs(t, err, address.ErrEmptyInput)
		}
	})

	t.Run("neither email nor hostname", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{
			"not an email or host!!",
			"localhost",
			"@example.com",
			"me@",
			"-bad.example.com",
			"bad-.example.com",
			"example.c",
			"example.123",
			"a..b@example.com",
			".a@example.com",
			strings.Repeat("a", 65) + "@example.com",
		} {
			_, err := address.Classify(in)
			require.ErrorIs(t, err, address.ErrNeitherEmailNorHostname, in)
		}
	})
}

func TestIsHostname(t *testing.T) {
	t.Parallel()

	assert.True(t, address.IsHostname("example.com"))
	assert.True(t, address.IsHostname("a.b.c.example.com"))
	assert.False(t, address.IsHostname("example.com."))
	assert.False(t, address.IsHostname("exa_mple.com"))
	assert.False(t, address.IsHostname(strings.Repeat("a", 64)+".com"))
	assert.False(t, address.IsHostname(""))
}

func TestIsEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, address.IsEmail("someone@example.com"))
	assert.False(t, address.IsEmail("someone"))
	assert.False(t, address.IsEmail("someone@localhost"))
	assert.False(t, address.IsEmail("some one@example.com"))
	assert.True(t, address.IsEmail("user@münchen.de"))
	assert.True(t, address.IsEmail(`"quoted"@example.com`))
	assert.True(t, address.IsEmail(`"esc\"aped"@example.com`))
	assert.False(t, address.IsEmail(`"unterminated@example.com`))
	assert.False(t, address.IsEmail(`""@example.com`))
	assert.False(t, address.IsEmail("user@münchen"))
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", address.DomainOf("me@example.com"))
	assert.Equal(t, "", address.DomainOf("example.com"))
}
