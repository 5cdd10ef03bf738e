package dnsverify_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/pkg/dnsverify"
)

type fakeResolver struct {
	txt   map[string][]string
	cname map[string]string
	err   error
}

func (f *fakeResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.txt[name]; ok {
		return r, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
}

func (f *fakeResolver) LookupCNAME(_ context.Context, host string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if c, ok := f.cname[host]; ok {
		return c, nil
	}
	return "", &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func TestVerifier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	v := dnsverify.New(dnsverify.WithResolver(&fakeResolver{
		txt: map[string][]string{
			"example.com":                       {"google-site-verification=x", "v=spf1 a mx include:spf.mtasv.net ~all"},
			"other.com":                         {"v=spf1 include:_spf.google.com ~all"},
			"20240101pm._domainkey.example.com": {"k=rsa;p=MIGfMA0GCSq"},
		},
		cname: map[string]string{
			"pm-bounces.example.com": "pm.mtasv.net.",
			"bounce.other.com":       "elsewhere.net.",
		},
	}))

	t.Run("spf", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, v.SPF(ctx, " Example.COM "))
		require.ErrorIs(t, v.SPF(ctx, "other.com"), dnsverify.ErrMismatch)
		require.ErrorIs(t, v.SPF(ctx, "missing.com"), dnsverify.ErrRecordNotFound)
		require.ErrorIs(t, v.SPF(ctx, "not a domain"), dnsverify.ErrInvalidDomain)
	})

	t.Run("return path", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, v.ReturnPath(ctx, "example.com", ""))
		require.ErrorIs(t, v.ReturnPath(ctx, "other.com", "bounce.other.com"), dnsverify.ErrMismatch)
		require.ErrorIs(t, v.ReturnPath(ctx, "other.com", ""), dnsverify.ErrRecordNotFound)
	})

	t.Run("dkim", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, v.DKIM(ctx, "20240101pm._domainkey.example.com", "p=MIGfMA0GCSq"))
		require.ErrorIs(t, v.DKIM(ctx, "20240101pm._domainkey.example.com", "p=other"), dnsverify.ErrMismatch)
		require.ErrorIs(t, v.DKIM(ctx, "", "x"), dnsverify.ErrInvalidDomain)
	})

	t.Run("resolver failure", func(t *testing.T) {
		t.Parallel()

		failing := dnsverify.New(dnsverify.WithResolver(&fakeResolver{err: errors.New("timeout")}))
		require.ErrorIs(t, failing.SPF(ctx, "example.com"), dnsverify.ErrLookupFailed)
	})
}
