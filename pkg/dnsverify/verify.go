package dnsverify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/dmitrymomot/postmarkit/pkg/address"
)

// Postmark's published DNS targets.
const (
	SPFInclude       = "include:spf.mtasv.net"
	ReturnPathTarget = "pm.mtasv.net"
	ReturnPathPrefix = "pm-bounces"
)

// Resolver looks up DNS records. *net.Resolver satisfies it.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithResolver replaces the resolver.
// Default: net.DefaultResolver.
func WithResolver(r Resolver) Option {
	return func(v *Verifier) {
		if r != nil {
			v.resolver = r
		}
	}
}

// Verifier checks that a sending domain publishes the records Postmark
// needs.
type Verifier struct {
	resolver Resolver
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{resolver: net.DefaultResolver}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SPF checks that domain has a v=spf1 TXT record including Postmark.
func (v *Verifier) SPF(ctx context.Context, domain string) error {
	domain, err := normalize(domain)
	if err != nil {
		return err
	}

	records, err := v.lookupTXT(ctx, domain)
	if err != nil {
		return err
	}
	found := false
	for _, r := range records {
		if !strings.HasPrefix(strings.ToLower(r), "v=spf1") {
			continue
		}
		found = true
		for _, term := range strings.Fields(strings.ToLower(r)) {
			if term == SPFInclude {
				return nil
			}
		}
	}
	if !found {
		return fmt.Errorf("%w: no SPF record on %s", ErrRecordNotFound, domain)
	}
	return fmt.Errorf("%w: SPF on %s lacks %s", ErrMismatch, domain, SPFInclude)
}

// ReturnPath checks that host (default pm-bounces.<domain>) is a CNAME
// of Postmark's bounce server.
func (v *Verifier) ReturnPath(ctx context.Context, domain, host string) error {
	domain, err := normalize(domain)
	if err != nil {
		return err
	}
	if host == "" {
		host = ReturnPathPrefix + "." + domain
	}

	target, err := v.resolver.LookupCNAME(ctx, host)
	if err != nil {
		return lookupError(host, err)
	}
	if !strings.EqualFold(strings.TrimSuffix(target, "."), ReturnPathTarget) {
		return fmt.Errorf("%w: %s points to %s", ErrMismatch, host, target)
	}
	return nil
}

// DKIM checks that the TXT record at host contains the public key value
// Postmark issued for the domain.
func (v *Verifier) DKIM(ctx context.Context, host, value string) error {
	value = strings.TrimSpace(value)
	if host == "" || value == "" {
		return fmt.Errorf("%w: DKIM host and value are required", ErrInvalidDomain)
	}

	records, err := v.lookupTXT(ctx, host)
	if err != nil {
		return err
	}
	for _, r := range records {
		if strings.Contains(r, value) {
			return nil
		}
	}
	return fmt.Errorf("%w: DKIM key not published at %s", ErrMismatch, host)
}

func (v *Verifier) lookupTXT(ctx context.Context, name string) ([]string, error) {
	records, err := v.resolver.LookupTXT(ctx, name)
	if err != nil {
		return nil, lookupError(name, err)
	}
	return records, nil
}

func lookupError(name string, err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	return errors.Join(ErrLookupFailed, err)
}

func normalize(domain string) (string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if !address.IsHostname(domain) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return domain, nil
}
