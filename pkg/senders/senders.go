package senders

import (
	"context"
	"slices"

	"github.com/dmitrymomot/postmarkit/pkg/address"
	"github.com/dmitrymomot/postmarkit/pkg/cache"
	"github.com/dmitrymomot/postmarkit/pkg/paginate"
)

// Cache keys for the two lists.
const (
	DomainListCacheKey = "PostmarkDomains"
	SenderListCacheKey = "PostmarkSenders"
)

// Response fields of the account API list endpoints.
const (
	domainsField          = "Domains"
	domainNameField       = "Name"
	senderSignaturesField = "SenderSignatures"
	senderEmailField      = "EmailAddress"
)

// AccountAPI lists the verified domains and sender signatures of a Postmark account.
type AccountAPI interface {
	ListDomains(ctx context.Context, count, offset int) (paginate.Page, error)
	ListSenderSignatures(ctx context.Context, count, offset int) (paginate.Page, error)
}

// Option configures a Permitted instance.
type Option func(*options)

type options struct {
	maxPages int
}

func defaultOptions() *options {
	return &options{}
}

// WithMaxPages limits the number of pages fetched per list. Zero means unlimited.
// Default: 0.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// Permitted answers whether an address or hostname may send through Postmark.
// Both lists are fetched once and then served from the cache.
type Permitted struct {
	api    AccountAPI
	loader *cache.Loader
	opts   *options
}

// New creates a Permitted sender cache.
func New(api AccountAPI, store cache.Store, opts ...Option) (*Permitted, error) {
	if api == nil {
		return nil, ErrNoClient
	}
	if store == nil {
		return nil, ErrNoCache
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Permitted{
		api:    api,
		loader: cache.NewLoader(store),
		opts:   o,
	}, nil
}

// IsPermittedSender reports whether candidate, an email address or hostname,
// is a verified sender signature or belongs to a verified domain.
// Hostname-only input is checked against the domain list alone.
func (p *Permitted) IsPermittedSender(ctx context.Context, candidate string) (bool, error) {
	res, err := address.Classify(candidate)
	if err != nil {
		return false, err
	}

	if res.HasEmail() {
		senders, err := p.Senders(ctx)
		if err != nil {
			return false, err
		}
		if slices.Contains(senders, res.Email) {
			return true, nil
		}
	}

	domains, err := p.Domains(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(domains, res.Hostname), nil
}

// Domains returns the lower-cased verified domain names.
func (p *Permitted) Domains(ctx context.Context) ([]string, error) {
	return p.loader.GetOrLoad(ctx, DomainListCacheKey, func(ctx context.Context) ([]string, error) {
		return paginate.FetchAll(ctx, p.api.ListDomains, domainsField, domainNameField, p.paginateOptions()...)
	})
}

// Senders returns the lower-cased sender signature email addresses.
func (p *Permitted) Senders(ctx context.Context) ([]string, error) {
	return p.loader.GetOrLoad(ctx, SenderListCacheKey, func(ctx context.Context) ([]string, error) {
		return paginate.FetchAll(ctx, p.api.ListSenderSignatures, senderSignaturesField, senderEmailField, p.paginateOptions()...)
	})
}

func (p *Permitted) paginateOptions() []paginate.Option {
	return []paginate.Option{paginate.WithMaxPages(p.opts.maxPages)}
}
