package postmark

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/postmarkit/pkg/paginate"
)

// AccountClient talks to the account-scoped Postmark API.
type AccountClient struct {
	api *api
}

// NewAccount creates an account API client authenticated with cfg.AccountToken.
func NewAccount(cfg Config, opts ...Option) *AccountClient {
	cfg = cfg.withDefaults()
	return &AccountClient{
		api: newAPI(cfg, cfg.AccountToken, accountTokenHeader, opts),
	}
}

// ListDomains returns one page of GET /domains.
func (c *AccountClient) ListDomains(ctx context.Context, count, offset int) (paginate.Page, error) {
	return c.list(ctx, "/domains", count, offset)
}

// ListSenderSignatures returns one page of GET /senders.
func (c *AccountClient) ListSenderSignatures(ctx context.Context, count, offset int) (paginate.Page, error) {
	return c.list(ctx, "/senders", count, offset)
}

func (c *AccountClient) list(ctx context.Context, path string, count, offset int) (paginate.Page, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	params.Set("offset", strconv.Itoa(offset))

	page := paginate.Page{}
	if err := c.api.do(ctx, http.MethodGet, path, params, nil, &page); err != nil {
		return nil, err
	}
	return page, nil
}
