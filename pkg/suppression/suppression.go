package suppression

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/postmarkit/pkg/address"
	"github.com/dmitrymomot/postmarkit/pkg/cache"
)

// ListCacheKey is the cache key of the suppression list.
const ListCacheKey = "PostmarkSuppressionList"

const (
	suppressionsField = "Suppressions"
	emailField        = "EmailAddress"
)

// API queries the suppression dump of a Postmark message stream.
// An empty emailFilter requests the whole list.
type API interface {
	GetSuppressions(ctx context.Context, emailFilter string) (map[string]any, error)
}

// List tracks addresses Postmark refuses to deliver to.
type List struct {
	api   API
	store cache.Store
}

// New creates a suppression List.
func New(api API, store cache.Store) (*List, error) {
	if api == nil {
		return nil, ErrNoClient
	}
	if store == nil {
		return nil, ErrNoCache
	}
	return &List{api: api, store: store}, nil
}

// IsSuppressed reports whether email is suppressed.
//
// The cached list is consulted first. On a miss Postmark is queried for the
// single address; a positive answer is appended to the cached list.
func (l *List) IsSuppressed(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(email)
	if !address.IsEmail(email) {
		return false, fmt.Errorf("%w: %q", address.ErrNotAnEmailAddress, email)
	}

	list, err := l.cachedList(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(list, email) {
		return true, nil
	}

	remote, err := l.remoteList(ctx, email)
	if err != nil {
		return false, err
	}
	if !slices.Contains(remote, email) {
		return false, nil
	}

	if err := l.store.Save(ctx, ListCacheKey, append(list, email)); err != nil {
		return false, err
	}
	return true, nil
}

// SeedSuppressionListCache replaces the cached list with the full remote list.
func (l *List) SeedSuppressionListCache(ctx context.Context) error {
	remote, err := l.remoteList(ctx, "")
	if err != nil {
		return err
	}
	return l.store.Save(ctx, ListCacheKey, remote)
}

// Addresses returns the cached suppression list. A missing entry is empty.
func (l *List) Addresses(ctx context.Context) ([]string, error) {
	return l.cachedList(ctx)
}

func (l *List) cachedList(ctx context.Context) ([]string, error) {
	list, ok, err := l.store.Get(ctx, ListCacheKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	return list, nil
}

func (l *List) remoteList(ctx context.Context, emailFilter string) ([]string, error) {
	resp, err := l.api.GetSuppressions(ctx, emailFilter)
	if err != nil {
		return nil, err
	}

	raw, ok := resp[suppressionsField]
	if !ok || raw == nil {
		return []string{}, nil
	}
	records, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrMalformedSuppressionList, raw)
	}

	out := make([]string, 0, len(records))
	for i, rec := range records {
		obj, _ := rec.(map[string]any)
		email, _ := obj[emailField].(string)
		if email == "" {
			return nil, fmt.Errorf("%w: record %d", ErrMalformedSuppressionRecord, i)
		}
		out = append(out, strings.ToLower(email))
	}
	return out, nil
}
