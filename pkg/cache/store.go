package cache

import (
	"context"
	"errors"
	"slices"

	"golang.org/x/sync/singleflight"
)

// Store persists whole string lists under a key.
type Store interface {
	// Get returns the list stored under key.
	// The bool is false when the key is missing or expired.
	Get(ctx context.Context, key string) ([]string, bool, error)

	// Save replaces the list stored under key.
	Save(ctx context.Context, key string, list []string) error
}

// LoadFunc produces the list for a key that is not cached yet.
type LoadFunc func(ctx context.Context) ([]string, error)

// Loader reads lists from a Store and fills misses with a LoadFunc.
type Loader struct {
	store Store
	group singleflight.Group
}

// NewLoader returns a Loader backed by store.
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// Store returns the underlying store.
func (l *Loader) Store() Store {
	return l.store
}

// GetOrLoad returns the cached list for key, calling load on a miss and
// saving its result. Concurrent misses for the same key call load once.
//
// The shared load runs detached from the caller that started it, so a
// cancelled caller never fails the others waiting on the same key.
// Errors from load are joined with ErrLoad. Errors from the store are
// returned as is.
func (l *Loader) GetOrLoad(ctx context.Context, key string, load LoadFunc) ([]string, error) {
	list, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		return list, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		// Another caller may have filled the key while we waited.
		if list, ok, err := l.store.Get(shared, key); err != nil {
			return nil, err
		} else if ok {
			return list, nil
		}

		list, err := load(shared)
		if err != nil {
			return nil, errors.Join(ErrLoad, err)
		}
		if list == nil {
			list = []string{}
		}

		if err := l.store.Save(shared, key, list); err != nil {
			return nil, err
		}
		return list, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	return slices.Clone(res.Val.([]string)), nil
}
