package paginate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PageSize is the number of records requested per page.
const PageSize = 500

// TotalCountField is the response field holding the total number of records.
const TotalCountField = "TotalCount"

// Page is a decoded JSON object returned by a list endpoint.
type Page map[string]any

// PageFunc requests one page of at most count records starting at offset.
type PageFunc func(ctx context.Context, count, offset int) (Page, error)

// Option configures FetchAll.
type Option func(*options)

type options struct {
	maxPages int
}

func defaultOptions() *options {
	return &options{
		maxPages: 0, // 0 = unlimited
	}
}

// WithMaxPages limits the number of page requests. Zero means unlimited.
// Default: 0.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = max(n, 0)
	}
}

// FetchAll walks every page of fetch and returns the lower-cased itemField
// value of each record found under listField.
func FetchAll(ctx context.Context, fetch PageFunc, listField, itemField string, opts ...Option) ([]string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	items := []string{}
	for pages := 0; ; pages++ {
		if o.maxPages > 0 && pages >= o.maxPages {
			return nil, fmt.Errorf("%w: %d pages, %d items", ErrTooManyPages, pages, len(items))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, PageSize, len(items))
		if err != nil {
			return nil, errors.Join(ErrFetchFailed, err)
		}

		total, ok := TotalCount(page)
		if !ok {
			return nil, ErrMissingTotalCount
		}
		if total == 0 {
			return []string{}, nil
		}

		values, err := extract(page, listField, itemField)
		if err != nil {
			return nil, err
		}
		items = append(items, values...)

		if len(items) >= total {
			return items, nil
		}
	}
}

// TotalCount returns the integer value of the TotalCount field of page.
// JSON numbers, Go integers, numeric strings and booleans are accepted.
func TotalCount(page Page) (int, bool) {
	v, ok := page[TotalCountField]
	if !ok || v == nil {
		return 0, false
	}
	return toInt(v)
}

func extract(page Page, listField, itemField string) ([]string, error) {
	raw, ok := page[listField].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedListField, listField)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrMalformedListField, listField)
	}

	values := make([]string, 0, len(raw))
	for i, rec := range raw {
		obj, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrMalformedListItem, i)
		}
		s, ok := obj[itemField].(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%w: record %d has no %q", ErrMalformedListItem, i, itemField)
		}
		values = append(values, strings.ToLower(s))
	}

	return values, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return toInt(f)
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
