package paginate_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/pkg/paginate"
)

type call struct {
	count  int
	offset int
}

// pages returns a PageFunc that serves the given pages in order and records every call.
func pages(t *testing.T, responses ...paginate.Page) (paginate.PageFunc, *[]call) {
	t.Helper()

	calls := &[]call{}
	return func(_ context.Context, count, offset int) (paginate.Page, error) {
		*calls = append(*calls, call{count: count, offset: offset})
		i := len(*calls) - 1
		if i >= len(responses) {
			t.Fatalf("unexpected page request #%d", i+1)
		}
		return responses[i], nil
	}, calls
}

func domain(name string) map[string]any {
	return map[string]any{"Name": name}
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	t.Run("zero total yields empty list after one request", func(t *testing.T) {
		t.Parallel()

		fetch, calls := pages(t, paginate.Page{"TotalCount": 0, "Domains": []any{}})

		got, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
		require.NoError(t, err)
		require.Equal(t, []string{}, got)
		require.Len(t, *calls, 1)
		assert.Equal(t, call{count: paginate.PageSize, offset: 0}, (*calls)[0])
	})

	t.Run("zero total ignores a missing list field", func(t *testing.T) {
		t.Parallel()

		fetch, calls := pages(t, paginate.Page{"TotalCount": json.Number("0")})

		got, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
		require.NoError(t, err)
		require.Empty(t, got)
		require.Len(t, *calls, 1)
	})

	t.Run("concatenates single item pages in order", func(t *testing.T) {
		t.Parallel()

		fetch, calls := pages(t,
			paginate.Page{"TotalCount": 2, "Domains": []any{domain("First.EXAMPLE.com")}},
			paginate.Page{"TotalCount": 2, "Domains": []any{domain("second.example.com")}},
		)

		got, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
		require.NoError(t, err)
		require.Equal(t, []string{"first.example.com", "second.example.com"}, got)
		require.Equal(t, []call{
			{count: paginate.PageSize, offset: 0},
			{count: paginate.PageSize, offset: 1},
		}, *calls)
	})

	t.Run("stops once total is reached", func(t *testing.T) {
		t.Parallel()

		fetch, calls := pages(t, paginate.Page{
			"TotalCount":       float64(2),
			"SenderSignatures": []any{map[string]any{"EmailAddress": "A@x.io"}, map[string]any{"EmailAddress": "b@x.io"}},
		})

		got, err := paginate.FetchAll(context.Background(), fetch, "SenderSignatures", "EmailAddress")
		require.NoError(t, err)
		require.Equal(t, []string{"a@x.io", "b@x.io"}, got)
		require.Len(t, *calls, 1)
	})

	t.Run("coerces total count", func(t *testing.T) {
		t.Parallel()

		for name, total := range map[string]any{
			"int":         1,
			"int64":       int64(1),
			"float64":     float64(1),
			"json.Number": json.Number("1"),
			"string":      "1",
			"bool":        true,
		} {
			fetch, _ := pages(t, paginate.Page{"TotalCount": total, "Domains": []any{domain("a.io")}})
			got, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
			require.NoError(t, err, name)
			require.Equal(t, []string{"a.io"}, got, name)
		}
	})

	t.Run("missing or non numeric total count", func(t *testing.T) {
		t.Parallel()

		for name, page := range map[string]paginate.Page{
			"absent":   {"Domains": []any{}},
			"null":     {"TotalCount": nil},
			"text":     {"TotalCount": "many"},
			"fraction": {"TotalCount": 1.5},
			"object":   {"TotalCount": map[string]any{}},
		} {
			fetch, _ := pages(t, page)
			_, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
			require.ErrorIs(t, err, paginate.ErrMissingTotalCount, name)
		}
	})

	t.Run("malformed list field", func(t *testing.T) {
		t.Parallel()

		for name, page := range map[string]paginate.Page{
			"absent":     {"TotalCount": 1},
			"empty":      {"TotalCount": 1, "Domains": []any{}},
			"not a list": {"TotalCount": 1, "Domains": "example.com"},
			"null":       {"TotalCount": 1, "Domains": nil},
		} {
			fetch, _ := pages(t, page)
			_, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
			require.ErrorIs(t, err, paginate.ErrMalformedListField, name)
		}
	})

	t.Run("malformed list item", func(t *testing.T) {
		t.Parallel()

		for name, rec := range map[string]any{
			"scalar":       "example.com",
			"missing":      map[string]any{"Other": "x"},
			"empty string": map[string]any{"Name": ""},
			"number":       map[string]any{"Name": 42},
		} {
			fetch, _ := pages(t, paginate.Page{"TotalCount": 1, "Domains": []any{rec}})
			_, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
			require.ErrorIs(t, err, paginate.ErrMalformedListItem, name)
		}
	})

	t.Run("fetch error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		fetch := func(context.Context, int, int) (paginate.Page, error) { return nil, boom }

		_, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name")
		require.ErrorIs(t, err, paginate.ErrFetchFailed)
		require.ErrorIs(t, err, boom)
	})

	t.Run("page limit stops a growing total", func(t *testing.T) {
		t.Parallel()

		n := 0
		fetch := func(context.Context, int, int) (paginate.Page, error) {
			n++
			return paginate.Page{"TotalCount": n + 1, "Domains": []any{domain("a.io")}}, nil
		}

		_, err := paginate.FetchAll(context.Background(), fetch, "Domains", "Name", paginate.WithMaxPages(3))
		require.ErrorIs(t, err, paginate.ErrTooManyPages)
		require.Equal(t, 3, n)
	})

	t.Run("cancelled context stops before the next page", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		n := 0
		fetch := func(context.Context, int, int) (paginate.Page, error) {
			n++
			cancel()
			return paginate.Page{"TotalCount": 2, "Domains": []any{domain("a.io")}}, nil
		}

		_, err := paginate.FetchAll(ctx, fetch, "Domains", "Name")
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, n)
	})
}
