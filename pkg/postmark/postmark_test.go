package postmark_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
	"github.com/dmitrymomot/postmarkit/pkg/paginate"
	"github.com/dmitrymomot/postmarkit/pkg/postmark"
	"github.com/dmitrymomot/postmarkit/pkg/transport"
)

func testConfig(server *httptest.Server) postmark.Config {
	return postmark.Config{
		ServerToken:  "server-token",
		AccountToken: "account-token",
		BaseURL:      server.URL,
		Timeout:      5 * time.Second,
	}
}

func ptr[T any](v T) *T { return &v }

func TestClient_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("posts the payload", func(t *testing.T) {
		t.Parallel()

		var body map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/email", r.URL.Path)
			assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			data, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(data, &body))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"To":"you@example.com","SubmittedAt":"2026-10-19T10:00:00.1234567-04:00","MessageID":"b7bc2f4a","ErrorCode":0,"Message":"OK"}`))
		}))
		defer server.Close()

		client := postmark.New(testConfig(server))
		res, err := client.SendEmail(context.Background(), &transport.Payload{
			From:        "Me <me@example.com>",
			To:          ptr("<you@example.com>"),
			Subject:     "Hello",
			HTMLBody:    ptr("<p>hi</p>"),
			Tag:         ptr("welcome"),
			TrackOpens:  true,
			Headers:     map[string]string{"X-B": "2", "X-A": "1"},
			Attachments: []transport.Attachment{{Name: "a.txt", Content: "YQ==", ContentType: "text/plain"}},
			TrackLinks:  ptr(mail.LinkTrackingHTMLOnly),
			Metadata:    map[string]any{"user": "42"},
		})
		require.NoError(t, err)
		assert.Equal(t, "b7bc2f4a", res.MessageID)
		assert.Equal(t, "you@example.com", res.To)
		assert.False(t, res.SubmittedAt.IsZero())

		assert.Equal(t, "Me <me@example.com>", body["From"])
		assert.Equal(t, "<you@example.com>", body["To"])
		assert.Equal(t, "<p>hi</p>", body["HtmlBody"])
		assert.Equal(t, "welcome", body["Tag"])
		assert.Equal(t, true, body["TrackOpens"])
		assert.Equal(t, "HtmlOnly", body["TrackLinks"])
		assert.Equal(t, "outbound", body["MessageStream"])
		assert.Equal(t, []any{
			map[string]any{"Name": "X-A", "Value": "1"},
			map[string]any{"Name": "X-B", "Value": "2"},
		}, body["Headers"])
		assert.Equal(t, map[string]any{"user": "42"}, body["Metadata"])
		assert.NotContains(t, body, "TextBody")
		assert.NotContains(t, body, "Cc")
		assert.NotContains(t, body, "ReplyTo")
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"ErrorCode":406,"Message":"You tried to send to a recipient that has been marked as inactive."}`))
		}))
		defer server.Close()

		_, err := postmark.New(testConfig(server)).SendEmail(context.Background(), &transport.Payload{From: "a@b.io", To: ptr("c@d.io")})
		require.ErrorIs(t, err, postmark.ErrRequestFailed)

		var apiErr *postmark.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, 406, apiErr.ErrorCode)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		_, err := postmark.New(postmark.Config{}).SendEmail(context.Background(), &transport.Payload{})
		require.ErrorIs(t, err, postmark.ErrMissingToken)
	})
}

func TestClient_GetSuppressions(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/message-streams/broadcast/suppressions/dump", r.URL.Path)
		assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
		gotQuery = r.URL.Query().Get("EmailAddress")
		_, _ = w.Write([]byte(`{"Suppressions":[{"EmailAddress":"gone@example.com","SuppressionReason":"HardBounce"}]}`))
	}))
	defer server.Close()

	cfg := testConfig(server)
	cfg.MessageStream = "broadcast"

	resp, err := postmark.New(cfg).GetSuppressions(context.Background(), "gone@example.com")
	require.NoError(t, err)
	assert.Equal(t, "gone@example.com", gotQuery)

	list, ok := resp["Suppressions"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "gone@example.com", list[0].(map[string]any)["EmailAddress"])
}

func TestAccountClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "account-token", r.Header.Get("X-Postmark-Account-Token"))
		assert.Equal(t, "500", r.URL.Query().Get("count"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))

		switch r.URL.Path {
		case "/domains":
			_, _ = w.Write([]byte(`{"TotalCount":1,"Domains":[{"Name":"Example.com","ID":1}]}`))
		case "/senders":
			_, _ = w.Write([]byte(`{"TotalCount":1,"SenderSignatures":[{"EmailAddress":"me@example.com"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := postmark.NewAccount(testConfig(server))
	ctx := context.Background()

	domains, err := paginate.FetchAll(ctx, client.ListDomains, "Domains", "Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, domains)

	page, err := client.ListSenderSignatures(ctx, paginate.PageSize, 0)
	require.NoError(t, err)
	assert.Equal(t, json.Number("1"), page["TotalCount"])
}

func TestAccountClient_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := postmark.NewAccount(testConfig(server)).ListDomains(context.Background(), 1, 0)
	require.ErrorIs(t, err, postmark.ErrDecodeFailed)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/server", r.URL.Path)
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{"Name":"Production"}`))
	}))
	defer server.Close()

	check := postmark.Healthcheck(postmark.New(testConfig(server)))
	require.NoError(t, check(context.Background()))

	status.Store(http.StatusUnauthorized)
	require.ErrorIs(t, check(context.Background()), postmark.ErrRequestFailed)
}
