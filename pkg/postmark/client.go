package postmark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	serverTokenHeader  = "X-Postmark-Server-Token"
	accountTokenHeader = "X-Postmark-Account-Token"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a client.
type Option func(*options)

type options struct {
	httpClient HTTPDoer
	logger     *slog.Logger
}

// WithHTTPClient replaces the HTTP client.
// Default: *http.Client with Config.Timeout.
func WithHTTPClient(c HTTPDoer) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger sets the logger for request diagnostics.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// api performs authenticated JSON requests against one token.
type api struct {
	baseURL     string
	token       string
	tokenHeader string
	http        HTTPDoer
	logger      *slog.Logger
}

func newAPI(cfg Config, token, header string, opts []Option) *api {
	o := &options{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &api{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       token,
		tokenHeader: header,
		http:        o.httpClient,
		logger:      o.logger,
	}
}

// errorBody is the error envelope of every Postmark endpoint.
type errorBody struct {
	ErrorCode int
	Message   string
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out. Numbers are decoded as json.Number when out is a map.
func (a *api) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	if a.token == "" {
		return ErrMissingToken
	}

	fullURL := a.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Join(ErrRequestFailed, fmt.Errorf("encoding request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return errors.Join(ErrRequestFailed, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(a.tokenHeader, a.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.logger.DebugContext(ctx, "postmark request", slog.String("method", method), slog.String("path", path))

	resp, err := a.http.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrRequestFailed, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && (eb.ErrorCode != 0 || eb.Message != "") {
			apiErr.ErrorCode = eb.ErrorCode
			apiErr.Message = eb.Message
		}
		a.logger.WarnContext(ctx, "postmark request rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", apiErr.StatusCode),
			slog.Int("error_code", apiErr.ErrorCode),
		)
		return errors.Join(ErrRequestFailed, apiErr)
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}
	return nil
}
