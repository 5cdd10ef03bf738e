package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures New and NewWithSentry.
type Option func(*options)

type options struct {
	writer     io.Writer
	level      slog.Leveler
	text       bool
	extractors []ContextExtractor
}

func defaultOptions() *options {
	return &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
}

// WithWriter sets the output destination.
// Default: os.Stdout
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum level written.
// Default: slog.LevelInfo
func WithLevel(l slog.Leveler) Option {
	return func(o *options) {
		if l != nil {
			o.level = l
		}
	}
}

// WithText switches the output from JSON to logfmt-style text.
func WithText() Option {
	return func(o *options) {
		o.text = true
	}
}

// WithExtractors adds context extractors run on every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a logger. Output is JSON on stdout at info level unless
// configured otherwise.
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return slog.New(newContextHandler(o.handler(), o.extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level}
	if o.text {
		return slog.NewTextHandler(o.writer, ho)
	}
	return slog.NewJSONHandler(o.writer, ho)
}
