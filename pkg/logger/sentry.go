package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ErrSentryInit is returned when the Sentry SDK rejects the configuration.
var ErrSentryInit = errors.New("logger: sentry init failed")

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	// MinLevel is the lowest level forwarded to Sentry as a log entry.
	// Errors always become Sentry events.
	MinLevel slog.Level `mapstructure:"min_level"`
}

// NewWithSentry creates a logger that writes locally and forwards warnings
// and errors to Sentry. With an empty DSN it behaves like New.
// The returned flush func waits for buffered Sentry events.
func NewWithSentry(cfg SentryConfig, opts ...Option) (*slog.Logger, func(time.Duration) bool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	local := o.handler()
	noFlush := func(time.Duration) bool { return true }

	if cfg.DSN == "" {
		return slog.New(newContextHandler(local, o.extractors...)), noFlush, nil
	}

	env := cfg.Environment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		return slog.New(newContextHandler(local, o.extractors...)), noFlush, errors.Join(ErrSentryInit, err)
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(newContextHandler(fanout{local, remote}, o.extractors...)), sentry.Flush, nil
}
