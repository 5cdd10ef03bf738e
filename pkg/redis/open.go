package redis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures Open.
type Option func(*options)

type options struct {
	poolSize    int
	attempts    int
	backoff     time.Duration
	dialTimeout time.Duration
	ioTimeout   time.Duration
	logger      *slog.Logger
}

func defaultOptions() *options {
	return &options{
		poolSize:    10,
		attempts:    3,
		backoff:     2 * time.Second,
		dialTimeout: 5 * time.Second,
		ioTimeout:   3 * time.Second,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithPoolSize sets the maximum number of pooled connections.
// Default: 10
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithRetry sets how many times the initial ping is attempted and the
// base delay between attempts. The delay grows linearly.
// Default: 3 attempts, 2 seconds.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(o *options) {
		o.attempts = max(attempts, 1)
		o.backoff = max(backoff, 0)
	}
}

// WithTimeouts sets the dial timeout and the read/write timeout.
// Default: 5 seconds dial, 3 seconds read/write.
func WithTimeouts(dial, io time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = dial
		o.ioTimeout = io
	}
}

// WithLogger logs failed connection attempts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open connects to the server at url (redis:// or rediss://) and pings it
// until it answers or the attempts run out.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.DialTimeout = o.dialTimeout
	ro.ReadTimeout = o.ioTimeout
	ro.WriteTimeout = o.ioTimeout

	client := redis.NewClient(ro)

	var lastErr error
	for attempt := 1; attempt <= o.attempts; attempt++ {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		o.logger.WarnContext(ctx, "redis ping failed",
			slog.Int("attempt", attempt),
			slog.String("addr", ro.Addr),
			slog.Any("error", lastErr),
		)
		if attempt == o.attempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrUnreachable, ctx.Err())
		case <-time.After(time.Duration(attempt) * o.backoff):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrUnreachable, lastErr)
}

// Healthcheck returns a probe that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
