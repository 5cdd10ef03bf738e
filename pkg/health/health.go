package health

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/postmarkit/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. postmark.Healthcheck and
// redis.Healthcheck return CheckFuncs.
type CheckFunc func(ctx context.Context) error

// Checks maps dependency names to probes.
type Checks map[string]CheckFunc

// Report is the outcome of running Checks.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks,omitempty"`
}

// Healthy reports whether every check passed.
func (r *Report) Healthy() bool { return r.Status == StatusHealthy }

// Failed returns the names of failed checks, sorted.
func (r *Report) Failed() []string {
	var out []string
	for _, name := range slices.Sorted(maps.Keys(r.Checks)) {
		if r.Checks[name].Status != StatusHealthy {
			out = append(out, name)
		}
	}
	return out
}

// Result is the outcome of one check.
type Result struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Elapsed string `json:"elapsed"`
}

// Option configures Run and Handler.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	timeout time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:  logger.NewNope(),
		timeout: 5 * time.Second,
	}
}

// WithTimeout bounds the whole run.
// Default: 5 seconds
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger logs failed checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Run executes every check concurrently.
func Run(ctx context.Context, checks Checks, opts ...Option) *Report {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return run(ctx, checks, o)
}

func run(ctx context.Context, checks Checks, o *options) *Report {
	report := &Report{Status: StatusHealthy}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	report.Checks = make(map[string]Result, len(checks))

	for name, check := range checks {
		wg.Go(func() {
			start := time.Now()
			err := check(ctx)
			res := Result{Status: StatusHealthy, Elapsed: time.Since(start).Round(time.Millisecond).String()}
			if err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				o.logger.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = res
			if err != nil {
				report.Status = StatusUnhealthy
			}
		})
	}
	wg.Wait()
	return report
}
