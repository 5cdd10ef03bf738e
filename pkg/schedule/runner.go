package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/postmarkit/pkg/logger"
)

// Task is a periodic job. Schedule returns a five-field cron expression
// (minute hour day-of-month month day-of-week).
type Task interface {
	Name() string
	Schedule() string
	Handle(ctx context.Context) error
}

// Option configures a Runner.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	timeout time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:  logger.NewNope(),
		timeout: 0, // 0 = no per-run timeout
	}
}

// WithLogger sets the logger for task runs.
// Default: no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTimeout bounds each scheduled run. Zero disables the bound.
// Default: 0
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = max(d, 0)
	}
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Runner runs registered tasks on their cron schedules. Overlapping runs
// of the same task are skipped.
type Runner struct {
	cron   *cron.Cron
	opts   *options
	mu     sync.Mutex
	tasks  map[string]registered
	ctx    context.Context
	cancel context.CancelFunc
}

type registered struct {
	task Task
	id   cron.EntryID
}

// New creates a stopped Runner.
func New(opts ...Option) *Runner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Runner{
		cron:  cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		opts:  o,
		tasks: make(map[string]registered),
	}
}

// Add registers task. Tasks may be added before or after Start.
func (r *Runner) Add(task Task) error {
	sched, err := parser.Parse(task.Schedule())
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSchedule, task.Schedule(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := task.Name()
	if _, ok := r.tasks[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, name)
	}
	id := r.cron.Schedule(sched, cron.FuncJob(func() { r.scheduled(task) }))
	r.tasks[name] = registered{task: task, id: id}
	return nil
}

// Start begins running tasks in the background. Runs inherit ctx values;
// cancelling ctx cancels in-flight runs.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return ErrAlreadyStarted
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.cron.Start()
	r.opts.logger.InfoContext(ctx, "scheduler started", slog.Int("tasks", len(r.tasks)))
	return nil
}

// Stop stops scheduling and waits for running tasks until ctx is done.
// In-flight runs are cancelled if ctx expires first.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}
	defer cancel()

	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.opts.logger.InfoContext(ctx, "scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow runs the named task synchronously and returns its error.
func (r *Runner) RunNow(ctx context.Context, name string) error {
	r.mu.Lock()
	reg, ok := r.tasks[name]
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return r.run(ctx, reg.task)
}

// Next returns the next scheduled run of every registered task.
// The times are zero before Start.
func (r *Runner) Next() map[string]time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]time.Time, len(r.tasks))
	for name, reg := range r.tasks {
		out[name] = r.cron.Entry(reg.id).Next
	}
	return out
}

func (r *Runner) scheduled(task Task) {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx == nil {
		return
	}

	if r.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.timeout)
		defer cancel()
	}
	_ = r.run(ctx, task)
}

func (r *Runner) run(ctx context.Context, task Task) (err error) {
	ctx = logger.WithTask(ctx, task.Name())
	log := r.opts.logger
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("schedule: task %s panicked: %v", task.Name(), p)
		}
		elapsed := slog.Duration("elapsed", time.Since(start))
		switch {
		case err == nil:
			log.InfoContext(ctx, "task finished", elapsed)
		case errors.Is(err, context.Canceled):
			log.WarnContext(ctx, "task cancelled", elapsed)
		default:
			log.ErrorContext(ctx, "task failed", elapsed, slog.Any("error", err))
		}
	}()

	log.DebugContext(ctx, "task started")
	return task.Handle(ctx)
}
