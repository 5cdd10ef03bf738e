package suppression

import "context"

// DefaultSeedSchedule reseeds the list at the top of every hour.
const DefaultSeedSchedule = "0 * * * *"

// SeedTaskName identifies the reseed task in a scheduler.
const SeedTaskName = "seed_suppression_list"

// SeedTask periodically replaces the cached list with the remote one.
type SeedTask struct {
	list     *List
	schedule string
}

// SeedTaskOption configures a SeedTask.
type SeedTaskOption func(*SeedTask)

// WithSchedule sets the cron expression of the task.
// Default: DefaultSeedSchedule.
func WithSchedule(expr string) SeedTaskOption {
	return func(t *SeedTask) {
		if expr != "" {
			t.schedule = expr
		}
	}
}

// NewSeedTask returns a task that seeds list.
func NewSeedTask(list *List, opts ...SeedTaskOption) *SeedTask {
	t := &SeedTask{list: list, schedule: DefaultSeedSchedule}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns SeedTaskName.
func (t *SeedTask) Name() string { return SeedTaskName }

// Schedule returns the cron expression.
func (t *SeedTask) Schedule() string { return t.schedule }

// Handle seeds the suppression list cache.
func (t *SeedTask) Handle(ctx context.Context) error {
	return t.list.SeedSuppressionListCache(ctx)
}
