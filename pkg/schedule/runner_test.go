package schedule_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/pkg/schedule"
)

type countingTask struct {
	name  string
	expr  string
	calls atomic.Int32
	err   error
}

func (t *countingTask) Name() string     { return t.name }
func (t *countingTask) Schedule() string { return t.expr }
func (t *countingTask) Handle(context.Context) error {
	t.calls.Add(1)
	return t.err
}

type panickingTask struct{}

func (panickingTask) Name() string                 { return "boom" }
func (panickingTask) Schedule() string             { return "@hourly" }
func (panickingTask) Handle(context.Context) error { panic("boom") }

func TestRunner_Add(t *testing.T) {
	t.Parallel()

	t.Run("invalid expressions", func(t *testing.T) {
		t.Parallel()

		r := schedule.New()
		for _, expr := range []string{"", "not a cron expression", "* * *", "0 0 * * * *"} {
			err := r.Add(&countingTask{name: "t", expr: expr})
			require.ErrorIs(t, err, schedule.ErrInvalidSchedule, expr)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		r := schedule.New()
		require.NoError(t, r.Add(&countingTask{name: "t", expr: "0 * * * *"}))
		require.ErrorIs(t, r.Add(&countingTask{name: "t", expr: "5 * * * *"}), schedule.ErrDuplicateTask)
	})
}

func TestRunner_RunNow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	failing := &countingTask{name: "failing", expr: "0 * * * *", err: errors.New("remote down")}
	ok := &countingTask{name: "ok", expr: "0 * * * *"}

	r := schedule.New()
	require.NoError(t, r.Add(failing))
	require.NoError(t, r.Add(ok))
	require.NoError(t, r.Add(panickingTask{}))

	require.NoError(t, r.RunNow(ctx, "ok"))
	assert.Equal(t, int32(1), ok.calls.Load())

	require.EqualError(t, r.RunNow(ctx, "failing"), "remote down")
	require.ErrorContains(t, r.RunNow(ctx, "boom"), "panicked")
	require.ErrorIs(t, r.RunNow(ctx, "missing"), schedule.ErrUnknownTask)
}

func TestRunner_StartStop(t *testing.T) {
	t.Parallel()

	task := &countingTask{name: "tick", expr: "@every 1s"}
	r := schedule.New(schedule.WithTimeout(time.Second))
	require.NoError(t, r.Add(task))

	require.ErrorIs(t, r.Stop(context.Background()), schedule.ErrNotStarted)
	require.NoError(t, r.Start(context.Background()))
	require.ErrorIs(t, r.Start(context.Background()), schedule.ErrAlreadyStarted)

	assert.False(t, r.Next()["tick"].IsZero())
	require.Eventually(t, func() bool { return task.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}
