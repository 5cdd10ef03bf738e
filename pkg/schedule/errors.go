package schedule

import "errors"

var (
	ErrInvalidSchedule = errors.New("schedule: invalid cron expression")
	ErrDuplicateTask   = errors.New("schedule: task already registered")
	ErrUnknownTask     = errors.New("schedule: unknown task")
	ErrAlreadyStarted  = errors.New("schedule: already started")
	ErrNotStarted      = errors.New("schedule: not started")
)
