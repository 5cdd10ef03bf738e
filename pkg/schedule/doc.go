// Package schedule runs periodic tasks on cron expressions.
//
// A [Task] names itself, returns a five-field cron expression (descriptors
// such as "@hourly" are accepted) and handles one run:
//
//	r := schedule.New(schedule.WithLogger(log), schedule.WithTimeout(5*time.Minute))
//	if err := r.Add(suppression.NewSeedTask(list)); err != nil {
//		return err
//	}
//	if err := r.Start(ctx); err != nil {
//		return err
//	}
//	defer r.Stop(context.Background())
//
// Overlapping runs of the same task are skipped. Task failures and panics
// are logged, never propagated. [Runner.RunNow] runs a task synchronously
// and returns its error.
package schedule
