// Package jobs provides scheduled background tasks for the haulage service.
//
// Jobs are built on github.com/robfig/cron/v3 with the standard five field
// schedule syntax and log through zerolog.
//
// # Available Jobs
//
// LowStockWatchJob lists the materials whose stock is below the configured
// threshold, logs a warning for each and sets the low stock gauge.
//
// # Usage
//
//	watch := jobs.NewLowStockWatchJob(listMaterials, metrics, threshold, "*/15 * * * *", logger)
//	manager := jobs.NewJobManager(logger, watch)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// A failed check is logged and retried at the next tick. A panic inside a
// check is recovered by the scheduler, and a check still running when the
// next tick fires makes that tick a no-op.
package jobs
