// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3. Every schedule
// uses the six field form with seconds.
//
// # Available Jobs
//
// 1. QuoteExpiryJob - marks ACTIVE quotes past their valid_until as EXPIRED
// 2. DeadlineReminderJob - queues ORDER_DUE_7_DAYS and ORDER_DUE_24_HOURS reminders
// 3. EmailSweepJob - delivers unsent outbox notifications in batches
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sendHandler, reminderHandler, expiryHandler, schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and retried on the next tick. A job that fails to start stops
// the jobs started before it.
package jobs
