package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTickTimeout bounds a run when Schedule.Timeout is not set.
const DefaultTickTimeout = time.Minute

// Schedule holds the cron specs (with a seconds field) for every job. Timeout bounds each
// individual run of any job.
type Schedule struct {
	EmailSweep     string
	EmailBatchSize int
	Reminders      string
	QuoteExpiry    string
	Timeout        time.Duration
}

// tickContext is the context a scheduled run executes under. Cron ticks carry no caller
// context, so the deadline is the only bound on stuck database or broker calls.
func tickContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTickTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sender pendingNotificationsSender,
	reminders deadlineReminderEnqueuer,
	expirer quoteExpirer,
	schedule Schedule,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{"quote expiry", NewQuoteExpiryJob(expirer, schedule.QuoteExpiry, schedule.Timeout, logger)},
			{"deadline reminder", NewDeadlineReminderJob(reminders, schedule.Reminders, schedule.Timeout, logger)},
			{"email sweep", NewEmailSweepJob(sender, schedule.EmailSweep, schedule.EmailBatchSize, schedule.Timeout, logger)},
		},
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.job.Stop()
	}
}
