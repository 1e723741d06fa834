package jobs

import (
	"context"
	"time"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/pkg/logging"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type deadlineReminderEnqueuer interface {
	Handle(ctx context.Context, cmd commands.EnqueueDeadlineRemindersCommand) (int, error)
}

// DeadlineReminderJob queues ORDER_DUE_* reminders for OPEN orders nearing their
// quotation deadline. The email sweep delivers them.
type DeadlineReminderJob struct {
	handler deadlineReminderEnqueuer
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  zerolog.Logger
}

func NewDeadlineReminderJob(
	handler deadlineReminderEnqueuer,
	spec string,
	timeout time.Duration,
	logger zerolog.Logger,
) *DeadlineReminderJob {
	return &DeadlineReminderJob{
		handler: handler,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logging.Component(logger, "deadline_reminder_job"),
	}
}

func (j *DeadlineReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("spec", j.spec).Msg("deadline reminder job started")
	return nil
}

func (j *DeadlineReminderJob) tick() {
	ctx, cancel := tickContext(j.timeout)
	defer cancel()
	j.run(ctx)
}

func (j *DeadlineReminderJob) run(ctx context.Context) {
	queued, err := j.handler.Handle(ctx, commands.NewEnqueueDeadlineRemindersCommand())
	if err != nil {
		j.logger.Error().Err(err).Msg("deadline reminders failed")
		return
	}
	if queued > 0 {
		j.logger.Info().Int("queued", queued).Msg("deadline reminders queued")
	}
}

func (j *DeadlineReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("deadline reminder job stopped")
}
