package jobs

import (
	"context"
	"time"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/pkg/logging"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type pendingNotificationsSender interface {
	Handle(ctx context.Context, cmd commands.SendPendingNotificationsCommand) (int, error)
}

// EmailSweepJob delivers batched outbox notifications on a schedule.
type EmailSweepJob struct {
	handler   pendingNotificationsSender
	spec      string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    zerolog.Logger
}

func NewEmailSweepJob(
	handler pendingNotificationsSender,
	spec string,
	batchSize int,
	timeout time.Duration,
	logger zerolog.Logger,
) *EmailSweepJob {
	return &EmailSweepJob{
		handler:   handler,
		spec:      spec,
		batchSize: batchSize,
		timeout:   timeout,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logging.Component(logger, "email_sweep_job"),
	}
}

// Start schedules the sweep. A malformed batch size or cron spec is reported here, not on
// the first tick.
func (j *EmailSweepJob) Start() error {
	cmd, err := commands.NewSendPendingNotificationsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.spec, func() { j.tick(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("spec", j.spec).Int("batch_size", j.batchSize).Msg("email sweep job started")
	return nil
}

func (j *EmailSweepJob) tick(cmd commands.SendPendingNotificationsCommand) {
	ctx, cancel := tickContext(j.timeout)
	defer cancel()
	j.run(ctx, cmd)
}

func (j *EmailSweepJob) run(ctx context.Context, cmd commands.SendPendingNotificationsCommand) {
	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error().Err(err).Msg("email sweep failed")
		return
	}
	if sent > 0 {
		j.logger.Info().Int("sent", sent).Msg("notifications delivered")
	}
}

// Stop waits for a running sweep to finish.
func (j *EmailSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("email sweep job stopped")
}
