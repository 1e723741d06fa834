package jobs

import (
	"context"
	"time"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/pkg/logging"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const quoteExpiryBatch = 500

type quoteExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireQuotesCommand) (int, error)
}

// QuoteExpiryJob marks ACTIVE quotes past valid_until as EXPIRED. A tick keeps expiring
// batches until one comes back short.
type QuoteExpiryJob struct {
	handler quoteExpirer
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  zerolog.Logger
}

func NewQuoteExpiryJob(handler quoteExpirer, spec string, timeout time.Duration, logger zerolog.Logger) *QuoteExpiryJob {
	return &QuoteExpiryJob{
		handler: handler,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logging.Component(logger, "quote_expiry_job"),
	}
}

func (j *QuoteExpiryJob) Start() error {
	cmd, err := commands.NewExpireQuotesCommand(quoteExpiryBatch)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.spec, func() { j.tick(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("spec", j.spec).Msg("quote expiry job started")
	return nil
}

// tick shares one deadline across every batch of the run.
func (j *QuoteExpiryJob) tick(cmd commands.ExpireQuotesCommand) {
	ctx, cancel := tickContext(j.timeout)
	defer cancel()
	j.run(ctx, cmd)
}

func (j *QuoteExpiryJob) run(ctx context.Context, cmd commands.ExpireQuotesCommand) {
	var total int
	for {
		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error().Err(err).Int("expired", total).Msg("quote expiry failed")
			return
		}
		total += expired
		if expired < cmd.BatchSize() {
			break
		}
	}
	if total > 0 {
		j.logger.Info().Int("expired", total).Msg("quotes expired")
	}
}

func (j *QuoteExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("quote expiry job stopped")
}
