package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freightdesk/api"
	"freightdesk/cmd"
	httpadapter "freightdesk/internal/adapters/in/http"
	"freightdesk/internal/adapters/out/natspub"
	"freightdesk/internal/adapters/out/postgres/migrations"
	"freightdesk/internal/adapters/out/s3storage"
	"freightdesk/internal/pkg/logging"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(configs.LogLevel, configs.AppEnv, os.Stdout)
	if err = run(configs, logger); err != nil {
		logger.Fatal().Err(err).Msg("freightdesk stopped")
	}
}

func run(configs cmd.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrations.Up(configs.DatabaseURL()); err != nil {
		return err
	}

	gormDB, err := gorm.Open(postgres.Open(configs.DatabaseURL()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	storage, err := s3storage.New(ctx, s3storage.Config{
		Endpoint:      configs.S3Endpoint,
		Region:        configs.S3Region,
		Bucket:        configs.S3Bucket,
		AccessKey:     configs.S3AccessKey,
		SecretKey:     configs.S3SecretKey,
		PublicBaseURL: configs.S3PublicBaseURL,
	})
	if err != nil {
		return err
	}
	if err = storage.EnsureBucket(ctx); err != nil {
		return err
	}

	publisher, err := natspub.Connect(configs.NatsURL, configs.NatsSubjectPrefix, logging.Component(logger, "nats"))
	if err != nil {
		return err
	}
	defer publisher.Close()

	doc, err := api.Load()
	if err != nil {
		return err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(configs, gormDB, storage, publisher, logger)

	e, err := httpadapter.NewRouter(app.Application(), httpadapter.RouterConfig{
		Document:       doc,
		RequestTimeout: configs.RequestTimeout,
		UploadLimit:    configs.UploadLimit,
		Logger:         logging.Component(logger, "http"),
	})
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", configs.HTTPPort).Msg("http server listening")
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
