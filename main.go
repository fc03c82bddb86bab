package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:   "products-api",
		Usage:  "REST API for managing products",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema and exit",
				Action: migrate,
			},
			{
				Name:   "consume",
				Usage:  "log product events from the RabbitMQ queue until interrupted",
				Action: consume,
			},
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.IsDevelopment(), cfg.App.LogLevel)

	products := connectStore(cfg.Database, log)

	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.Enabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable, product events disabled")
		} else {
			defer mqClient.Close()
			publisher = mqClient
			log.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("RabbitMQ connected")
		}
	}

	app, err := NewApp(Dependencies{
		Config:    cfg,
		Logger:    log,
		Products:  products,
		Publisher: publisher,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.App.Port).Msg("starting server")
		if err := app.Listen(cfg.App.Port); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}

// eventConsumer is the part of the RabbitMQ client the consume command needs.
type eventConsumer interface {
	ConsumeProductEvents(handler func(event models.ProductEvent) error) error
}

// dialConsumer connects the consume command to the broker.
var dialConsumer = func(cfg config.RabbitMQConfig) (eventConsumer, func() error, error) {
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.URL, Queue: cfg.Queue})
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

var errEventsDisabled = errors.New("RABBITMQ_URL is not set, product events are disabled")

// consume logs product events from the configured queue until interrupted.
func consume(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.IsDevelopment(), cfg.App.LogLevel)

	if !cfg.RabbitMQ.Enabled() {
		return errEventsDisabled
	}

	consumer, closeConsumer, err := dialConsumer(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer closeConsumer()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("consuming product events")
	return consumeEvents(ctx, consumer, log)
}

// consumeEvents logs every delivered event until ctx is done.
func consumeEvents(ctx context.Context, consumer eventConsumer, log zerolog.Logger) error {
	err := consumer.ConsumeProductEvents(func(event models.ProductEvent) error {
		log.Info().
			Str("event_id", event.ID).
			Str("event_type", string(event.Type)).
			Uint("product_id", event.ProductID).
			Msg("product event received")
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to start product event consumer: %w", err)
	}

	<-ctx.Done()
	log.Info().Msg("product event consumer stopped")
	return nil
}

func migrate(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.IsDevelopment(), cfg.App.LogLevel)

	if cfg.Database.Driver == config.DriverMemory {
		log.Info().Msg("in-memory store has no schema to migrate")
		return nil
	}

	if _, err := database.Connect(cfg.Database, log); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database migrated")
	return nil
}
