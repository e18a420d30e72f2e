package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/database"
	"storefront/pkg/events"
	"storefront/pkg/kafka"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/migrate"
	"storefront/pkg/oidc"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	dbClient, err := database.Open(ctx, database.Config{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}, logg)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if err := prepareSchema(ctx, cfg, dbClient, logg); err != nil {
		return err
	}

	// --- Sessions ---
	sessions, err := redis.New(ctx, cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer sessions.Close()

	// --- Identity provider ---
	var provider services.IdentityProvider
	if cfg.OIDC.Enabled() {
		p, err := oidc.New(ctx, oidc.Config{
			IssuerURL:    cfg.OIDC.IssuerURL,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
		})
		if err != nil {
			return fmt.Errorf("discover oidc provider: %w", err)
		}
		provider = p
	} else {
		logg.Warn(ctx, "OIDC_ISSUER_URL not set, login is disabled")
	}

	// --- Events ---
	publisher, subscriber, err := newEventBus(cfg.Events, logg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	m := metrics.New()

	srv := server.New(server.Deps{
		DB:        dbClient.DB(),
		Sessions:  sessions,
		Provider:  provider,
		Publisher: publisher,
		Metrics:   m,
		Logger:    logg,
		Checks: []server.HealthCheck{
			{Name: "database", Check: dbClient.Ping},
			{Name: "redis", Check: sessions.Ping},
		},
		Options: server.Options{
			CORSOrigins:   cfg.App.CORSOrigins,
			SessionSecret: cfg.Session.Secret,
			SessionTTL:    cfg.Session.TTL,
			CookieName:    cfg.Session.CookieName,
			CookieSecure:  cfg.Session.Secure,
			AdminEmails:   cfg.OIDC.AdminEmails,
		},
	})

	consumerDone := make(chan struct{})
	if subscriber != nil {
		go func() {
			defer close(consumerDone)
			logg.Info(ctx, "order event consumer started")
			if err := subscriber.Consume(ctx, services.NewOrderEventHandler(logg, m)); err != nil {
				logg.Error(ctx, "order event consumer stopped", err)
			}
		}()
	} else {
		close(consumerDone)
	}

	// --- HTTP server ---
	listenErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", cfg.App.Port), "http server starting")
		listenErr <- srv.App.Listen(cfg.App.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")
	if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		logg.Error(context.Background(), "http shutdown failed", err)
	}
	<-consumerDone
	if subscriber != nil {
		if err := subscriber.Close(); err != nil {
			logg.Error(context.Background(), "event subscriber close failed", err)
		}
	}
	logg.Info(context.Background(), "server gracefully stopped")
	return nil
}

// prepareSchema creates tables for local sqlite databases and, when asked,
// applies the goose migrations to postgres.
func prepareSchema(ctx context.Context, cfg *config.Config, client *database.Client, logg *logger.Logger) error {
	switch {
	case cfg.DB.Driver == "sqlite" && (cfg.App.IsDev() || cfg.DB.AutoMigrate):
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		logg.Info(ctx, "sqlite schema migrated")
	case cfg.DB.Driver == "postgres" && cfg.DB.AutoMigrate:
		sqlDB, err := client.DB().DB()
		if err != nil {
			return err
		}
		if err := migrate.Run(ctx, sqlDB, "up"); err != nil {
			return err
		}
		logg.Info(ctx, "postgres migrations applied")
	}
	return nil
}

// newEventBus picks the broker for order events. The subscriber is nil when
// no broker is configured.
func newEventBus(cfg config.EventsConfig, logg *logger.Logger) (events.Publisher, events.Subscriber, error) {
	switch cfg.Driver {
	case "", config.EventsDriverNone:
		return events.NopPublisher{}, nil, nil
	case config.EventsDriverRabbitMQ:
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitQueue}, logg)
		if err != nil {
			return nil, nil, err
		}
		// One connection serves both sides; Close on the publisher is enough.
		return client, nopCloser{client}, nil
	case config.EventsDriverKafka:
		kcfg := kafka.Config{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic, GroupID: cfg.KafkaGroupID}
		return kafka.NewProducer(kcfg), kafka.NewConsumer(kcfg, logg), nil
	default:
		return nil, nil, fmt.Errorf("unsupported events driver %q", cfg.Driver)
	}
}

type nopCloser struct {
	events.Subscriber
}

func (nopCloser) Close() error { return nil }
