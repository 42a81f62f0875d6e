package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/coffee/internal/dal/memory"
	"github.com/corray333/backend-labs/coffee/internal/dal/postgres"
	"github.com/corray333/backend-labs/coffee/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/coffee/internal/dal/uow"
	"github.com/corray333/backend-labs/coffee/internal/otel"
	"github.com/corray333/backend-labs/coffee/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/configsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/ordersvc"
	httptransport "github.com/corray333/backend-labs/coffee/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/coffee/internal/worker/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type storage interface {
	Repositories() uow.Repositories
	Do(ctx context.Context, fn uow.TxFunc) error
}

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	a := &App{}

	if viper.GetBool("otel.enabled") {
		a.otelController = otel.MustInitOtel()
	}

	var store storage
	switch driver := viper.GetString("storage.driver"); driver {
	case "postgres":
		a.postgresClient = postgres.MustNewClient()
		store = uow.NewUnitOfWork(a.postgresClient.Pool())
	case "memory":
		store = memory.NewStore()
	default:
		panic(fmt.Sprintf("unknown storage driver %q", driver))
	}
	slog.Info("Storage initialized", "driver", viper.GetString("storage.driver"))

	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitMqClient = rabbitmq.MustNewClient()
		a.outboxWorker = outboxworker.NewWorker(store.Repositories().OutboxRepository(), a.rabbitMqClient)
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(store),
	)
	coffeeTypeSvc := catalogsvc.MustNewCoffeeTypeService(
		catalogsvc.WithUnitOfWork(store),
	)
	configurationSvc := configsvc.MustNewConfigurationService(
		configsvc.WithUnitOfWork(store),
	)

	a.transport = httptransport.NewHTTPTransport(orderSvc, coffeeTypeSvc, configurationSvc)
	a.transport.RegisterRoutes()

	return a
}

// Run starts the HTTP server and, when publishing is enabled, the outbox worker.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "port", viper.GetString("server.http.port"))
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	if a.outboxWorker != nil {
		g.Go(func() error {
			a.outboxWorker.Start(ctx)

			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		timeout := time.Duration(viper.GetInt("server.http.shutdown_timeout_seconds")) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := a.transport.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		slog.Info("HTTP server stopped gracefully")

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Application error", "error", err)
	}

	a.gracefulShutdown()
}

// gracefulShutdown releases RabbitMQ, PostgreSQL and OpenTelemetry in that order.
func (a *App) gracefulShutdown() {
	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.otelController != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.otelController.Shutdown(ctx); err != nil {
			slog.Error("Otel trace provider close error", "error", err)
		} else {
			slog.Info("Otel trace provider closed gracefully")
		}
	}

	slog.Info("Application shutdown complete")
}
