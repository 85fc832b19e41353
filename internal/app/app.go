package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/dal/rabbitmq"
	"github.com/fastfood-uz/pos/internal/dal/redis"
	outboxrepo "github.com/fastfood-uz/pos/internal/dal/repositories/outbox/postgres"
	"github.com/fastfood-uz/pos/internal/otel"
	"github.com/fastfood-uz/pos/internal/service/services/branchsvc"
	"github.com/fastfood-uz/pos/internal/service/services/catalogsvc"
	"github.com/fastfood-uz/pos/internal/service/services/ordersvc"
	"github.com/fastfood-uz/pos/internal/service/services/staffsvc"
	"github.com/fastfood-uz/pos/internal/service/services/statssvc"
	httptransport "github.com/fastfood-uz/pos/internal/transport/http"
	outboxworker "github.com/fastfood-uz/pos/internal/worker/outbox"
)

// App represents the order service application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("pos-svc")
	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
		catalogsvc.WithCache(redisClient),
	)
	branchSvc := branchsvc.NewBranchService(postgresClient)
	staffSvc := staffsvc.NewStaffService(postgresClient)
	statsSvc := statssvc.NewStatsService(postgresClient)

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc, branchSvc, staffSvc, statsSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewOutboxRepository(postgresClient.Pool()),
		rabbitMqClient,
	)

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown stops components sequentially: HTTP server, outbox
// worker, RabbitMQ, Redis, PostgreSQL and the trace provider.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	} else {
		slog.Info("Redis connection closed gracefully")
	}

	a.postgresClient.Close()

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
