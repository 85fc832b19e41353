package consumer

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/dal/rabbitmq"
	inboxrepo "github.com/fastfood-uz/pos/internal/dal/repositories/inbox/postgres"
	"github.com/fastfood-uz/pos/internal/otel"
	"github.com/fastfood-uz/pos/internal/service/services/auditsvc"
	consumertransport "github.com/fastfood-uz/pos/internal/transport/consumer"
	inboxworker "github.com/fastfood-uz/pos/internal/worker/inbox"
)

// App represents the audit consumer application.
type App struct {
	auditSvc       *auditsvc.AuditService
	consumerTransp *consumertransport.Consumer
	inboxWorker    *inboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("pos-audit-consumer-svc")
	rabbitMqClient := rabbitmq.MustNewClient()
	postgresClient := postgres.MustNewClient()

	inboxRepository := inboxrepo.NewInboxRepository(postgresClient.Pool())

	auditSvc := auditsvc.NewAuditService(postgresClient)

	consumerTransp := consumertransport.NewConsumer(rabbitMqClient, inboxRepository)

	pollIntervalSeconds := viper.GetInt("rabbitmq.inbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.inbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	inboxWorker := inboxworker.NewWorker(
		inboxRepository,
		auditSvc,
		time.Duration(pollIntervalSeconds)*time.Second,
		batchSize,
	)

	return &App{
		auditSvc:       auditSvc,
		consumerTransp: consumerTransp,
		inboxWorker:    inboxWorker,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
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
		slog.Info("Starting consumer")
		if err := a.consumerTransp.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting inbox worker")
		a.inboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown stops components sequentially: inbox worker,
// consumer, RabbitMQ, PostgreSQL and the trace provider.
func (a *App) gracefulShutdown() {
	a.inboxWorker.Stop()
	slog.Info("Inbox worker stopped gracefully")

	if err := a.consumerTransp.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	} else {
		slog.Info("Consumer stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
