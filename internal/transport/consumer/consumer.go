package consumer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/iinboxrepo"
	"github.com/fastfood-uz/pos/internal/dal/rabbitmq"
	"github.com/fastfood-uz/pos/internal/service/models/inbox"
)

// Consumer receives order status events from RabbitMQ and parks them in
// the inbox table. Processing happens in the inbox worker, so a crash
// after Ack does not lose the event.
type Consumer struct {
	client    *rabbitmq.Client
	inboxRepo iinboxrepo.IInboxRepository
	queue     amqp.Queue
	stop      chan struct{}
	done      chan struct{}
}

// NewConsumer creates a new Consumer.
func NewConsumer(client *rabbitmq.Client, inboxRepo iinboxrepo.IInboxRepository) *Consumer {
	queueName := viper.GetString("rabbitmq.order_status.queue")
	if queueName == "" {
		queueName = "pos.order.status"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return &Consumer{
		client:    client,
		inboxRepo: inboxRepo,
		queue:     queue,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run starts consuming messages from RabbitMQ.
func (c *Consumer) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.consumer_tag")
	if consumerTag == "" {
		consumerTag = "audit-consumer-svc"
	}

	msgs, err := c.client.Consume(rabbitmq.ConsumeConfig{
		Queue:    c.queue.Name,
		Consumer: consumerTag,
	})
	if err != nil {
		return err
	}

	slog.Info("Consumer started", "queue", c.queue.Name, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(50)

	go func() {
		for {
			select {
			case <-c.stop:
				slog.Info("Stopping consumer")
				close(c.done)

				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Info("Message channel closed")
					close(c.done)

					return
				}

				g.Go(func() error {
					return c.parkMessage(gctx, msg)
				})
			}
		}
	}()

	<-c.done
	if err := g.Wait(); err != nil {
		slog.Error("Error parking messages", "error", err)
	}

	return nil
}

// parkMessage writes a single delivery into the inbox table.
func (c *Consumer) parkMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx, span := otel.Tracer("consumer").Start(ctx, "Consumer.parkMessage")
	defer span.End()

	messageID := msg.MessageId
	if messageID == "" {
		messageID = uuid.New().String()
	}

	contentType := msg.ContentType
	if contentType == "" {
		contentType = "application/json"
	}

	maxRetries := viper.GetInt("rabbitmq.inbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := time.Now()
	err := c.inboxRepo.Insert(ctx, inbox.InboxMessage{
		MessageID:   messageID,
		QueueName:   c.queue.Name,
		RoutingKey:  msg.RoutingKey,
		Payload:     msg.Body,
		ContentType: contentType,
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
	if err != nil {
		slog.Error("Failed to park message in inbox", "error", err, "message_id", messageID)
		if err := msg.Nack(false, true); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return err
	}

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack message", "error", err)

		return err
	}

	slog.Info("Message parked in inbox", "message_id", messageID)

	return nil
}

// Shutdown gracefully shuts down the consumer.
func (c *Consumer) Shutdown() error {
	slog.Info("Shutting down consumer")
	close(c.stop)

	select {
	case <-c.done:
		slog.Info("Consumer stopped successfully")
	case <-time.After(10 * time.Second):
		slog.Warn("Consumer shutdown timeout")
	}

	return nil
}
