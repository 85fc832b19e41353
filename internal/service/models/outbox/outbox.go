package outbox

import "time"

// OutboxMessage is a pending event written in the same transaction as the
// state change it describes and published to RabbitMQ by the outbox worker.
type OutboxMessage struct {
	ID           int64     `json:"id"`
	QueueName    string    `json:"queueName"`
	ExchangeName string    `json:"exchangeName"`
	RoutingKey   string    `json:"routingKey"`
	Payload      []byte    `json:"payload"`
	ContentType  string    `json:"contentType"`
	RetryCount   int       `json:"retryCount"`
	MaxRetries   int       `json:"maxRetries"`
	LastError    string    `json:"lastError"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	NextRetryAt  time.Time `json:"nextRetryAt"`
}
