package inbox

import "time"

// InboxMessage is a consumed event parked for processing with retries.
// MessageID deduplicates redeliveries from the broker.
type InboxMessage struct {
	ID          int64     `json:"id"`
	MessageID   string    `json:"messageId"`
	QueueName   string    `json:"queueName"`
	RoutingKey  string    `json:"routingKey"`
	Payload     []byte    `json:"payload"`
	ContentType string    `json:"contentType"`
	RetryCount  int       `json:"retryCount"`
	MaxRetries  int       `json:"maxRetries"`
	LastError   string    `json:"lastError"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	NextRetryAt time.Time `json:"nextRetryAt"`
}
