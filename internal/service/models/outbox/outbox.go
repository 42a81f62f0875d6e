package outbox

import (
	"time"
)

const (
	RoutingKeyOrderCreated   = "coffee.order.created"
	RoutingKeyOrderCancelled = "coffee.order.cancelled"
)

// OutboxMessage represents an order event waiting to be published to RabbitMQ.
type OutboxMessage struct {
	ID           int64
	MessageID    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
