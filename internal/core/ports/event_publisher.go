package ports

import (
	"context"
	"time"
)

// OrderCreatedEvent is emitted after an order was committed.
type OrderCreatedEvent struct {
	EventID      string    `json:"event_id"`
	InternalID   uint64    `json:"internal_id"`
	OrderID      string    `json:"order_id"`
	MerchantID   uint64    `json:"merchant_id"`
	Zone         string    `json:"zone"`
	PaymentMode  string    `json:"payment_mode"`
	TotalAmount  string    `json:"total_amount"`
	CODToCollect string    `json:"cod_to_collect"`
	Channel      string    `json:"channel"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventPublisher delivers integration events. Publishing happens after commit,
// so a failure never undoes an order.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}
