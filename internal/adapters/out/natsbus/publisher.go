// Package natsbus publishes domain events to NATS.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"orderintake/internal/core/ports"

	"github.com/nats-io/nats.go"
)

// DefaultOrderCreatedSubject is used when no subject is configured.
const DefaultOrderCreatedSubject = "orders.created"

// MsgPublisher is the subset of *nats.Conn the publisher needs.
type MsgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// OrderEventPublisher implements ports.EventPublisher. Each message carries
// the event id in the Nats-Msg-Id header so a JetStream stream on the
// subject deduplicates redeliveries.
type OrderEventPublisher struct {
	conn    MsgPublisher
	subject string
}

// NewOrderEventPublisher creates a publisher writing to subject.
func NewOrderEventPublisher(conn MsgPublisher, subject string) *OrderEventPublisher {
	if subject == "" {
		subject = DefaultOrderCreatedSubject
	}
	return &OrderEventPublisher{conn: conn, subject: subject}
}

// PublishOrderCreated serialises the event as JSON and publishes it.
func (p *OrderEventPublisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order.created event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Header.Set(nats.MsgIdHdr, event.EventID)
	msg.Header.Set("Content-Type", "application/json")
	msg.Data = body

	if err = p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}

// Connect opens a NATS connection that keeps reconnecting in the background
// and reports connection changes on logger.
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	logger = logger.With("component", "nats")

	conn, err := nats.Connect(url,
		nats.Name("order-intake"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected from NATS", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("reconnected to NATS", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return conn, nil
}
