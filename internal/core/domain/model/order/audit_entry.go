package order

import (
	"time"

	"orderintake/internal/core/domain/model/kernel"
)

// AuditAction names what happened to an order.
type AuditAction string

// AuditActionCreated is recorded once, when the order is first persisted.
const AuditActionCreated AuditAction = "order_created"

// AuditEntry is an append-only record owned by an Order. Entries are
// never mutated after creation.
type AuditEntry struct {
	id         kernel.UUID
	action     AuditAction
	actor      string
	source     string
	occurredAt time.Time
}

// NewAuditEntry creates an entry with a fresh identifier.
func NewAuditEntry(action AuditAction, actor, source string, occurredAt time.Time) AuditEntry {
	return AuditEntry{
		id:         kernel.NewUUID(),
		action:     action,
		actor:      actor,
		source:     source,
		occurredAt: occurredAt,
	}
}

// ID returns the entry identifier.
func (a AuditEntry) ID() kernel.UUID { return a.id }

// Action returns what happened.
func (a AuditEntry) Action() AuditAction { return a.action }

// Actor returns who triggered the change.
func (a AuditEntry) Actor() string { return a.actor }

// Source returns the channel the change came through (api, webhook, bulk import).
func (a AuditEntry) Source() string { return a.source }

// OccurredAt returns when the change happened.
func (a AuditEntry) OccurredAt() time.Time { return a.occurredAt }
