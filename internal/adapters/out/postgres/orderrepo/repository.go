package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/core/ports"
	"orderintake/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// UniqueOrderConstraint is the partial unique index on (order_id, merchant_id).
	UniqueOrderConstraint = "ux_orders_order_id_merchant_id"

	uniqueViolationCode = "23505"
	lineItemBatchSize   = 100
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates written inside a unit of work.
type aggregateTracker interface {
	TrackAggregate(internalID uint64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add writes the order, its line items and its audit entries inside a nested
// transaction. When the surrounding connection already holds a transaction
// GORM turns the nested one into a savepoint, so a uniqueness violation only
// undoes this order and leaves the outer transaction usable.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (ports.AddResult, error) {
	if err := aggregate.Validate(); err != nil {
		return ports.AddResult{}, err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}

		items := lineItemsFromDomain(dto.ID, aggregate.LineItems())
		if err := tx.CreateInBatches(&items, lineItemBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert line items: %w", err)
		}

		if entries := auditEntriesFromDomain(dto.ID, aggregate.AuditTrail()); len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return fmt.Errorf("failed to insert audit entries: %w", err)
			}
		}
		return nil
	})

	if isOrderConflict(err) {
		return ports.AddResult{Outcome: ports.AddOutcomeConflict}, nil
	}
	if err != nil {
		return ports.AddResult{}, fmt.Errorf("failed to insert order %s: %w", aggregate.OrderID(), err)
	}

	if err = aggregate.AssignInternalID(dto.ID); err != nil {
		return ports.AddResult{}, err
	}
	if r.tracker != nil {
		r.tracker.TrackAggregate(dto.ID, aggregate)
	}

	return ports.AddResult{Outcome: ports.AddOutcomeCreated, InternalID: dto.ID}, nil
}

// FindByOrderID returns the merchant's non-deleted order with its line items.
func (r *GormOrderRepository) FindByOrderID(ctx context.Context, merchantID uint64, orderID string) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var dto OrderDTO
	err := db.
		Where("merchant_id = ? AND order_id = ? AND deleted_at IS NULL", merchantID, orderID).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID)
		}
		return nil, fmt.Errorf("failed to read order %s: %w", orderID, err)
	}

	var items []LineItemDTO
	if err = db.Where("order_id = ?", dto.ID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to read line items of order %s: %w", orderID, err)
	}

	return toDomain(dto, items)
}

// isOrderConflict reports whether err is the uniqueness violation of the
// (order_id, merchant_id) index. Other unique violations are real errors.
func isOrderConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == UniqueOrderConstraint
}
