// Package ports defines the contracts between the intake core and its
// infrastructure: persistence, reference data lookups, zone resolution and
// event publishing.
package ports

import (
	"context"

	"orderintake/internal/core/domain/model/order"
)

// AddOutcome tells how an insert attempt ended.
type AddOutcome int

const (
	// AddOutcomeCreated means the order, its line items and audit entry were written.
	AddOutcomeCreated AddOutcome = iota + 1

	// AddOutcomeConflict means another non-deleted order with the same
	// (order_id, merchant_id) already exists. Nothing was written and the
	// surrounding transaction is still usable.
	AddOutcomeConflict
)

func (o AddOutcome) String() string {
	switch o {
	case AddOutcomeCreated:
		return "created"
	case AddOutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// AddResult is the tagged result of OrderRepository.Add.
type AddResult struct {
	Outcome    AddOutcome
	InternalID uint64
}

// OrderReader looks up existing orders. It backs the preliminary duplicate check.
type OrderReader interface {
	// FindByOrderID returns the non-deleted order of the merchant with the given
	// external identifier, or an errs.ObjectNotFoundError.
	FindByOrderID(ctx context.Context, merchantID uint64, orderID string) (*order.Order, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	OrderReader

	// Add writes the order row, all line items and the pending audit entries
	// inside a savepoint. A uniqueness violation on (order_id, merchant_id)
	// is not an error: it rolls back the savepoint and returns
	// AddOutcomeConflict. Any other failure is returned as an error.
	//
	// Example:
	//   result, err := repo.Add(ctx, o)
	//   if err != nil {
	//       return err
	//   }
	//   if result.Outcome == ports.AddOutcomeConflict {
	//       existing, err := repo.FindByOrderID(ctx, o.MerchantID(), o.OrderID())
	//       ...
	//   }
	Add(ctx context.Context, aggregate *order.Order) (AddResult, error)
}
