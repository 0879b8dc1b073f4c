package ports

import (
	"context"

	"orderintake/internal/core/domain/model/pickup"
)

// PickupLocationRegistry reads merchant pickup locations. Implementations
// must always hit the source of truth; activation may change between two
// reads of the same request.
type PickupLocationRegistry interface {
	// GetActiveLocation returns the location when it exists for the merchant,
	// is not soft deleted and is active. Missing, foreign or deleted locations
	// yield an errs.ObjectNotFoundError; inactive ones pickup.ErrLocationInactive.
	GetActiveLocation(ctx context.Context, merchantID uint64, code string) (*pickup.Location, error)
}
