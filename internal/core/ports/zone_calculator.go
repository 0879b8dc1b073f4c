package ports

import (
	"context"
	"errors"
)

// ErrZoneUnresolved is returned when no zone can be derived for a lane.
var ErrZoneUnresolved = errors.New("zone could not be resolved")

// ZoneCalculator maps an origin and destination pincode to a pricing zone.
type ZoneCalculator interface {
	// Resolve returns the zone letter or an error wrapping ErrZoneUnresolved.
	// It never falls back to a default zone.
	Resolve(ctx context.Context, originPincode, destinationPincode string) (string, error)
}
