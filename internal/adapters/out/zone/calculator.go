// Package zone classifies an (origin, destination) pincode pair into a
// pricing zone using the Pincode Directory.
//
// Zones, first match wins:
//
//	A  same city
//	E  either end in a special region (north east, islands, J&K)
//	B  same state
//	C  both ends metro
//	D  everything else
package zone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderintake/internal/core/domain/model/pincode"
	"orderintake/internal/core/ports"
	"orderintake/internal/pkg/errs"
)

const (
	ZoneWithinCity    = "A"
	ZoneWithinState   = "B"
	ZoneMetroToMetro  = "C"
	ZoneRestOfCountry = "D"
	ZoneSpecialRegion = "E"
)

// DirectoryZoneCalculator implements ports.ZoneCalculator.
type DirectoryZoneCalculator struct {
	directory ports.PincodeDirectory
	logger    *slog.Logger
}

// NewDirectoryZoneCalculator creates the calculator on top of a directory,
// normally the cached one.
func NewDirectoryZoneCalculator(directory ports.PincodeDirectory, logger *slog.Logger) *DirectoryZoneCalculator {
	return &DirectoryZoneCalculator{
		directory: directory,
		logger:    logger.With("component", "zone_calculator"),
	}
}

// Resolve returns the zone letter. A pincode unknown to the directory yields
// ports.ErrZoneUnresolved; lookup failures and context expiry are returned
// as they are.
func (c *DirectoryZoneCalculator) Resolve(ctx context.Context, origin, destination string) (string, error) {
	from, err := c.lookup(ctx, origin)
	if err != nil {
		return "", err
	}
	to, err := c.lookup(ctx, destination)
	if err != nil {
		return "", err
	}

	zone := classify(from, to)
	c.logger.DebugContext(ctx, "zone resolved", "origin", origin, "destination", destination, "zone", zone)
	return zone, nil
}

func (c *DirectoryZoneCalculator) lookup(ctx context.Context, code string) (*pincode.Pincode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := c.directory.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: pincode %s is not in the directory", ports.ErrZoneUnresolved, code)
		}
		return nil, err
	}
	return p, nil
}

func classify(from, to *pincode.Pincode) string {
	switch {
	case from.SameCity(to):
		return ZoneWithinCity
	case from.IsSpecialRegion() || to.IsSpecialRegion():
		return ZoneSpecialRegion
	case from.SameState(to):
		return ZoneWithinState
	case from.IsMetro() && to.IsMetro():
		return ZoneMetroToMetro
	default:
		return ZoneRestOfCountry
	}
}
