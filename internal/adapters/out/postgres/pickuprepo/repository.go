package pickuprepo

import (
	"context"
	"errors"
	"fmt"

	"orderintake/internal/core/domain/model/pickup"
	"orderintake/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPickupLocationRegistry implements ports.PickupLocationRegistry.
type GormPickupLocationRegistry struct {
	db *gorm.DB
}

// NewGormPickupLocationRegistry creates the registry.
func NewGormPickupLocationRegistry(db *gorm.DB) *GormPickupLocationRegistry {
	return &GormPickupLocationRegistry{db: db}
}

// GetActiveLocation returns the merchant's location with the given code.
// Missing and soft deleted locations are reported as errs.ObjectNotFoundError,
// inactive ones as pickup.ErrLocationInactive.
func (r *GormPickupLocationRegistry) GetActiveLocation(
	ctx context.Context,
	merchantID uint64,
	code string,
) (*pickup.Location, error) {
	var dto LocationDTO
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND code = ? AND deleted_at IS NULL", merchantID, code).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickup_location", code)
		}
		return nil, fmt.Errorf("failed to read pickup location %s: %w", code, err)
	}

	location, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	if err = location.CheckUsableBy(merchantID); err != nil {
		return nil, err
	}
	return location, nil
}

// Add stores a new location. Used when onboarding a merchant warehouse.
func (r *GormPickupLocationRegistry) Add(ctx context.Context, location *pickup.Location) error {
	dto := fromDomain(location)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("failed to insert pickup location %s: %w", location.Code(), err)
	}
	return nil
}
