package pincoderepo

import (
	"context"
	"errors"
	"fmt"

	"orderintake/internal/core/domain/model/pincode"
	"orderintake/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPincodeDirectory implements ports.PincodeDirectory. It is normally
// wrapped by the pincode cache.
type GormPincodeDirectory struct {
	db *gorm.DB
}

// NewGormPincodeDirectory creates the directory.
func NewGormPincodeDirectory(db *gorm.DB) *GormPincodeDirectory {
	return &GormPincodeDirectory{db: db}
}

// Lookup returns the directory record or an errs.ObjectNotFoundError.
func (d *GormPincodeDirectory) Lookup(ctx context.Context, code string) (*pincode.Pincode, error) {
	var dto PincodeDTO
	if err := d.db.WithContext(ctx).Where("pincode = ?", code).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pincode", code)
		}
		return nil, fmt.Errorf("failed to read pincode %s: %w", code, err)
	}
	return toDomain(dto)
}

// IsServiceable reports whether the pincode is known and served by at least
// one courier.
func (d *GormPincodeDirectory) IsServiceable(ctx context.Context, code string) (bool, error) {
	p, err := d.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.IsServiceable(), nil
}

// Upsert inserts or replaces directory records, used by the directory import.
func (d *GormPincodeDirectory) Upsert(ctx context.Context, records ...*pincode.Pincode) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]PincodeDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, fromDomain(r))
	}

	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pincode"}},
			UpdateAll: true,
		}).
		Create(&dtos).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d pincodes: %w", len(dtos), err)
	}
	return nil
}
