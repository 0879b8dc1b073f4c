// Package pickuprepo reads merchant pickup locations. Lookups always hit the
// database; a location deactivated a second ago must already be rejected.
package pickuprepo

import (
	"time"

	"orderintake/internal/core/domain/model/pickup"
)

// LocationDTO is a pickup_locations row.
type LocationDTO struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	MerchantID uint64
	Code       string
	Name       string
	Address    string
	City       string
	State      string
	Pincode    string
	IsActive   bool
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// TableName overrides GORM's default naming.
func (LocationDTO) TableName() string {
	return "pickup_locations"
}

func fromDomain(l *pickup.Location) LocationDTO {
	return LocationDTO{
		MerchantID: l.MerchantID(),
		Code:       l.Code(),
		Name:       l.Name(),
		Address:    l.Address(),
		City:       l.City(),
		State:      l.State(),
		Pincode:    l.Pincode(),
		IsActive:   l.IsActive(),
	}
}

func toDomain(dto LocationDTO) (*pickup.Location, error) {
	return pickup.NewLocation(pickup.Params{
		MerchantID: dto.MerchantID,
		Code:       dto.Code,
		Name:       dto.Name,
		Address:    dto.Address,
		City:       dto.City,
		State:      dto.State,
		Pincode:    dto.Pincode,
		IsActive:   dto.IsActive,
		DeletedAt:  dto.DeletedAt,
	})
}
