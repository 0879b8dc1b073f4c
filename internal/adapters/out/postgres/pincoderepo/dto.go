// Package pincoderepo is the PostgreSQL backed Pincode Directory.
package pincoderepo

import (
	"time"

	"orderintake/internal/core/domain/model/pincode"

	"github.com/lib/pq"
)

// PincodeDTO is a pincodes row. Couriers is a text[] column.
type PincodeDTO struct {
	Pincode         string `gorm:"primaryKey"`
	City            string
	State           string
	IsMetro         bool
	IsSpecialRegion bool
	IsServiceable   bool
	Couriers        pq.StringArray `gorm:"type:text[]"`
	UpdatedAt       time.Time
}

// TableName overrides GORM's default naming.
func (PincodeDTO) TableName() string {
	return "pincodes"
}

func fromDomain(p *pincode.Pincode) PincodeDTO {
	return PincodeDTO{
		Pincode:         p.Code(),
		City:            p.City(),
		State:           p.State(),
		IsMetro:         p.IsMetro(),
		IsSpecialRegion: p.IsSpecialRegion(),
		IsServiceable:   p.IsServiceable(),
		Couriers:        pq.StringArray(p.Couriers()),
	}
}

func toDomain(dto PincodeDTO) (*pincode.Pincode, error) {
	return pincode.NewPincode(pincode.Params{
		Code:            dto.Pincode,
		City:            dto.City,
		State:           dto.State,
		IsMetro:         dto.IsMetro,
		IsSpecialRegion: dto.IsSpecialRegion,
		IsServiceable:   dto.IsServiceable,
		Couriers:        []string(dto.Couriers),
	})
}
