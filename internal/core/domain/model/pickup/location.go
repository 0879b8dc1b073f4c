// Package pickup models merchant registered pickup addresses.
package pickup

import (
	"errors"
	"strings"
	"time"

	"orderintake/internal/pkg/errs"
)

// ErrLocationInactive is returned when a pickup location exists but is switched off.
var ErrLocationInactive = errors.New("pickup location is inactive")

// Location is a merchant owned address from which shipments are collected.
// Activation can change at any time, so a Location must never be cached.
type Location struct {
	merchantID uint64
	code       string
	name       string
	address    string
	city       string
	state      string
	pincode    string
	isActive   bool
	deletedAt  *time.Time
}

// Params describes a pickup location as stored.
type Params struct {
	MerchantID uint64
	Code       string
	Name       string
	Address    string
	City       string
	State      string
	Pincode    string
	IsActive   bool
	DeletedAt  *time.Time
}

// NewLocation validates the identifying fields of a pickup location.
func NewLocation(p Params) (*Location, error) {
	var err error
	if p.MerchantID == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("merchant_id"))
	}
	if strings.TrimSpace(p.Code) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pickup_location.code"))
	}
	if strings.TrimSpace(p.Pincode) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pickup_location.pincode"))
	}
	if err != nil {
		return nil, err
	}

	return &Location{
		merchantID: p.MerchantID,
		code:       p.Code,
		name:       p.Name,
		address:    p.Address,
		city:       p.City,
		state:      p.State,
		pincode:    p.Pincode,
		isActive:   p.IsActive,
		deletedAt:  p.DeletedAt,
	}, nil
}

// CheckUsableBy returns nil when the location belongs to the merchant,
// is not soft deleted and is active.
func (l *Location) CheckUsableBy(merchantID uint64) error {
	if l.merchantID != merchantID || l.deletedAt != nil {
		return errs.NewObjectNotFoundError("pickup_location", l.code)
	}
	if !l.isActive {
		return ErrLocationInactive
	}
	return nil
}

func (l *Location) MerchantID() uint64 { return l.merchantID }
func (l *Location) Code() string       { return l.code }
func (l *Location) Name() string       { return l.name }
func (l *Location) Address() string    { return l.address }
func (l *Location) City() string       { return l.city }
func (l *Location) State() string      { return l.state }
func (l *Location) Pincode() string    { return l.pincode }
func (l *Location) IsActive() bool     { return l.isActive }
func (l *Location) IsDeleted() bool    { return l.deletedAt != nil }
