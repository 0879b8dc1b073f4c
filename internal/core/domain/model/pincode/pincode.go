// Package pincode models Indian postal index numbers and the reference data
// attached to them.
package pincode

import (
	"errors"
	"fmt"
	"strings"

	"orderintake/internal/pkg/errs"
)

// Length is the number of digits of a pincode.
const Length = 6

var (
	// ErrNotNumeric is returned when a pincode contains anything but digits.
	ErrNotNumeric = errors.New("pincode must contain digits only")

	// ErrInvalidLength is returned when a numeric pincode is not six digits long.
	ErrInvalidLength = errors.New("pincode must be exactly 6 digits")
)

// CheckFormat classifies a raw pincode. Non-digit content is reported before
// length so that "12a45" is not numeric rather than too short.
func CheckFormat(raw string) error {
	code := strings.TrimSpace(raw)
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrNotNumeric, raw)
		}
	}
	if len(code) != Length {
		return fmt.Errorf("%w: %q has %d", ErrInvalidLength, raw, len(code))
	}
	return nil
}

// Pincode is a directory record.
type Pincode struct {
	code            string
	city            string
	state           string
	isMetro         bool
	isSpecialRegion bool
	isServiceable   bool
	couriers        []string
}

// Params describes a directory record as stored.
type Params struct {
	Code            string
	City            string
	State           string
	IsMetro         bool
	IsSpecialRegion bool
	IsServiceable   bool
	Couriers        []string
}

// NewPincode validates the code and copies the courier list.
func NewPincode(p Params) (*Pincode, error) {
	if err := CheckFormat(p.Code); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("pincode", err)
	}

	couriers := make([]string, len(p.Couriers))
	copy(couriers, p.Couriers)

	return &Pincode{
		code:            strings.TrimSpace(p.Code),
		city:            p.City,
		state:           p.State,
		isMetro:         p.IsMetro,
		isSpecialRegion: p.IsSpecialRegion,
		isServiceable:   p.IsServiceable,
		couriers:        couriers,
	}, nil
}

func (p *Pincode) Code() string          { return p.code }
func (p *Pincode) City() string          { return p.city }
func (p *Pincode) State() string         { return p.state }
func (p *Pincode) IsMetro() bool         { return p.isMetro }
func (p *Pincode) IsSpecialRegion() bool { return p.isSpecialRegion }

// IsServiceable reports whether at least one courier delivers here.
func (p *Pincode) IsServiceable() bool {
	return p.isServiceable
}

// Couriers returns the couriers serving this pincode.
func (p *Pincode) Couriers() []string {
	couriers := make([]string, len(p.couriers))
	copy(couriers, p.couriers)
	return couriers
}

// SameCity reports whether both records are in the same city and state.
func (p *Pincode) SameCity(other *Pincode) bool {
	return p.SameState(other) && strings.EqualFold(strings.TrimSpace(p.city), strings.TrimSpace(other.city))
}

// SameState reports whether both records are in the same state.
func (p *Pincode) SameState(other *Pincode) bool {
	return strings.EqualFold(strings.TrimSpace(p.state), strings.TrimSpace(other.state))
}
