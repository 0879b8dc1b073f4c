package order

import (
	"fmt"
	"strings"

	"orderintake/internal/pkg/errs"
)

// PaymentMode is how the consignee pays for the shipment.
type PaymentMode string

const (
	// PaymentModeCOD means the courier collects cash on delivery.
	PaymentModeCOD PaymentMode = "cod"

	// PaymentModePrepaid means the order was paid before shipping.
	PaymentModePrepaid PaymentMode = "prepaid"
)

// ParsePaymentMode accepts "cod" or "prepaid" in any letter case,
// surrounding whitespace ignored.
func ParsePaymentMode(raw string) (PaymentMode, error) {
	mode := PaymentMode(strings.ToLower(strings.TrimSpace(raw)))
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

// Validate rejects anything outside the fixed enumeration.
func (m PaymentMode) Validate() error {
	switch m {
	case PaymentModeCOD, PaymentModePrepaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment_mode", fmt.Errorf("%q is not one of cod, prepaid", string(m)))
	}
}

// IsCOD reports whether cash has to be collected on delivery.
func (m PaymentMode) IsCOD() bool {
	return m == PaymentModeCOD
}

func (m PaymentMode) String() string {
	return string(m)
}
