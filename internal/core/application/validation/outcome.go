package validation

import (
	"strings"

	"orderintake/internal/core/domain/model/order"
)

// Error codes reported in FieldError.Code.
const (
	CodeRequired              = "REQUIRED"
	CodeInvalidFormat         = "INVALID_FORMAT"
	CodeInvalidPhone          = "INVALID_PHONE"
	CodeInvalidEmail          = "INVALID_EMAIL"
	CodeInvalidGSTIN          = "INVALID_GSTIN"
	CodePincodeInvalidLength  = "PINCODE_INVALID_LENGTH"
	CodePincodeNotNumeric     = "PINCODE_NOT_NUMERIC"
	CodePincodeNotServiceable = "PINCODE_NOT_SERVICEABLE"
	CodeOutOfRange            = "OUT_OF_RANGE"
	CodeNegativeAmount        = "NEGATIVE_AMOUNT"
	CodeInvalidPaymentMode    = "INVALID_PAYMENT_MODE"
	CodeInvalidQuantity       = "INVALID_QUANTITY"
	CodeInvalidPrice          = "INVALID_PRICE"
	CodePickupNotFound        = "PICKUP_LOCATION_NOT_FOUND"
	CodePickupInactive        = "PICKUP_LOCATION_INACTIVE"
)

// FieldError is one input problem.
type FieldError struct {
	Field   string
	Message string
	Code    string
}

// Outcome is the result of validating a draft. It is never persisted.
//
// Errors keep the order in which checks ran. Warnings never make the outcome
// invalid. Duplicate is set when the preliminary lookup found an existing
// order with the same identifier for the merchant; it is advisory, the
// unique index decides at write time.
type Outcome struct {
	IsValid   bool
	Errors    []FieldError
	Warnings  []string
	Duplicate *order.Order
}

func newOutcome() *Outcome {
	return &Outcome{Errors: make([]FieldError, 0)}
}

func (o *Outcome) addError(field, code, message string) {
	o.Errors = append(o.Errors, FieldError{Field: field, Message: message, Code: code})
}

func (o *Outcome) addWarning(message string) {
	o.Warnings = append(o.Warnings, message)
}

// HasErrorFor reports whether any error was recorded for the field.
func (o Outcome) HasErrorFor(field string) bool {
	for _, e := range o.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (o Outcome) hasErrorWithPrefix(prefix string) bool {
	for _, e := range o.Errors {
		if strings.HasPrefix(e.Field, prefix) {
			return true
		}
	}
	return false
}
