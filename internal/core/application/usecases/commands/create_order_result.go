package commands

import (
	"fmt"
	"net/http"

	"orderintake/internal/core/application/validation"
	"orderintake/internal/core/domain/model/order"
)

// Machine readable failure codes returned to callers.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodePickupInvalid         = "PICKUP_INVALID"
	CodeZoneCalculationFailed = "ZONE_CALCULATION_FAILED"
	CodeCODExceedsTotal       = "COD_EXCEEDS_TOTAL"
	CodeNoValidProducts       = "NO_VALID_PRODUCTS"
	CodeDuplicateOrder        = "DUPLICATE_ORDER"
	CodeOrderAlreadyProcessed = "ORDER_ALREADY_PROCESSED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// CreateOrderResult is returned when the order was created.
type CreateOrderResult struct {
	InternalID uint64
	OrderID    string
	Zone       string
	Warnings   []string
}

// CreateOrderError is the only error type returned by CreateOrderCommandHandler.
// Validation errors carry the complete field list; duplicates carry the
// existing order's status (and AWB number once processed) in Details.
type CreateOrderError struct {
	Code       string
	Message    string
	Field      string
	HTTPStatus int
	Details    map[string]string
	Errors     []validation.FieldError
	Warnings   []string

	cause error
}

func (e *CreateOrderError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the infrastructure failure behind an INTERNAL_ERROR.
func (e *CreateOrderError) Unwrap() error {
	return e.cause
}

// IsDuplicate reports whether the error is one of the two conflict codes.
func (e *CreateOrderError) IsDuplicate() bool {
	return e.Code == CodeDuplicateOrder || e.Code == CodeOrderAlreadyProcessed
}

func newValidationError(outcome validation.Outcome) *CreateOrderError {
	err := &CreateOrderError{
		Code:       CodeValidationError,
		Message:    fmt.Sprintf("order has %d validation error(s)", len(outcome.Errors)),
		HTTPStatus: http.StatusBadRequest,
		Errors:     outcome.Errors,
		Warnings:   outcome.Warnings,
	}
	if len(outcome.Errors) > 0 {
		err.Field = outcome.Errors[0].Field
	}
	return err
}

func newPickupInvalidError(code string, cause error) *CreateOrderError {
	return &CreateOrderError{
		Code:       CodePickupInvalid,
		Message:    fmt.Sprintf("pickup location %q is missing or inactive", code),
		Field:      "pickup_location",
		HTTPStatus: http.StatusUnprocessableEntity,
		cause:      cause,
	}
}

func newZoneError(origin, destination string, cause error) *CreateOrderError {
	return &CreateOrderError{
		Code:       CodeZoneCalculationFailed,
		Message:    fmt.Sprintf("no zone could be resolved from %s to %s", origin, destination),
		Field:      "consignee.pincode",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]string{
			"origin_pincode":      origin,
			"destination_pincode": destination,
		},
		cause: cause,
	}
}

func newCODExceedsTotalError(requested, total string) *CreateOrderError {
	return &CreateOrderError{
		Code:       CodeCODExceedsTotal,
		Message:    fmt.Sprintf("cod_to_collect %s exceeds total_amount %s", requested, total),
		Field:      "cod_to_collect",
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]string{
			"cod_to_collect": requested,
			"total_amount":   total,
		},
	}
}

func newNoValidProductsError(warnings []string) *CreateOrderError {
	return &CreateOrderError{
		Code:       CodeNoValidProducts,
		Message:    "no products with a name remain after filtering",
		Field:      "products",
		HTTPStatus: http.StatusBadRequest,
		Warnings:   warnings,
	}
}

func newDuplicateError(existing *order.Order) *CreateOrderError {
	details := map[string]string{
		"order_id":    existing.OrderID(),
		"status":      existing.Status().String(),
		"internal_id": fmt.Sprint(existing.InternalID()),
	}

	if existing.Status().IsResubmittable() {
		return &CreateOrderError{
			Code:       CodeDuplicateOrder,
			Message:    fmt.Sprintf("order %s already exists with status %s", existing.OrderID(), existing.Status()),
			Field:      "order_id",
			HTTPStatus: http.StatusConflict,
			Details:    details,
		}
	}

	if awb, ok := existing.AWBNumber(); ok {
		details["awb_number"] = awb
	}
	return &CreateOrderError{
		Code:       CodeOrderAlreadyProcessed,
		Message:    fmt.Sprintf("order %s was already processed and is %s", existing.OrderID(), existing.Status()),
		Field:      "order_id",
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

func newInternalError(message string, cause error) *CreateOrderError {
	return &CreateOrderError{
		Code:       CodeInternalError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}
