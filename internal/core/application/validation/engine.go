package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/core/domain/model/pickup"
	"orderintake/internal/core/ports"
	"orderintake/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)

// Engine validates order drafts. It is stateless apart from its collaborators
// and never mutates the draft.
//
// Lookups:
//   - PincodeDirectory: serviceability and city/state hints (usually the cache)
//   - PickupLocationRegistry: fresh read, never cached
//   - OrderReader: advisory duplicate detection
type Engine struct {
	pincodes ports.PincodeDirectory
	pickups  ports.PickupLocationRegistry
	orders   ports.OrderReader
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

// NewEngine creates a validation engine.
func NewEngine(
	pincodes ports.PincodeDirectory,
	pickups ports.PickupLocationRegistry,
	orders ports.OrderReader,
	now func() time.Time,
	logger *slog.Logger,
) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		pincodes: pincodes,
		pickups:  pickups,
		orders:   orders,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
		logger:   logger.With("component", "validation_engine"),
	}
}

// Validate runs every check and collects all problems; nothing short-circuits.
// The error return is reserved for infrastructure failures of the lookups.
//
// Example:
//
//	outcome, err := engine.Validate(ctx, merchantID, draft)
//	if err != nil {
//	    return err // directory or database unavailable
//	}
//	if !outcome.IsValid {
//	    for _, fe := range outcome.Errors {
//	        fmt.Println(fe.Field, fe.Code, fe.Message)
//	    }
//	}
func (e *Engine) Validate(ctx context.Context, merchantID uint64, draft order.Draft) (Outcome, error) {
	out := newOutcome()

	e.checkOrderIdentity(out, draft)
	if err := e.checkAddress(ctx, out, "consignee", draft.Consignee, true); err != nil {
		return Outcome{}, err
	}
	if !draft.BillingSameAsConsignee {
		if draft.Billing == nil {
			out.addError("billing", CodeRequired, "billing address is required when it differs from consignee")
		} else if err := e.checkAddress(ctx, out, "billing", *draft.Billing, false); err != nil {
			return Outcome{}, err
		}
	}
	e.checkPaymentMode(out, draft)
	e.checkPackage(out, draft.Package)
	e.checkCharges(out, draft)
	e.checkProducts(out, draft.Products)
	e.checkTotals(out, draft)

	if err := e.checkPickupLocation(ctx, out, merchantID, draft.PickupLocationCode); err != nil {
		return Outcome{}, err
	}
	if err := e.checkDuplicate(ctx, out, merchantID, draft.OrderID); err != nil {
		return Outcome{}, err
	}
	if err := e.addDirectoryWarnings(ctx, out, draft.Consignee); err != nil {
		return Outcome{}, err
	}
	e.addDateWarning(out, draft.OrderDate)

	out.IsValid = len(out.Errors) == 0
	e.logger.DebugContext(ctx, "draft validated",
		"order_id", draft.OrderID,
		"merchant_id", merchantID,
		"errors", len(out.Errors),
		"warnings", len(out.Warnings),
		"duplicate", out.Duplicate != nil,
	)
	return *out, nil
}

func (e *Engine) checkOrderIdentity(out *Outcome, draft order.Draft) {
	switch {
	case strings.TrimSpace(draft.OrderID) == "":
		out.addError("order_id", CodeRequired, "order_id is required")
	case !orderIDPattern.MatchString(draft.OrderID):
		out.addError("order_id", CodeInvalidFormat,
			"order_id must be 1-100 characters of letters, digits, dot, dash or underscore")
	}

	if draft.OrderDate.IsZero() {
		out.addError("order_date", CodeRequired, "order_date is required")
	}
}

func (e *Engine) checkPaymentMode(out *Outcome, draft order.Draft) {
	if strings.TrimSpace(draft.PaymentMode) == "" {
		out.addError("payment_mode", CodeRequired, "payment_mode is required")
		return
	}
	if _, err := order.ParsePaymentMode(draft.PaymentMode); err != nil {
		out.addError("payment_mode", CodeInvalidPaymentMode, "payment_mode must be cod or prepaid")
	}
}

func (e *Engine) checkPickupLocation(ctx context.Context, out *Outcome, merchantID uint64, code string) error {
	if strings.TrimSpace(code) == "" {
		out.addError("pickup_location", CodeRequired, "pickup_location is required")
		return nil
	}

	_, err := e.pickups.GetActiveLocation(ctx, merchantID, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrObjectNotFound):
		out.addError("pickup_location", CodePickupNotFound, fmt.Sprintf("pickup location %q not found", code))
		return nil
	case errors.Is(err, pickup.ErrLocationInactive):
		out.addError("pickup_location", CodePickupInactive, fmt.Sprintf("pickup location %q is inactive", code))
		return nil
	default:
		return fmt.Errorf("pickup location lookup: %w", err)
	}
}

func (e *Engine) checkDuplicate(ctx context.Context, out *Outcome, merchantID uint64, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return nil
	}

	existing, err := e.orders.FindByOrderID(ctx, merchantID, orderID)
	switch {
	case err == nil:
		out.Duplicate = existing
		return nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return fmt.Errorf("duplicate lookup: %w", err)
	}
}

func (e *Engine) addDirectoryWarnings(ctx context.Context, out *Outcome, consignee order.Address) error {
	if out.HasErrorFor("consignee.pincode") || strings.TrimSpace(consignee.Pincode) == "" {
		return nil
	}

	record, err := e.pincodes.Lookup(ctx, strings.TrimSpace(consignee.Pincode))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return fmt.Errorf("pincode lookup: %w", err)
	}

	if city := strings.TrimSpace(consignee.City); city != "" && !strings.EqualFold(city, record.City()) {
		out.addWarning(fmt.Sprintf("consignee.city %q differs from %q on record for pincode %s",
			city, record.City(), record.Code()))
	}
	if state := strings.TrimSpace(consignee.State); state != "" && !strings.EqualFold(state, record.State()) {
		out.addWarning(fmt.Sprintf("consignee.state %q differs from %q on record for pincode %s",
			state, record.State(), record.Code()))
	}
	return nil
}

func (e *Engine) addDateWarning(out *Outcome, orderDate time.Time) {
	if orderDate.IsZero() {
		return
	}
	today := e.now().UTC().Truncate(24 * time.Hour)
	if orderDate.UTC().Truncate(24 * time.Hour).After(today) {
		out.addWarning(fmt.Sprintf("order_date %s is in the future", orderDate.Format(time.DateOnly)))
	}
}
