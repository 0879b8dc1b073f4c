package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orderintake/internal/core/application/validation"
	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/core/domain/model/pickup"
	"orderintake/internal/core/domain/services"
	"orderintake/internal/core/ports"
	"orderintake/internal/pkg/errs"
)

// DefaultChannel is recorded as the source when the draft names none.
const DefaultChannel = "api"

// DraftValidator is the Validation Engine as seen by the orchestrator.
type DraftValidator interface {
	Validate(ctx context.Context, merchantID uint64, draft order.Draft) (validation.Outcome, error)
}

// IntakeRecorder receives the terminal state and duration of every request.
type IntakeRecorder interface {
	RecordIntake(state string, elapsed time.Duration)
}

// Timeouts bound the two blocking steps of the pipeline.
type Timeouts struct {
	Zone    time.Duration
	Persist time.Duration
}

// CreateOrderDependencies groups the collaborators of CreateOrderCommandHandler.
type CreateOrderDependencies struct {
	UoWFactory OrderUoWFactory
	Validator  DraftValidator
	Pickups    ports.PickupLocationRegistry
	Zones      ports.ZoneCalculator
	Publisher  ports.EventPublisher
	Recorder   IntakeRecorder
	Timeouts   Timeouts
	Now        func() time.Time
	Logger     *slog.Logger
}

// CreateOrderCommandHandler is the Creation Orchestrator. It walks a draft
// through validation, pickup confirmation, zone resolution, calculation, COD
// check, product filtering, sanitization and a single transactional write.
//
// Every gate that fails returns its terminal error immediately and nothing is
// written. The (order_id, merchant_id) unique index is the only race arbiter:
// a conflicting insert is answered as a duplicate, never as an internal error.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(deps)
//	cmd, _ := NewCreateOrderCommand(merchantID, "ops@merchant", draft)
//
//	result, err := handler.Handle(ctx, cmd)
//	var intakeErr *CreateOrderError
//	if errors.As(err, &intakeErr) {
//	    // intakeErr.Code, intakeErr.HTTPStatus
//	}
//	fmt.Println(result.InternalID, result.Zone, result.Warnings)
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	validator  DraftValidator
	pickups    ports.PickupLocationRegistry
	zones      ports.ZoneCalculator
	publisher  ports.EventPublisher
	recorder   IntakeRecorder
	calculator services.OrderCalculator
	sanitizer  services.TextSanitizer
	timeouts   Timeouts
	now        func() time.Time
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates the orchestrator.
func NewCreateOrderCommandHandler(deps CreateOrderDependencies) CreateOrderCommandHandler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory: deps.UoWFactory,
		validator:  deps.Validator,
		pickups:    deps.Pickups,
		zones:      deps.Zones,
		publisher:  deps.Publisher,
		recorder:   deps.Recorder,
		calculator: services.NewOrderCalculator(),
		sanitizer:  services.NewTextSanitizer(),
		timeouts:   deps.Timeouts,
		now:        now,
		logger:     deps.Logger.With("component", "create_order_handler"),
	}
}

// Handle runs the pipeline. On failure the returned error is always a
// *CreateOrderError.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, newInternalError("create order command is invalid", err)
	}

	started := h.now()
	logger := h.logger.With("merchant_id", cmd.MerchantID(), "order_id", cmd.Draft().OrderID)
	machine := newStateMachine(logger)

	result, intakeErr := h.run(ctx, cmd, machine, logger)

	if h.recorder != nil {
		h.recorder.RecordIntake(string(machine.state()), h.now().Sub(started))
	}
	if intakeErr != nil {
		if intakeErr.Code == CodeInternalError {
			logger.ErrorContext(ctx, "order intake failed", "state", machine.state(), "error", intakeErr)
		} else {
			logger.InfoContext(ctx, "order intake rejected", "state", machine.state(), "code", intakeErr.Code)
		}
		return CreateOrderResult{}, intakeErr
	}
	return result, nil
}

func (h *CreateOrderCommandHandler) run(
	ctx context.Context,
	cmd CreateOrderCommand,
	machine *stateMachine,
	logger *slog.Logger,
) (CreateOrderResult, *CreateOrderError) {
	draft := cmd.Draft()
	merchantID := cmd.MerchantID()

	// 1. validation
	outcome, err := h.validator.Validate(ctx, merchantID, draft)
	if err != nil {
		machine.moveTo(ctx, StateInternalError)
		return CreateOrderResult{}, newInternalError("validation lookups failed", err)
	}
	if !outcome.IsValid {
		machine.moveTo(ctx, StateValidationFailed)
		return CreateOrderResult{}, newValidationError(outcome)
	}
	if outcome.Duplicate != nil {
		machine.moveTo(ctx, StateDuplicateConflict)
		return CreateOrderResult{}, newDuplicateError(outcome.Duplicate)
	}
	warnings := append([]string(nil), outcome.Warnings...)
	machine.moveTo(ctx, StateValidated)

	// 2. pickup location, read again
	location, err := h.pickups.GetActiveLocation(ctx, merchantID, draft.PickupLocationCode)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, pickup.ErrLocationInactive) {
			machine.moveTo(ctx, StatePickupInvalid)
			return CreateOrderResult{}, newPickupInvalidError(draft.PickupLocationCode, err)
		}
		machine.moveTo(ctx, StateInternalError)
		return CreateOrderResult{}, newInternalError("pickup location lookup failed", err)
	}
	machine.moveTo(ctx, StatePickupLocationConfirmed)

	// 3. zone
	destination := strings.TrimSpace(draft.Consignee.Pincode)
	zone, err := h.resolveZone(ctx, location.Pincode(), destination)
	switch {
	case errors.Is(err, ports.ErrZoneUnresolved):
		machine.moveTo(ctx, StateZoneUnresolved)
		return CreateOrderResult{}, newZoneError(location.Pincode(), destination, err)
	case err != nil:
		machine.moveTo(ctx, StateInternalError)
		return CreateOrderResult{}, newInternalError("zone resolution failed", err)
	}
	machine.moveTo(ctx, StateZoneResolved)

	// 4. calculation
	calc := h.calculator.Calculate(draft)
	machine.moveTo(ctx, StateCalculated)

	// 5. COD against total
	if requested, exceeds := h.calculator.RequestedCODExceedsTotal(draft, calc); exceeds {
		machine.moveTo(ctx, StateCODExceedsTotal)
		return CreateOrderResult{}, newCODExceedsTotalError(requested.String(), calc.TotalAmount.String())
	}
	machine.moveTo(ctx, StateCODCapped)

	// 6. blank products
	named, dropped := draft.NamedProducts()
	for _, idx := range dropped {
		warnings = append(warnings, fmt.Sprintf("products[%d] was dropped because its name is blank", idx))
	}
	if len(named) == 0 {
		machine.moveTo(ctx, StateNoValidProducts)
		return CreateOrderResult{}, newNoValidProductsError(warnings)
	}
	draft.Products = named
	machine.moveTo(ctx, StateProductsFiltered)

	// 7. sanitization
	clean, truncations := h.sanitizer.SanitizeDraft(draft)
	warnings = append(warnings, truncations...)

	aggregate, err := h.buildOrder(cmd, clean, location, zone, calc)
	if err != nil {
		machine.moveTo(ctx, StateInternalError)
		return CreateOrderResult{}, newInternalError("order could not be assembled", err)
	}

	// 8. persistence
	existing, err := h.persist(ctx, aggregate)
	if err != nil {
		machine.moveTo(ctx, StateInternalError)
		return CreateOrderResult{}, newInternalError("order could not be persisted", err)
	}
	if existing != nil {
		machine.moveTo(ctx, StateDuplicateConflict)
		return CreateOrderResult{}, newDuplicateError(existing)
	}
	machine.moveTo(ctx, StatePersisted)

	// 9. event and result
	h.publishCreated(ctx, aggregate, logger)
	machine.moveTo(ctx, StateSuccess)

	return CreateOrderResult{
		InternalID: aggregate.InternalID(),
		OrderID:    aggregate.OrderID(),
		Zone:       aggregate.Zone(),
		Warnings:   warnings,
	}, nil
}

func (h *CreateOrderCommandHandler) resolveZone(ctx context.Context, origin, destination string) (string, error) {
	if h.timeouts.Zone > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeouts.Zone)
		defer cancel()
	}

	zone, err := h.zones.Resolve(ctx, origin, destination)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(zone) == "" {
		return "", ports.ErrZoneUnresolved
	}
	return zone, nil
}

func (h *CreateOrderCommandHandler) buildOrder(
	cmd CreateOrderCommand,
	draft order.Draft,
	location *pickup.Location,
	zone string,
	calc services.OrderCalculations,
) (*order.Order, error) {
	mode, err := order.ParsePaymentMode(draft.PaymentMode)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(draft.Products))
	for _, p := range draft.Products {
		item, itemErr := order.NewLineItem(p.Name, p.SKU, p.HSNCode, p.Quantity, p.UnitPrice.Decimal)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	channel := draft.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	return order.NewOrder(order.Params{
		OrderID:                draft.OrderID,
		MerchantID:             cmd.MerchantID(),
		Channel:                channel,
		OrderDate:              draft.OrderDate,
		Consignee:              draft.Consignee,
		Billing:                draft.EffectiveBilling(),
		BillingSameAsConsignee: draft.BillingSameAsConsignee,
		PickupLocationCode:     location.Code(),
		PickupPincode:          location.Pincode(),
		Zone:                   zone,
		PaymentMode:            mode,
		Charges:                draft.Charges,
		Amounts:                calc.Amounts(),
		Parcel: order.Parcel{
			DeadWeight:       draft.Package.Weight.Decimal,
			Length:           draft.Package.Length.Decimal,
			Breadth:          draft.Package.Breadth.Decimal,
			Height:           draft.Package.Height.Decimal,
			VolumetricWeight: calc.VolumetricWeight,
			ApplicableWeight: calc.ApplicableWeight,
		},
		LineItems: items,
		Actor:     cmd.Actor(),
		CreatedAt: h.now().UTC(),
	})
}

// persist writes the aggregate in one unit of work. It returns the existing
// order when the unique index reports a conflict.
func (h *CreateOrderCommandHandler) persist(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if h.timeouts.Persist > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeouts.Persist)
		defer cancel()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	result, err := repo.Add(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	if result.Outcome == ports.AddOutcomeConflict {
		existing, findErr := repo.FindByOrderID(ctx, aggregate.MerchantID(), aggregate.OrderID())
		if findErr != nil {
			return nil, fmt.Errorf("re-read conflicting order: %w", findErr)
		}
		return existing, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *CreateOrderCommandHandler) publishCreated(ctx context.Context, o *order.Order, logger *slog.Logger) {
	if h.publisher == nil {
		return
	}

	var eventID string
	if trail := o.AuditTrail(); len(trail) > 0 {
		eventID = trail[0].ID().String()
	}

	amounts := o.Amounts()
	event := ports.OrderCreatedEvent{
		EventID:      eventID,
		InternalID:   o.InternalID(),
		OrderID:      o.OrderID(),
		MerchantID:   o.MerchantID(),
		Zone:         o.Zone(),
		PaymentMode:  o.PaymentMode().String(),
		TotalAmount:  amounts.TotalAmount.StringFixed(2),
		CODToCollect: amounts.CODToCollect.StringFixed(2),
		Channel:      o.Channel(),
		CreatedAt:    o.CreatedAt(),
	}

	if err := h.publisher.PublishOrderCreated(ctx, event); err != nil {
		logger.WarnContext(ctx, "order.created event not published", "error", err)
	}
}
