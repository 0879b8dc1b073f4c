package commands

import (
	"context"
	"log/slog"
)

// IntakeState is a step of the creation state machine. The machine is
// linear; any failed gate jumps straight to a terminal failure state.
//
//	RECEIVED → VALIDATED → PICKUP_LOCATION_CONFIRMED → ZONE_RESOLVED →
//	CALCULATED → COD_CAPPED → PRODUCTS_FILTERED → PERSISTED → SUCCESS
type IntakeState string

const (
	StateReceived                IntakeState = "RECEIVED"
	StateValidated               IntakeState = "VALIDATED"
	StatePickupLocationConfirmed IntakeState = "PICKUP_LOCATION_CONFIRMED"
	StateZoneResolved            IntakeState = "ZONE_RESOLVED"
	StateCalculated              IntakeState = "CALCULATED"
	StateCODCapped               IntakeState = "COD_CAPPED"
	StateProductsFiltered        IntakeState = "PRODUCTS_FILTERED"
	StatePersisted               IntakeState = "PERSISTED"
	StateSuccess                 IntakeState = "SUCCESS"

	StateValidationFailed  IntakeState = "VALIDATION_FAILED"
	StatePickupInvalid     IntakeState = "PICKUP_INVALID"
	StateZoneUnresolved    IntakeState = "ZONE_UNRESOLVED"
	StateCODExceedsTotal   IntakeState = "COD_EXCEEDS_TOTAL"
	StateNoValidProducts   IntakeState = "NO_VALID_PRODUCTS"
	StateDuplicateConflict IntakeState = "DUPLICATE_CONFLICT"
	StateInternalError     IntakeState = "INTERNAL_ERROR"
)

// IsTerminal reports whether no further transition is possible.
func (s IntakeState) IsTerminal() bool {
	switch s {
	case StateSuccess, StateValidationFailed, StatePickupInvalid, StateZoneUnresolved,
		StateCODExceedsTotal, StateNoValidProducts, StateDuplicateConflict, StateInternalError:
		return true
	default:
		return false
	}
}

// stateMachine follows one intake request and logs each transition.
type stateMachine struct {
	current IntakeState
	logger  *slog.Logger
}

func newStateMachine(logger *slog.Logger) *stateMachine {
	return &stateMachine{current: StateReceived, logger: logger}
}

func (m *stateMachine) moveTo(ctx context.Context, next IntakeState) {
	m.logger.DebugContext(ctx, "intake state transition", "from", m.current, "to", next)
	m.current = next
}

func (m *stateMachine) state() IntakeState {
	return m.current
}
