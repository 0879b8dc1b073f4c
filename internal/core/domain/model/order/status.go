package order

import (
	"fmt"

	"orderintake/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Only New is ever assigned by this service. The remaining states are
// written by downstream lifecycle services and matter here because they
// decide how a duplicate submission is answered:
//
//	New ──┬──> ReadyToShip ──> PickupScheduled ──> InTransit ──┬──> Delivered
//	      │                                                    └──> RTO
//	      └──> Cancelled
//
// New and Cancelled orders are resubmittable; every other state means the
// order has already been processed.
type Status string

const (
	New             Status = "new"
	Cancelled       Status = "cancelled"
	ReadyToShip     Status = "ready_to_ship"
	PickupScheduled Status = "pickup_scheduled"
	InTransit       Status = "in_transit"
	Delivered       Status = "delivered"
	RTO             Status = "rto"
)

// SubStatusAwaitingShipment is the sub-status every freshly created order gets.
const SubStatusAwaitingShipment = "awaiting_shipment"

func knownStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		New:             {},
		Cancelled:       {},
		ReadyToShip:     {},
		PickupScheduled: {},
		InTransit:       {},
		Delivered:       {},
		RTO:             {},
	}
}

// Validate checks that the status is one of the known lifecycle states.
// It is used when restoring orders from persistence.
func (s Status) Validate() error {
	if _, ok := knownStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// IsResubmittable reports whether a duplicate submission for an order in this
// state may be treated as a retry by the caller.
//
// Example:
//
//	if existing.Status().IsResubmittable() {
//	    // answer DUPLICATE_ORDER
//	} else {
//	    // answer ORDER_ALREADY_PROCESSED with the AWB number
//	}
func (s Status) IsResubmittable() bool {
	return s == New || s == Cancelled
}

func (s Status) String() string {
	return string(s)
}
