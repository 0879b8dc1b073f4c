package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderintake/internal/core/domain/model/kernel"
	"orderintake/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MaxOrderIDLength bounds the merchant supplied order identifier.
	MaxOrderIDLength = 100
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInternalIDAlreadyAssigned is returned when the storage key is set twice.
	ErrInternalIDAlreadyAssigned = errors.New("order internal id is already assigned")
)

// Amounts are the derived monetary values of an order, two decimal places.
type Amounts struct {
	OrderValue   decimal.Decimal
	TaxAmount    decimal.Decimal
	TotalAmount  decimal.Decimal
	CODToCollect decimal.Decimal
}

// Parcel is the physical description of the shipment. Weights are in
// kilograms (three decimals), dimensions in centimetres.
type Parcel struct {
	DeadWeight       decimal.Decimal
	Length           decimal.Decimal
	Breadth          decimal.Decimal
	Height           decimal.Decimal
	VolumetricWeight decimal.Decimal
	ApplicableWeight decimal.Decimal
}

// Params carries everything needed to build an Order. The orchestrator fills
// it from a sanitized Draft, the resolved zone and the computed amounts.
type Params struct {
	OrderID    string
	MerchantID uint64
	Channel    string
	OrderDate  time.Time

	Consignee              Address
	Billing                Address
	BillingSameAsConsignee bool

	PickupLocationCode string
	PickupPincode      string
	Zone               string

	PaymentMode PaymentMode
	Charges     Charges
	Amounts     Amounts
	Parcel      Parcel

	LineItems []LineItem

	Actor     string
	CreatedAt time.Time
}

// State is the lifecycle data owned by downstream services. It is only
// supplied when restoring an order from persistence.
type State struct {
	Status           Status
	SubStatus        string
	IsLabelGenerated bool
	CancelCount      int
	AWBNumber        *string
	DeletedAt        *time.Time
}

// Order is the persisted aggregate root of the intake pipeline.
//
// Order follows these invariants:
//   - (order_id, merchant_id) is unique among non-deleted orders (enforced by storage)
//   - total_amount >= 0
//   - cod_to_collect <= total_amount, and is 0 for prepaid orders
//   - volumetric_weight = length × breadth × height / 5000, rounded half-up to 3 dp
//   - applicable_weight = max(dead_weight, volumetric_weight)
//   - at least one line item
//   - a zone is always known
//
// Orders are never hard deleted; a soft-delete marker is carried instead.
type Order struct {
	internalID uint64
	orderID    string
	merchantID uint64
	channel    string
	orderDate  time.Time

	consignee              Address
	billing                Address
	billingSameAsConsignee bool

	pickupLocationCode string
	pickupPincode      string
	zone               string

	paymentMode PaymentMode
	charges     Charges
	amounts     Amounts
	parcel      Parcel

	lineItems []LineItem

	status           Status
	subStatus        string
	isLabelGenerated bool
	cancelCount      int
	awbNumber        *string
	createdAt        time.Time
	deletedAt        *time.Time

	auditTrail []AuditEntry

	isConstructed bool
}

// NewOrder creates a new Order in status New with sub-status
// awaiting_shipment and records the creation audit entry.
//
// Example:
//
//	o, err := order.NewOrder(order.Params{
//	    OrderID:    "ORD-1001",
//	    MerchantID: 42,
//	    Zone:       "B",
//	    ...
//	})
//	if err != nil {
//	    // one of the aggregate invariants is violated
//	}
func NewOrder(params Params) (*Order, error) {
	o, err := build(params, State{Status: New, SubStatus: SubStatusAwaitingShipment})
	if err != nil {
		return nil, err
	}

	o.auditTrail = []AuditEntry{
		NewAuditEntry(AuditActionCreated, params.Actor, params.Channel, params.CreatedAt),
	}
	return o, nil
}

// RestoreOrder rebuilds an order read from persistence. No audit entry is
// recorded.
func RestoreOrder(internalID uint64, params Params, state State) (*Order, error) {
	if internalID == 0 {
		return nil, errs.NewValueIsRequiredError("internal_id")
	}
	if err := state.Status.Validate(); err != nil {
		return nil, err
	}

	o, err := build(params, state)
	if err != nil {
		return nil, err
	}
	o.internalID = internalID
	return o, nil
}

func build(params Params, state State) (*Order, error) {
	o := &Order{
		merchantID:             params.MerchantID,
		channel:                params.Channel,
		orderDate:              params.OrderDate,
		consignee:              params.Consignee,
		billing:                params.Billing,
		billingSameAsConsignee: params.BillingSameAsConsignee,
		pickupLocationCode:     params.PickupLocationCode,
		pickupPincode:          params.PickupPincode,
		createdAt:              params.CreatedAt,
		status:                 state.Status,
		subStatus:              state.SubStatus,
		isLabelGenerated:       state.IsLabelGenerated,
		cancelCount:            state.CancelCount,
		awbNumber:              state.AWBNumber,
		deletedAt:              state.DeletedAt,
		isConstructed:          true,
	}

	if err := errors.Join(
		o.setOrderID(params.OrderID),
		o.setMerchantID(params.MerchantID),
		o.setZone(params.Zone),
		o.setPaymentMode(params.PaymentMode),
		o.setCharges(params.Charges),
		o.setParcel(params.Parcel),
		o.setAmounts(params.PaymentMode, params.Amounts),
		o.setLineItems(params.LineItems),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignInternalID records the storage key generated on insert.
// It may only be called once on a new order.
func (o *Order) AssignInternalID(id uint64) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("internal_id")
	}
	if o.internalID != 0 {
		return ErrInternalIDAlreadyAssigned
	}
	o.internalID = id
	return nil
}

// InternalID returns the numeric storage key, zero until persisted.
func (o *Order) InternalID() uint64 { return o.internalID }

// OrderID returns the merchant scoped external identifier.
func (o *Order) OrderID() string { return o.orderID }

// MerchantID returns the owning merchant.
func (o *Order) MerchantID() uint64 { return o.merchantID }

// Channel returns the intake source (api, webhook, bulk import).
func (o *Order) Channel() string { return o.channel }

// OrderDate returns the merchant supplied order date.
func (o *Order) OrderDate() time.Time { return o.orderDate }

// Consignee returns the recipient block.
func (o *Order) Consignee() Address { return o.consignee }

// Billing returns the billing block; it equals the consignee when
// BillingSameAsConsignee is true.
func (o *Order) Billing() Address { return o.billing }

// BillingSameAsConsignee reports whether billing mirrors the consignee.
func (o *Order) BillingSameAsConsignee() bool { return o.billingSameAsConsignee }

// PickupLocationCode returns the merchant pickup location reference.
func (o *Order) PickupLocationCode() string { return o.pickupLocationCode }

// PickupPincode returns the origin pincode used for zone resolution.
func (o *Order) PickupPincode() string { return o.pickupPincode }

// Zone returns the pricing zone resolved at creation.
func (o *Order) Zone() string { return o.zone }

// PaymentMode returns cod or prepaid.
func (o *Order) PaymentMode() PaymentMode { return o.paymentMode }

// Charges returns the caller supplied charges as stored.
func (o *Order) Charges() Charges { return o.charges }

// Amounts returns the derived monetary values.
func (o *Order) Amounts() Amounts { return o.amounts }

// Parcel returns weights and dimensions.
func (o *Order) Parcel() Parcel { return o.parcel }

// LineItems returns a copy of the owned line items.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Status returns the lifecycle status.
func (o *Order) Status() Status { return o.status }

// SubStatus returns the finer grained lifecycle marker.
func (o *Order) SubStatus() string { return o.subStatus }

// IsLabelGenerated reports whether a shipping label exists.
func (o *Order) IsLabelGenerated() bool { return o.isLabelGenerated }

// CancelCount returns how many times the order was cancelled.
func (o *Order) CancelCount() int { return o.cancelCount }

// AWBNumber returns the courier tracking number and whether one is assigned.
// It is never inferred: an order without an AWB returns ("", false).
func (o *Order) AWBNumber() (string, bool) {
	if o.awbNumber == nil {
		return "", false
	}
	return *o.awbNumber, true
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// IsDeleted reports whether the order carries the soft-delete marker.
func (o *Order) IsDeleted() bool { return o.deletedAt != nil }

// AuditTrail returns the entries recorded since construction.
func (o *Order) AuditTrail() []AuditEntry {
	entries := make([]AuditEntry, len(o.auditTrail))
	copy(entries, o.auditTrail)
	return entries
}

func (o *Order) setOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.NewValueIsRequiredError("order_id")
	}
	if len(orderID) > MaxOrderIDLength {
		return errs.NewValueIsOutOfRangeError("order_id length", len(orderID), 1, MaxOrderIDLength)
	}
	o.orderID = orderID
	return nil
}

func (o *Order) setMerchantID(merchantID uint64) error {
	if merchantID == 0 {
		return errs.NewValueIsRequiredError("merchant_id")
	}
	o.merchantID = merchantID
	return nil
}

func (o *Order) setZone(zone string) error {
	if strings.TrimSpace(zone) == "" {
		return errs.NewValueIsRequiredError("zone")
	}
	o.zone = zone
	return nil
}

func (o *Order) setPaymentMode(mode PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.paymentMode = mode
	return nil
}

func (o *Order) setCharges(charges Charges) error {
	named := map[string]decimal.NullDecimal{
		"shipping_charges": charges.Shipping,
		"cod_charges":      charges.CODCharge,
		"gift_wrap":        charges.GiftWrap,
		"other_charges":    charges.Other,
		"discount":         charges.Discount,
		"tax_amount":       charges.TaxAmount,
		"tax_percentage":   charges.TaxPercentage,
	}

	var err error
	for name, value := range named {
		if value.Valid && value.Decimal.IsNegative() {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", value.Decimal)))
		}
	}
	if err != nil {
		return err
	}

	o.charges = charges
	return nil
}

func (o *Order) setParcel(parcel Parcel) error {
	if !parcel.DeadWeight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", parcel.DeadWeight))
	}

	if !kernel.FitsScale(parcel.DeadWeight, kernel.WeightPlaces) {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s has more than %d decimals", parcel.DeadWeight, kernel.WeightPlaces))
	}
	// Dimensions are stored with two decimals; a finer value would not
	// reproduce the same volumetric weight when the order is read back.
	dimensions := []struct {
		name  string
		value decimal.Decimal
	}{
		{"length", parcel.Length},
		{"breadth", parcel.Breadth},
		{"height", parcel.Height},
	}
	for _, d := range dimensions {
		if !kernel.FitsScale(d.value, kernel.DimensionPlaces) {
			return errs.NewValueIsInvalidErrorWithCause(d.name,
				fmt.Errorf("%s has more than %d decimals", d.value, kernel.DimensionPlaces))
		}
	}

	volumetric := VolumetricWeight(parcel.Length, parcel.Breadth, parcel.Height)
	if !parcel.VolumetricWeight.Equal(volumetric) {
		return errs.NewValueIsInvalidErrorWithCause("volumetric_weight",
			fmt.Errorf("%s does not match %s", parcel.VolumetricWeight, volumetric))
	}

	applicable := ApplicableWeight(parcel.DeadWeight, volumetric)
	if !parcel.ApplicableWeight.Equal(applicable) {
		return errs.NewValueIsInvalidErrorWithCause("applicable_weight",
			fmt.Errorf("%s does not match %s", parcel.ApplicableWeight, applicable))
	}

	o.parcel = parcel
	return nil
}

func (o *Order) setAmounts(mode PaymentMode, amounts Amounts) error {
	if amounts.TotalAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total_amount", fmt.Errorf("%s is negative", amounts.TotalAmount))
	}
	if amounts.CODToCollect.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cod_to_collect", fmt.Errorf("%s is negative", amounts.CODToCollect))
	}
	if amounts.CODToCollect.GreaterThan(amounts.TotalAmount) {
		return errs.NewValueIsOutOfRangeError("cod_to_collect", amounts.CODToCollect, 0, amounts.TotalAmount)
	}
	if mode == PaymentModePrepaid && !amounts.CODToCollect.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("cod_to_collect", errors.New("prepaid orders collect nothing"))
	}

	o.amounts = amounts
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line_items")
	}
	o.lineItems = make([]LineItem, len(items))
	copy(o.lineItems, items)
	return nil
}
