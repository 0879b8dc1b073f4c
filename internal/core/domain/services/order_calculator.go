package services

import (
	"orderintake/internal/core/domain/model/kernel"
	"orderintake/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// OrderCalculations are the monetary and weight values derived from a draft.
// Money carries two decimals, weight three. They are merged into the Order,
// never stored on their own.
type OrderCalculations struct {
	OrderValue       decimal.Decimal
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	CODToCollect     decimal.Decimal
	VolumetricWeight decimal.Decimal
	ApplicableWeight decimal.Decimal
}

// Amounts projects the monetary part onto the aggregate type.
func (c OrderCalculations) Amounts() order.Amounts {
	return order.Amounts{
		OrderValue:   c.OrderValue,
		TaxAmount:    c.TaxAmount,
		TotalAmount:  c.TotalAmount,
		CODToCollect: c.CODToCollect,
	}
}

// OrderCalculator is a pure domain service converting raw draft fields into
// totals and weights. It performs no I/O and never uses binary floating point;
// every rounding is half-up on fixed-point decimals.
//
// Business rules:
//   - order_value = Σ unit_price × quantity over named products
//   - tax_amount = (order_value + charges − discount) × pct / 100 when a
//     percentage is supplied, otherwise the flat tax amount
//   - total_amount = order_value + charges − discount + tax, floored at 0
//   - cod_to_collect = 0 for prepaid; for COD the positive custom amount or
//     the total, capped at the total
//   - volumetric_weight = L × B × H / 5000
//   - applicable_weight = max(weight, volumetric_weight)
//
// Example:
//
//	calc := services.NewOrderCalculator()
//	result := calc.Calculate(draft)
//	fmt.Println(result.TotalAmount, result.ApplicableWeight)
type OrderCalculator struct{}

// NewOrderCalculator creates a new OrderCalculator instance.
func NewOrderCalculator() OrderCalculator {
	return OrderCalculator{}
}

// Calculate derives all values for the draft. Missing numbers count as zero.
func (OrderCalculator) Calculate(draft order.Draft) OrderCalculations {
	orderValue := decimal.Zero
	for _, p := range draft.Products {
		if p.IsBlank() {
			continue
		}
		price := kernel.ValueOrZero(p.UnitPrice)
		orderValue = orderValue.Add(price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	orderValue = kernel.RoundMoney(orderValue)

	charges := draft.Charges
	extras := kernel.ValueOrZero(charges.Shipping).
		Add(kernel.ValueOrZero(charges.CODCharge)).
		Add(kernel.ValueOrZero(charges.GiftWrap)).
		Add(kernel.ValueOrZero(charges.Other))
	discount := kernel.ValueOrZero(charges.Discount)
	taxable := orderValue.Add(extras).Sub(discount)

	var tax decimal.Decimal
	if charges.TaxPercentage.Valid {
		tax = kernel.NonNegative(kernel.RoundMoney(taxable.Mul(charges.TaxPercentage.Decimal).Div(hundred)))
	} else {
		tax = kernel.ValueOrZero(charges.TaxAmount)
	}

	total := kernel.NonNegative(kernel.RoundMoney(taxable.Add(tax)))

	cod := decimal.Zero
	if mode, err := order.ParsePaymentMode(draft.PaymentMode); err == nil && mode.IsCOD() {
		cod = total
		if custom := draft.CODToCollect; custom.Valid && custom.Decimal.IsPositive() {
			cod = kernel.RoundMoney(custom.Decimal)
		}
		cod = decimal.Min(cod, total)
	}

	pkg := draft.Package
	volumetric := order.VolumetricWeight(
		kernel.ValueOrZero(pkg.Length),
		kernel.ValueOrZero(pkg.Breadth),
		kernel.ValueOrZero(pkg.Height),
	)

	return OrderCalculations{
		OrderValue:       orderValue,
		TaxAmount:        tax,
		TotalAmount:      total,
		CODToCollect:     cod,
		VolumetricWeight: volumetric,
		ApplicableWeight: order.ApplicableWeight(kernel.ValueOrZero(pkg.Weight), volumetric),
	}
}

// RequestedCODExceedsTotal reports whether a COD draft asks to collect more
// than the computed total, returning the requested amount.
// Calculate itself caps the collected amount, so this check has to look at
// the raw draft.
func (OrderCalculator) RequestedCODExceedsTotal(draft order.Draft, calc OrderCalculations) (decimal.Decimal, bool) {
	mode, err := order.ParsePaymentMode(draft.PaymentMode)
	if err != nil || !mode.IsCOD() || !draft.CODToCollect.Valid {
		return decimal.Zero, false
	}
	requested := draft.CODToCollect.Decimal
	return requested, requested.GreaterThan(calc.TotalAmount)
}
