package validation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"orderintake/internal/core/domain/model/kernel"
	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/core/domain/model/pincode"
	"orderintake/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

type bounds struct {
	min, max decimal.Decimal
	places   int32
}

var (
	weightBounds = bounds{
		min:    decimal.RequireFromString("0.001"),
		max:    decimal.NewFromInt(100),
		places: kernel.WeightPlaces,
	}
	dimensionBounds = bounds{
		min:    decimal.RequireFromString("0.1"),
		max:    decimal.NewFromInt(300),
		places: kernel.DimensionPlaces,
	}
	maxTaxPercent = decimal.NewFromInt(100)
)

const maxQuantity = math.MaxInt32

func (b bounds) contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(b.min) && v.LessThanOrEqual(b.max)
}

// checkAddress applies the address rules. Serviceability is only looked up
// for the delivery address.
func (e *Engine) checkAddress(ctx context.Context, out *Outcome, prefix string, a order.Address, delivery bool) error {
	field := func(name string) string { return prefix + "." + name }

	required := []struct{ name, value string }{
		{"name", a.Name},
		{"phone", a.Phone},
		{"address_line1", a.AddressLine1},
		{"pincode", a.Pincode},
		{"city", a.City},
		{"state", a.State},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			out.addError(field(r.name), CodeRequired, field(r.name)+" is required")
		}
	}

	checkPhone(out, field("phone"), a.Phone)
	checkPhone(out, field("alt_phone"), a.AltPhone)

	if email := strings.TrimSpace(a.Email); email != "" {
		if err := e.validate.Var(email, "email"); err != nil {
			out.addError(field("email"), CodeInvalidEmail, fmt.Sprintf("%q is not a valid email address", email))
		}
	}

	if gstin := strings.ToUpper(strings.TrimSpace(a.GSTIN)); gstin != "" && !gstinPattern.MatchString(gstin) {
		out.addError(field("gstin"), CodeInvalidGSTIN, fmt.Sprintf("%q is not a valid 15 character GSTIN", gstin))
	}

	code := strings.TrimSpace(a.Pincode)
	if code == "" {
		return nil
	}
	if err := pincode.CheckFormat(code); err != nil {
		if errors.Is(err, pincode.ErrNotNumeric) {
			out.addError(field("pincode"), CodePincodeNotNumeric, "pincode must contain digits only")
		} else {
			out.addError(field("pincode"), CodePincodeInvalidLength,
				fmt.Sprintf("pincode must be exactly 6 digits, got %d", len(code)))
		}
		return nil
	}
	if !delivery {
		return nil
	}

	serviceable, err := e.pincodes.IsServiceable(ctx, code)
	if err != nil {
		return fmt.Errorf("pincode serviceability: %w", err)
	}
	if !serviceable {
		out.addError(field("pincode"), CodePincodeNotServiceable, fmt.Sprintf("pincode %s is not serviceable", code))
	}
	return nil
}

func checkPhone(out *Outcome, field, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	if !services.IsValidMobile(services.NormalizePhone(raw)) {
		out.addError(field, CodeInvalidPhone, "phone must be a 10 digit mobile number starting with 6-9")
	}
}

func (e *Engine) checkPackage(out *Outcome, p order.Package) {
	checkMeasure(out, "package.weight", p.Weight, weightBounds, "kg")
	checkMeasure(out, "package.length", p.Length, dimensionBounds, "cm")
	checkMeasure(out, "package.breadth", p.Breadth, dimensionBounds, "cm")
	checkMeasure(out, "package.height", p.Height, dimensionBounds, "cm")
}

func checkMeasure(out *Outcome, field string, v decimal.NullDecimal, b bounds, unit string) {
	if !v.Valid {
		out.addError(field, CodeRequired, field+" is required")
		return
	}
	if !b.contains(v.Decimal) {
		out.addError(field, CodeOutOfRange,
			fmt.Sprintf("%s must be between %s and %s %s, got %s", field, b.min, b.max, unit, v.Decimal))
		return
	}
	checkScale(out, field, v.Decimal, b.places)
}

// checkScale rejects values finer than their storage column, which would
// otherwise be rounded silently on write and no longer match the computed
// amounts and weights.
func checkScale(out *Outcome, field string, v decimal.Decimal, places int32) {
	if !kernel.FitsScale(v, places) {
		out.addError(field, CodeInvalidFormat,
			fmt.Sprintf("%s allows at most %d decimal places, got %s", field, places, v))
	}
}

func (e *Engine) checkCharges(out *Outcome, draft order.Draft) {
	c := draft.Charges
	amounts := []struct {
		field string
		value decimal.NullDecimal
	}{
		{"charges.shipping", c.Shipping},
		{"charges.cod_charge", c.CODCharge},
		{"charges.gift_wrap", c.GiftWrap},
		{"charges.other", c.Other},
		{"charges.discount", c.Discount},
		{"charges.tax_amount", c.TaxAmount},
		{"charges.tax_percentage", c.TaxPercentage},
		{"cod_to_collect", draft.CODToCollect},
	}
	for _, a := range amounts {
		if !a.value.Valid {
			continue
		}
		switch v := a.value.Decimal; {
		case v.IsNegative():
			out.addError(a.field, CodeNegativeAmount, a.field+" must not be negative")
		case v.GreaterThan(kernel.MaxAmount):
			out.addError(a.field, CodeOutOfRange,
				fmt.Sprintf("%s must not exceed %s, got %s", a.field, kernel.MaxAmount, v))
		default:
			checkScale(out, a.field, v, kernel.MoneyPlaces)
		}
	}

	if c.TaxPercentage.Valid && c.TaxPercentage.Decimal.GreaterThan(maxTaxPercent) {
		out.addError("charges.tax_percentage", CodeOutOfRange, "charges.tax_percentage must not exceed 100")
	}
}

// checkProducts validates named entries only; blank names are dropped later
// by the orchestrator with a warning.
func (e *Engine) checkProducts(out *Outcome, products []order.Product) {
	if len(products) == 0 {
		out.addError("products", CodeRequired, "at least one product is required")
		return
	}

	for i, p := range products {
		if p.IsBlank() {
			continue
		}
		prefix := fmt.Sprintf("products[%d]", i)
		quantityOK := false
		switch {
		case p.Quantity < 1:
			out.addError(prefix+".quantity", CodeInvalidQuantity, fmt.Sprintf("quantity must be at least 1, got %d", p.Quantity))
		case p.Quantity > maxQuantity:
			out.addError(prefix+".quantity", CodeOutOfRange,
				fmt.Sprintf("quantity must not exceed %d, got %d", maxQuantity, p.Quantity))
		default:
			quantityOK = true
		}

		priceOK := false
		switch {
		case !p.UnitPrice.Valid:
			out.addError(prefix+".unit_price", CodeRequired, prefix+".unit_price is required")
		case p.UnitPrice.Decimal.IsNegative():
			out.addError(prefix+".unit_price", CodeInvalidPrice, "unit_price must not be negative")
		case p.UnitPrice.Decimal.GreaterThan(kernel.MaxAmount):
			out.addError(prefix+".unit_price", CodeOutOfRange,
				fmt.Sprintf("unit_price must not exceed %s, got %s", kernel.MaxAmount, p.UnitPrice.Decimal))
		case !kernel.FitsScale(p.UnitPrice.Decimal, kernel.MoneyPlaces):
			checkScale(out, prefix+".unit_price", p.UnitPrice.Decimal, kernel.MoneyPlaces)
		default:
			priceOK = true
		}

		if quantityOK && priceOK {
			total := p.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(p.Quantity)))
			if total.GreaterThan(kernel.MaxTotal) {
				out.addError(prefix, CodeOutOfRange,
					fmt.Sprintf("unit_price * quantity must not exceed %s, got %s", kernel.MaxTotal, total))
			}
		}
	}
}

// checkTotals bounds the computed order amounts. It only runs once the
// inputs are individually valid, so the figures are the ones that would be
// stored.
func (e *Engine) checkTotals(out *Outcome, draft order.Draft) {
	for _, f := range []string{"products", "charges", "cod_to_collect"} {
		if out.hasErrorWithPrefix(f) {
			return
		}
	}
	calc := services.NewOrderCalculator().Calculate(draft)
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"order_value", calc.OrderValue},
		{"charges.tax_amount", calc.TaxAmount},
		{"total_amount", calc.TotalAmount},
	}
	for _, a := range amounts {
		if a.value.Abs().GreaterThan(kernel.MaxTotal) {
			out.addError(a.field, CodeOutOfRange,
				fmt.Sprintf("%s must not exceed %s, got %s", a.field, kernel.MaxTotal, a.value))
		}
	}
}
