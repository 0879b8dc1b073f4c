package order

import (
	"errors"
	"fmt"
	"strings"

	"orderintake/internal/core/domain/model/kernel"
	"orderintake/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is a product row owned by exactly one Order. Line items are
// created together with their order and never on their own.
type LineItem struct {
	id        uint64
	name      string
	sku       string
	hsnCode   string
	quantity  int
	unitPrice decimal.Decimal
}

// NewLineItem validates a named product with quantity ≥ 1 and a
// non-negative unit price. The price is rounded to two decimals.
func NewLineItem(name, sku, hsnCode string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	item := LineItem{
		sku:     sku,
		hsnCode: hsnCode,
	}

	if err := errors.Join(
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// RestoreLineItem rebuilds a persisted line item with its storage key.
func RestoreLineItem(id uint64, name, sku, hsnCode string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	item, err := NewLineItem(name, sku, hsnCode, quantity, unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	item.id = id
	return item, nil
}

// ID returns the storage key, zero until persisted.
func (li LineItem) ID() uint64 { return li.id }

// Name returns the product name.
func (li LineItem) Name() string { return li.name }

// SKU returns the merchant stock keeping unit, possibly empty.
func (li LineItem) SKU() string { return li.sku }

// HSNCode returns the harmonised tax classification code, possibly empty.
func (li LineItem) HSNCode() string { return li.hsnCode }

// Quantity returns the number of units.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the price of one unit.
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }

// Total returns unit price × quantity rounded to two decimals.
func (li LineItem) Total() decimal.Decimal {
	return kernel.RoundMoney(li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity))))
}

func (li *LineItem) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product.name")
	}
	li.name = name
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("product.quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("product.unit_price", fmt.Errorf("%s is negative", unitPrice))
	}
	if !kernel.FitsScale(unitPrice, kernel.MoneyPlaces) {
		return errs.NewValueIsInvalidErrorWithCause("product.unit_price",
			fmt.Errorf("%s has more than %d decimals", unitPrice, kernel.MoneyPlaces))
	}
	if unitPrice.GreaterThan(kernel.MaxAmount) {
		return errs.NewValueIsOutOfRangeError("product.unit_price", unitPrice, 0, kernel.MaxAmount)
	}
	li.unitPrice = unitPrice
	return nil
}
