package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Draft is the untrusted order submission as received from a merchant,
// a marketplace webhook or a bulk import. It lives for a single request and
// is never mutated by validation.
//
// Numeric inputs use decimal.NullDecimal so that an absent value is
// distinguishable from an explicit zero.
//
// Example:
//
//	draft := order.Draft{
//	    OrderID:            "ORD-1001",
//	    OrderDate:          time.Now(),
//	    Consignee:          order.Address{Name: "Asha", Phone: "9876543210", ...},
//	    BillingSameAsConsignee: true,
//	    PickupLocationCode: "WH-DEL-01",
//	    PaymentMode:        "cod",
//	    Products:           []order.Product{{Name: "Mug", Quantity: 2, UnitPrice: price}},
//	    Package:            order.Package{Weight: w, Length: l, Breadth: b, Height: h},
//	}
type Draft struct {
	OrderID   string
	OrderDate time.Time
	Channel   string

	Consignee              Address
	Billing                *Address
	BillingSameAsConsignee bool

	PickupLocationCode string
	PaymentMode        string

	Products []Product
	Package  Package
	Charges  Charges

	// CODToCollect is an optional partial amount for cash-on-delivery orders.
	CODToCollect decimal.NullDecimal
}

// Address is a consignee or billing block.
type Address struct {
	Name         string
	Phone        string
	AltPhone     string
	Email        string
	AddressLine1 string
	AddressLine2 string
	Landmark     string
	Pincode      string
	City         string
	State        string
	Country      string
	CompanyName  string
	GSTIN        string
}

// Product is a single submitted product entry.
type Product struct {
	Name      string
	SKU       string
	HSNCode   string
	Quantity  int
	UnitPrice decimal.NullDecimal
}

// IsBlank reports whether the product has no usable name. Blank entries are
// dropped before persistence and never contribute to totals.
func (p Product) IsBlank() bool {
	return strings.TrimSpace(p.Name) == ""
}

// Package holds the declared dead weight (kg) and dimensions (cm).
type Package struct {
	Weight  decimal.NullDecimal
	Length  decimal.NullDecimal
	Breadth decimal.NullDecimal
	Height  decimal.NullDecimal
}

// Charges are the optional caller supplied monetary adjustments.
// TaxPercentage takes precedence over TaxAmount when both are present.
type Charges struct {
	Shipping      decimal.NullDecimal
	CODCharge     decimal.NullDecimal
	GiftWrap      decimal.NullDecimal
	Other         decimal.NullDecimal
	Discount      decimal.NullDecimal
	TaxAmount     decimal.NullDecimal
	TaxPercentage decimal.NullDecimal
}

// EffectiveBilling returns the billing block that applies to the draft:
// the consignee when billing is declared identical or missing.
func (d Draft) EffectiveBilling() Address {
	if d.BillingSameAsConsignee || d.Billing == nil {
		return d.Consignee
	}
	return *d.Billing
}

// NamedProducts splits the product list into entries with a usable name and
// the positions (zero based) of the blank ones.
func (d Draft) NamedProducts() ([]Product, []int) {
	named := make([]Product, 0, len(d.Products))
	var dropped []int
	for i, p := range d.Products {
		if p.IsBlank() {
			dropped = append(dropped, i)
			continue
		}
		named = append(named, p)
	}
	return named, dropped
}
