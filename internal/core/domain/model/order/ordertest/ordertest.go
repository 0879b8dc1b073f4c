// Package ordertest builds valid orders for tests of other packages.
package ordertest

import (
	"testing"
	"time"

	"orderintake/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Params returns a consistent COD order of two mugs worth 500.00.
func Params(t testing.TB, orderID string, merchantID uint64) order.Params {
	t.Helper()

	mug, err := order.NewLineItem("Ceramic mug", "MUG-01", "6912", 2, decimal.RequireFromString("200"))
	require.NoError(t, err)
	coaster, err := order.NewLineItem("Cork coaster", "CST-02", "", 4, decimal.RequireFromString("25"))
	require.NoError(t, err)

	return order.Params{
		OrderID:    orderID,
		MerchantID: merchantID,
		Channel:    "api",
		OrderDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Consignee: order.Address{
			Name:         "Asha Rao",
			Phone:        "9876543210",
			Email:        "asha@example.com",
			AddressLine1: "12 MG Road",
			Landmark:     "Near metro",
			Pincode:      "560001",
			City:         "Bengaluru",
			State:        "Karnataka",
			Country:      "India",
		},
		Billing: order.Address{
			Name:         "Asha Rao",
			Phone:        "9876543210",
			AddressLine1: "12 MG Road",
			Pincode:      "560001",
			City:         "Bengaluru",
			State:        "Karnataka",
		},
		BillingSameAsConsignee: true,
		PickupLocationCode:     "WH-01",
		PickupPincode:          "110001",
		Zone:                   "D",
		PaymentMode:            order.PaymentModeCOD,
		Charges: order.Charges{
			Shipping: decimal.NewNullDecimal(decimal.RequireFromString("40")),
			Discount: decimal.NewNullDecimal(decimal.RequireFromString("40")),
		},
		Amounts: order.Amounts{
			OrderValue:   decimal.RequireFromString("500"),
			TaxAmount:    decimal.Zero,
			TotalAmount:  decimal.RequireFromString("500"),
			CODToCollect: decimal.RequireFromString("500"),
		},
		Parcel: order.Parcel{
			DeadWeight:       decimal.RequireFromString("0.3"),
			Length:           decimal.NewFromInt(10),
			Breadth:          decimal.NewFromInt(10),
			Height:           decimal.NewFromInt(10),
			VolumetricWeight: decimal.RequireFromString("0.2"),
			ApplicableWeight: decimal.RequireFromString("0.3"),
		},
		LineItems: []order.LineItem{mug, coaster},
		Actor:     "ops@merchant",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// New returns a new, not yet persisted order.
func New(t testing.TB, orderID string, merchantID uint64) *order.Order {
	t.Helper()

	o, err := order.NewOrder(Params(t, orderID, merchantID))
	require.NoError(t, err)
	return o
}
