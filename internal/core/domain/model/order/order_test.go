package order_test

import (
	"testing"
	"time"

	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validParams(t *testing.T) order.Params {
	t.Helper()

	item, err := order.NewLineItem("Ceramic mug", "MUG-01", "", 2, dec("250"))
	require.NoError(t, err)

	return order.Params{
		OrderID:    "ORD-1001",
		MerchantID: 42,
		Channel:    "api",
		OrderDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Consignee: order.Address{
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
		Amounts: order.Amounts{
			OrderValue:   dec("500"),
			TaxAmount:    decimal.Zero,
			TotalAmount:  dec("500"),
			CODToCollect: dec("500"),
		},
		Parcel: order.Parcel{
			DeadWeight:       dec("0.3"),
			Length:           dec("10"),
			Breadth:          dec("10"),
			Height:           dec("10"),
			VolumetricWeight: dec("0.2"),
			ApplicableWeight: dec("0.3"),
		},
		LineItems: []order.LineItem{item},
		Actor:     "merchant-user-7",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in new status with audit entry", func(t *testing.T) {
		o, err := order.NewOrder(validParams(t))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, order.SubStatusAwaitingShipment, o.SubStatus())
		assert.Equal(t, "ORD-1001", o.OrderID())
		assert.Equal(t, uint64(42), o.MerchantID())
		assert.Equal(t, "D", o.Zone())
		assert.Zero(t, o.InternalID())
		assert.False(t, o.IsLabelGenerated())
		assert.Zero(t, o.CancelCount())
		assert.False(t, o.IsDeleted())

		awb, ok := o.AWBNumber()
		assert.False(t, ok)
		assert.Empty(t, awb)

		trail := o.AuditTrail()
		require.Len(t, trail, 1)
		assert.Equal(t, order.AuditActionCreated, trail[0].Action())
		assert.Equal(t, "merchant-user-7", trail[0].Actor())
		assert.Equal(t, "api", trail[0].Source())
		require.NoError(t, trail[0].ID().Validate())
	})

	t.Run("rejects negative total", func(t *testing.T) {
		params := validParams(t)
		params.PaymentMode = order.PaymentModePrepaid
		params.Amounts.TotalAmount = dec("-1")
		params.Amounts.CODToCollect = decimal.Zero

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "total_amount")
	})

	t.Run("rejects cod above total", func(t *testing.T) {
		params := validParams(t)
		params.Amounts.CODToCollect = dec("700")

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects cod on prepaid order", func(t *testing.T) {
		params := validParams(t)
		params.PaymentMode = order.PaymentModePrepaid

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects inconsistent volumetric weight", func(t *testing.T) {
		params := validParams(t)
		params.Parcel.VolumetricWeight = dec("0.25")

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "volumetric_weight")
	})

	t.Run("rejects dimensions finer than the stored scale", func(t *testing.T) {
		params := validParams(t)
		params.Parcel.Length = dec("12.345")
		params.Parcel.VolumetricWeight = order.VolumetricWeight(params.Parcel.Length, params.Parcel.Breadth, params.Parcel.Height)

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "length")
	})

	t.Run("rejects weight finer than a gram", func(t *testing.T) {
		params := validParams(t)
		params.Parcel.DeadWeight = dec("0.3005")
		params.Parcel.ApplicableWeight = dec("0.301")

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "weight")
	})

	t.Run("rejects applicable weight below dead weight", func(t *testing.T) {
		params := validParams(t)
		params.Parcel.ApplicableWeight = dec("0.2")

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "applicable_weight")
	})

	t.Run("collects every broken invariant", func(t *testing.T) {
		params := validParams(t)
		params.OrderID = ""
		params.MerchantID = 0
		params.Zone = ""
		params.LineItems = nil

		_, err := order.NewOrder(params)
		require.Error(t, err)
		for _, field := range []string{"order_id", "merchant_id", "zone", "line_items"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("rejects negative charges", func(t *testing.T) {
		params := validParams(t)
		params.Charges.Discount = decimal.NewNullDecimal(dec("-5"))

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "discount")
	})

	t.Run("order id longer than 100 characters", func(t *testing.T) {
		params := validParams(t)
		params.OrderID = string(make([]byte, 101))

		_, err := order.NewOrder(params)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_LineItemsAreCopied(t *testing.T) {
	o, err := order.NewOrder(validParams(t))
	require.NoError(t, err)

	items := o.LineItems()
	items[0] = order.LineItem{}

	assert.Equal(t, "Ceramic mug", o.LineItems()[0].Name())
}

func TestOrder_AssignInternalID(t *testing.T) {
	o, err := order.NewOrder(validParams(t))
	require.NoError(t, err)

	require.ErrorIs(t, o.AssignInternalID(0), errs.ErrValueIsRequired)
	require.NoError(t, o.AssignInternalID(17))
	assert.Equal(t, uint64(17), o.InternalID())
	require.ErrorIs(t, o.AssignInternalID(18), order.ErrInternalIDAlreadyAssigned)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores lifecycle state without audit entries", func(t *testing.T) {
		awb := "AWB123456"
		o, err := order.RestoreOrder(9, validParams(t), order.State{
			Status:           order.InTransit,
			SubStatus:        "in_transit",
			IsLabelGenerated: true,
			CancelCount:      1,
			AWBNumber:        &awb,
		})

		require.NoError(t, err)
		assert.Equal(t, uint64(9), o.InternalID())
		assert.Equal(t, order.InTransit, o.Status())
		assert.True(t, o.IsLabelGenerated())
		assert.Equal(t, 1, o.CancelCount())
		assert.Empty(t, o.AuditTrail())

		got, ok := o.AWBNumber()
		assert.True(t, ok)
		assert.Equal(t, awb, got)
	})

	t.Run("requires internal id", func(t *testing.T) {
		_, err := order.RestoreOrder(0, validParams(t), order.State{Status: order.New})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(1, validParams(t), order.State{Status: "lost"})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
