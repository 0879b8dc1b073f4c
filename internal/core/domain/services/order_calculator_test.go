package services_test

import (
	"testing"

	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "want %s, got %s", want, got)
}

func baseDraft() order.Draft {
	return order.Draft{
		PaymentMode: "prepaid",
		Products: []order.Product{
			{Name: "Mug", Quantity: 1, UnitPrice: nd("100")},
		},
		Package: order.Package{
			Weight:  nd("0.3"),
			Length:  nd("10"),
			Breadth: nd("10"),
			Height:  nd("10"),
		},
	}
}

func TestOrderCalculator_Weights(t *testing.T) {
	calc := services.NewOrderCalculator()

	t.Run("declared weight wins", func(t *testing.T) {
		result := calc.Calculate(baseDraft())

		assertDecimal(t, "0.2", result.VolumetricWeight)
		assertDecimal(t, "0.3", result.ApplicableWeight)
	})

	t.Run("volumetric weight wins", func(t *testing.T) {
		draft := baseDraft()
		draft.Package.Length = nd("50")
		draft.Package.Breadth = nd("40")
		draft.Package.Height = nd("30")

		result := calc.Calculate(draft)

		assertDecimal(t, "12", result.VolumetricWeight)
		assertDecimal(t, "12", result.ApplicableWeight)
	})

	t.Run("applicable weight is always the maximum", func(t *testing.T) {
		for _, dims := range [][3]string{{"1", "1", "1"}, {"0.1", "0.1", "0.1"}, {"300", "300", "300"}, {"12.5", "7.3", "9.9"}} {
			draft := baseDraft()
			draft.Package.Length = nd(dims[0])
			draft.Package.Breadth = nd(dims[1])
			draft.Package.Height = nd(dims[2])

			result := calc.Calculate(draft)

			expected := d(dims[0]).Mul(d(dims[1])).Mul(d(dims[2])).Div(decimal.NewFromInt(5000)).Round(3)
			assertDecimal(t, expected.String(), result.VolumetricWeight)
			assertDecimal(t, decimal.Max(d("0.3"), expected).Round(3).String(), result.ApplicableWeight)
		}
	})
}

func TestOrderCalculator_Totals(t *testing.T) {
	calc := services.NewOrderCalculator()

	t.Run("discount larger than value clamps total to zero", func(t *testing.T) {
		draft := baseDraft()
		draft.Charges.Discount = nd("150")

		result := calc.Calculate(draft)

		assertDecimal(t, "100", result.OrderValue)
		assertDecimal(t, "0", result.TotalAmount)
		assert.False(t, result.TotalAmount.IsNegative())
	})

	t.Run("charges and percentage tax", func(t *testing.T) {
		draft := baseDraft()
		draft.Products = []order.Product{
			{Name: "Pen", Quantity: 3, UnitPrice: nd("33.335")},
			{Name: "Book", Quantity: 1, UnitPrice: nd("250")},
		}
		draft.Charges = order.Charges{
			Shipping:      nd("40"),
			CODCharge:     nd("25"),
			GiftWrap:      nd("10"),
			Other:         nd("5"),
			Discount:      nd("20"),
			TaxAmount:     nd("999"),
			TaxPercentage: nd("18"),
		}

		result := calc.Calculate(draft)

		// 3 × 33.335 + 250 = 350.005 -> 350.01
		assertDecimal(t, "350.01", result.OrderValue)
		// (350.01 + 80 − 20) × 18 / 100 = 73.8018 -> 73.80
		assertDecimal(t, "73.8", result.TaxAmount)
		assertDecimal(t, "483.81", result.TotalAmount)
	})

	t.Run("flat tax used when no percentage", func(t *testing.T) {
		draft := baseDraft()
		draft.Charges.TaxAmount = nd("12.5")

		result := calc.Calculate(draft)

		assertDecimal(t, "12.5", result.TaxAmount)
		assertDecimal(t, "112.5", result.TotalAmount)
	})

	t.Run("blank products never count", func(t *testing.T) {
		draft := baseDraft()
		draft.Products = append(draft.Products, order.Product{Name: "  ", Quantity: 10, UnitPrice: nd("1000")})

		result := calc.Calculate(draft)

		assertDecimal(t, "100", result.OrderValue)
	})

	t.Run("ties round away from zero", func(t *testing.T) {
		draft := baseDraft()
		draft.Products = []order.Product{{Name: "Clip", Quantity: 1, UnitPrice: nd("0.125")}}

		result := calc.Calculate(draft)

		assertDecimal(t, "0.13", result.OrderValue)
	})
}

func TestOrderCalculator_COD(t *testing.T) {
	calc := services.NewOrderCalculator()

	tests := []struct {
		name   string
		mode   string
		custom decimal.NullDecimal
		want   string
	}{
		{"prepaid collects nothing", "prepaid", nd("50"), "0"},
		{"cod defaults to total", "cod", decimal.NullDecimal{}, "500"},
		{"cod upper case", "COD", decimal.NullDecimal{}, "500"},
		{"partial amount", "cod", nd("200"), "200"},
		{"zero custom falls back to total", "cod", nd("0"), "500"},
		{"custom above total is capped", "cod", nd("700"), "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := baseDraft()
			draft.PaymentMode = tt.mode
			draft.Products[0].UnitPrice = nd("500")
			draft.CODToCollect = tt.custom

			result := calc.Calculate(draft)

			assertDecimal(t, tt.want, result.CODToCollect)
			assert.True(t, result.CODToCollect.LessThanOrEqual(result.TotalAmount))
		})
	}
}

func TestOrderCalculator_RequestedCODExceedsTotal(t *testing.T) {
	calc := services.NewOrderCalculator()

	draft := baseDraft()
	draft.PaymentMode = "cod"
	draft.Products[0].UnitPrice = nd("500")
	draft.CODToCollect = nd("700")

	result := calc.Calculate(draft)
	requested, exceeds := calc.RequestedCODExceedsTotal(draft, result)

	require.True(t, exceeds)
	assertDecimal(t, "700", requested)
	assertDecimal(t, "500", result.TotalAmount)

	draft.CODToCollect = nd("500")
	_, exceeds = calc.RequestedCODExceedsTotal(draft, calc.Calculate(draft))
	assert.False(t, exceeds)

	draft.PaymentMode = "prepaid"
	draft.CODToCollect = nd("700")
	_, exceeds = calc.RequestedCODExceedsTotal(draft, calc.Calculate(draft))
	assert.False(t, exceeds)
}

func TestOrderCalculations_Amounts(t *testing.T) {
	result := services.NewOrderCalculator().Calculate(baseDraft())
	amounts := result.Amounts()

	assert.Equal(t, result.TotalAmount, amounts.TotalAmount)
	assert.Equal(t, result.CODToCollect, amounts.CODToCollect)
}
