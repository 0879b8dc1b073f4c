package kernel

import "github.com/shopspring/decimal"

const (
	// MoneyPlaces is the number of fractional digits kept for currency amounts.
	MoneyPlaces int32 = 2

	// WeightPlaces is the number of fractional digits kept for masses in kilograms.
	WeightPlaces int32 = 3
)

// RoundMoney rounds a currency amount half-up to two decimal places.
// Ties round away from zero, so 0.125 becomes 0.13 and -0.125 becomes -0.13.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundWeight rounds a mass half-up to three decimal places.
func RoundWeight(d decimal.Decimal) decimal.Decimal {
	return d.Round(WeightPlaces)
}

// NonNegative clamps negative amounts to exactly zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ValueOrZero unwraps an optional decimal, treating absence as zero.
func ValueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// DimensionPlaces is the number of fractional digits kept for parcel
// dimensions in centimetres.
const DimensionPlaces int32 = 2

var (
	// MaxAmount is the largest single price or charge that can be stored.
	MaxAmount = decimal.RequireFromString("9999999999.99")

	// MaxTotal is the largest line, order or payable total that can be stored.
	MaxTotal = decimal.RequireFromString("999999999999.99")
)

// FitsScale reports whether d has no more than places fractional digits,
// ignoring trailing zeros.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
