package order

import (
	"orderintake/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// VolumetricDivisor converts cubic centimetres into volumetric kilograms.
const VolumetricDivisor = 5000

// VolumetricWeight returns length × breadth × height / 5000 rounded half-up
// to three decimals.
//
// Example:
//
//	order.VolumetricWeight(ten, ten, ten) // 0.2
func VolumetricWeight(length, breadth, height decimal.Decimal) decimal.Decimal {
	return kernel.RoundWeight(length.Mul(breadth).Mul(height).Div(decimal.NewFromInt(VolumetricDivisor)))
}

// ApplicableWeight returns the greater of the declared and volumetric weight,
// rounded half-up to three decimals. It is what the courier bills against.
func ApplicableWeight(deadWeight, volumetricWeight decimal.Decimal) decimal.Decimal {
	return kernel.RoundWeight(decimal.Max(deadWeight, volumetricWeight))
}
