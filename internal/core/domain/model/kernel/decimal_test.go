package kernel_test

import (
	"testing"

	"orderintake/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0.125", "0.13"},
		{"0.124", "0.12"},
		{"-0.125", "-0.13"},
		{"100", "100"},
		{"19.995", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := kernel.RoundMoney(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), got.String())
		})
	}
}

func TestRoundWeight(t *testing.T) {
	got := kernel.RoundWeight(decimal.RequireFromString("7.3855"))
	assert.True(t, got.Equal(decimal.RequireFromString("7.386")), got.String())
}

func TestNonNegative(t *testing.T) {
	assert.True(t, kernel.NonNegative(decimal.NewFromInt(-50)).IsZero())
	assert.True(t, kernel.NonNegative(decimal.NewFromInt(50)).Equal(decimal.NewFromInt(50)))
}

func TestValueOrZero(t *testing.T) {
	assert.True(t, kernel.ValueOrZero(decimal.NullDecimal{}).IsZero())
	assert.True(t, kernel.ValueOrZero(decimal.NewNullDecimal(decimal.NewFromInt(3))).Equal(decimal.NewFromInt(3)))
}

func TestFitsScale(t *testing.T) {
	tests := []struct {
		in     string
		places int32
		want   bool
	}{
		{"12.34", 2, true},
		{"12.3400", 2, true},
		{"12", 2, true},
		{"12.345", 2, false},
		{"0.001", 3, true},
		{"0.0005", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, kernel.FitsScale(decimal.RequireFromString(tt.in), tt.places))
		})
	}
}
