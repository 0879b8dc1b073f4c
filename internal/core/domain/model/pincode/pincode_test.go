package pincode_test

import (
	"testing"

	"orderintake/internal/core/domain/model/pincode"
	"orderintake/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr error
	}{
		{"110001", nil},
		{" 560001 ", nil},
		{"12345", pincode.ErrInvalidLength},
		{"1234567", pincode.ErrInvalidLength},
		{"", pincode.ErrInvalidLength},
		{"12a456", pincode.ErrNotNumeric},
		{"12345a", pincode.ErrNotNumeric},
		{"१२३४५६", pincode.ErrNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := pincode.CheckFormat(tt.raw)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPincode(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		couriers := []string{"bluedart", "delhivery"}
		p, err := pincode.NewPincode(pincode.Params{
			Code: "400001", City: "Mumbai", State: "Maharashtra",
			IsMetro: true, IsServiceable: true, Couriers: couriers,
		})
		require.NoError(t, err)

		couriers[0] = "changed"
		assert.Equal(t, []string{"bluedart", "delhivery"}, p.Couriers())
		assert.True(t, p.IsMetro())
		assert.True(t, p.IsServiceable())
	})

	t.Run("invalid code", func(t *testing.T) {
		_, err := pincode.NewPincode(pincode.Params{Code: "4000"})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPincode_SameCityAndState(t *testing.T) {
	mumbai, _ := pincode.NewPincode(pincode.Params{Code: "400001", City: "Mumbai", State: "Maharashtra"})
	mumbai2, _ := pincode.NewPincode(pincode.Params{Code: "400050", City: "mumbai ", State: "MAHARASHTRA"})
	pune, _ := pincode.NewPincode(pincode.Params{Code: "411001", City: "Pune", State: "Maharashtra"})
	delhi, _ := pincode.NewPincode(pincode.Params{Code: "110001", City: "New Delhi", State: "Delhi"})

	assert.True(t, mumbai.SameCity(mumbai2))
	assert.False(t, mumbai.SameCity(pune))
	assert.True(t, mumbai.SameState(pune))
	assert.False(t, mumbai.SameState(delhi))
}
