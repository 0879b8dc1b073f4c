package queries_test

import (
	"testing"

	"orderintake/internal/core/application/usecases/queries"
	"orderintake/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(42, " ORD-1 ")

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, uint64(42), query.MerchantID())
		assert.Equal(t, "ORD-1", query.OrderID())
	})

	t.Run("missing identifiers", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(0, "  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "merchant_id")
		assert.Contains(t, err.Error(), "order_id")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}
