package errs_test

import (
	"errors"
	"testing"

	"orderintake/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("pickup_location", "WH-01")

		assert.Equal(t, "pickup_location", err.ParamName)
		assert.Equal(t, "WH-01", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: pickup_location WH-01", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("row soft deleted")
		err := errs.NewObjectNotFoundErrorWithCause("order", "ORD-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: order ORD-1 (cause: row soft deleted)", err.Error())
	})

	t.Run("numeric identifiers", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: order 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", "150", "0.001", "100")

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, "value is out of range: weight is 150, min value is 0.001, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("dimension check")
		err := errs.NewValueIsOutOfRangeErrorWithCause("length", -5, 0.1, 300, cause)

		assert.Equal(t, -5, err.Value)
		assert.Equal(t,
			"value is out of range: length is -5, min value is 0.1, max value is 300 (cause: dimension check)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("consignee.name")

	assert.Equal(t, "value is required: consignee.name", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("products", errors.New("empty list"))
	assert.Equal(t, "value is required: products (cause: empty list)", withCause.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("phone"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("weight", 0, 1, 2), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("name"), errs.ErrValueIsRequired)

	var notFound *errs.ObjectNotFoundError
	wrapped := errors.Join(errors.New("lookup"), errs.NewObjectNotFoundError("pincode", "110001"))
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "pincode", notFound.ParamName)
}
