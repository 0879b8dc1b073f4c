package guard_test

import (
	"errors"
	"testing"

	"orderintake/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type trackShipmentCommand struct {
		awb   string
		guard guard.ConstructorGuard
	}
	errCommandNotConstructed := errors.New("trackShipmentCommand must be created via constructor")

	newCommand := func(awb string) (trackShipmentCommand, error) {
		if awb == "" {
			return trackShipmentCommand{}, errors.New("awb is required")
		}
		return trackShipmentCommand{awb: awb, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newCommand("AWB123")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))

	var zero trackShipmentCommand
	require.ErrorIs(t, zero.guard.Validate(errCommandNotConstructed), errCommandNotConstructed)

	_, err = newCommand("")
	require.EqualError(t, err, "awb is required")
}
