package zone_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"orderintake/internal/adapters/out/zone"
	"orderintake/internal/core/domain/model/pincode"
	"orderintake/internal/core/ports"
	"orderintake/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory map[string]*pincode.Pincode

func (d stubDirectory) Lookup(_ context.Context, code string) (*pincode.Pincode, error) {
	if p, ok := d[code]; ok {
		return p, nil
	}
	if code == "000500" {
		return nil, errors.New("directory unavailable")
	}
	return nil, errs.NewObjectNotFoundError("pincode", code)
}

func (d stubDirectory) IsServiceable(_ context.Context, code string) (bool, error) {
	_, ok := d[code]
	return ok, nil
}

func pin(t *testing.T, code, city, state string, metro, special bool) *pincode.Pincode {
	t.Helper()
	p, err := pincode.NewPincode(pincode.Params{
		Code: code, City: city, State: state, IsMetro: metro, IsSpecialRegion: special, IsServiceable: true,
	})
	require.NoError(t, err)
	return p
}

func newCalculator(t *testing.T) *zone.DirectoryZoneCalculator {
	directory := stubDirectory{
		"110001": pin(t, "110001", "New Delhi", "Delhi", true, false),
		"110020": pin(t, "110020", "new delhi", "DELHI", true, false),
		"560001": pin(t, "560001", "Bengaluru", "Karnataka", true, false),
		"570001": pin(t, "570001", "Mysuru", "Karnataka", false, false),
		"781001": pin(t, "781001", "Guwahati", "Assam", false, true),
		"302001": pin(t, "302001", "Jaipur", "Rajasthan", false, false),
	}
	return zone.NewDirectoryZoneCalculator(directory, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDirectoryZoneCalculator_Resolve(t *testing.T) {
	calculator := newCalculator(t)

	tests := []struct {
		name        string
		origin      string
		destination string
		expected    string
	}{
		{"same city ignores case", "110001", "110020", zone.ZoneWithinCity},
		{"same state", "560001", "570001", zone.ZoneWithinState},
		{"metro to metro", "110001", "560001", zone.ZoneMetroToMetro},
		{"special region destination", "110001", "781001", zone.ZoneSpecialRegion},
		{"special region origin", "781001", "302001", zone.ZoneSpecialRegion},
		{"rest of country", "302001", "570001", zone.ZoneRestOfCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calculator.Resolve(t.Context(), tt.origin, tt.destination)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDirectoryZoneCalculator_Resolve_Unresolved(t *testing.T) {
	calculator := newCalculator(t)

	_, err := calculator.Resolve(t.Context(), "110001", "123456")
	require.ErrorIs(t, err, ports.ErrZoneUnresolved)
	assert.Contains(t, err.Error(), "123456")

	_, err = calculator.Resolve(t.Context(), "999999", "110001")
	require.ErrorIs(t, err, ports.ErrZoneUnresolved)
}

func TestDirectoryZoneCalculator_Resolve_Failures(t *testing.T) {
	calculator := newCalculator(t)

	_, err := calculator.Resolve(t.Context(), "110001", "000500")
	require.ErrorContains(t, err, "directory unavailable")
	assert.NotErrorIs(t, err, ports.ErrZoneUnresolved)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = calculator.Resolve(ctx, "110001", "560001")
	require.ErrorIs(t, err, context.Canceled)
}
