package coords_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/pkg/coords"
	"github.com/gammasky/dl3kit/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		lon     float64
		lat     float64
		unit    coords.Unit
		frame   coords.Frame
		wantLon float64
		wantLat float64
		wantErr bool
	}{
		{name: "crab in degrees", lon: 83.6287, lat: 22.0147, unit: coords.Degree, frame: coords.ICRS, wantLon: 83.6287, wantLat: 22.0147},
		{name: "radians", lon: math.Pi, lat: math.Pi / 4, unit: coords.Radian, frame: coords.ICRS, wantLon: 180, wantLat: 45},
		{name: "hour angle longitude", lon: 5.5, lat: 22, unit: coords.HourAngle, frame: coords.FK5, wantLon: 82.5, wantLat: 22},
		{name: "negative longitude wraps", lon: -10, lat: 0, unit: coords.Degree, frame: coords.Galactic, wantLon: 350, wantLat: 0},
		{name: "default frame", lon: 10, lat: 10, wantLon: 10, wantLat: 10},
		{name: "latitude out of range", lon: 0, lat: 91, unit: coords.Degree, wantErr: true},
		{name: "unknown unit", lon: 0, lat: 0, unit: "arcmin", wantErr: true},
		{name: "unknown frame", lon: 0, lat: 0, frame: "altaz", wantErr: true},
		{name: "nan", lon: math.NaN(), lat: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := coords.New(tt.lon, tt.lat, tt.unit, tt.frame)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantLon, c.Lon(), 1e-9)
			assert.InDelta(t, tt.wantLat, c.Lat(), 1e-9)
		})
	}
}

func TestDefaultFrameIsICRS(t *testing.T) {
	c := coords.MustNew(1, 2, coords.Degree, "")
	assert.Equal(t, coords.ICRS, c.Frame())
	assert.Equal(t, 1.0, c.RA())
	assert.Equal(t, 2.0, c.Dec())
}

func TestSeparation(t *testing.T) {
	a := coords.MustNew(83.6287, 22.0147, coords.Degree, coords.ICRS)
	b := coords.MustNew(83.6287, 22.5147, coords.Degree, coords.ICRS)

	sep, err := a.Separation(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, sep, 1e-9)

	pole := coords.MustNew(0, 90, coords.Degree, coords.ICRS)
	eq := coords.MustNew(123, 0, coords.Degree, coords.ICRS)
	sep, err = pole.Separation(eq)
	require.NoError(t, err)
	assert.InDelta(t, 90, sep, 1e-9)

	_, err = a.Separation(coords.MustNew(0, 0, coords.Degree, coords.Galactic))
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	a := coords.MustNew(359, 0, coords.Degree, coords.ICRS)
	b := coords.MustNew(1, 0, coords.Degree, coords.ICRS)

	m, err := coords.Mean(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0, math.Min(m.Lon(), 360-m.Lon()), 1e-9)
	assert.InDelta(t, 0, m.Lat(), 1e-9)

	_, err = coords.Mean()
	assert.Error(t, err)

	_, err = coords.Mean(a, coords.MustNew(1, 0, coords.Degree, coords.Galactic))
	assert.Error(t, err)
}

func TestEqualAndString(t *testing.T) {
	a := coords.MustNew(10, 20, coords.Degree, coords.ICRS)
	assert.True(t, a.Equal(coords.MustNew(10, 20, coords.Degree, coords.ICRS)))
	assert.False(t, a.Equal(coords.MustNew(10, 20, coords.Degree, coords.FK5)))
	assert.Equal(t, "icrs (10.0000, 20.0000) deg", a.String())
}
