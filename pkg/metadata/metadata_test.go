package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/pkg/coords"
	"github.com/gammasky/dl3kit/pkg/errors"
)

func crab(t *testing.T, dec float64) PointingInfo {
	t.Helper()
	c, err := coords.New(83.6287, dec, coords.Degree, coords.ICRS)
	require.NoError(t, err)
	return NewPointing(c)
}

func TestDefault(t *testing.T) {
	meta, err := New()
	require.NoError(t, err)

	assert.Equal(t, "dl3kit", strings.Fields(meta.Creation().Creator)[0])
	assert.False(t, meta.Creation().Date.IsZero())
	assert.True(t, meta.Instrument().IsNull())
	assert.True(t, meta.Telescope().IsNull())
	assert.True(t, meta.Pointing().IsNull())
	assert.Nil(t, meta.Optional())
	_, ok := meta.EventType()
	assert.False(t, ok)
}

func TestFromMap(t *testing.T) {
	input := map[string]any{
		"telescope":        "cta-north",
		"instrument":       "lst",
		"observation_mode": "wobble",
		"pointing":         crab(t, 22.0147),
		"obs_ids":          112,
		"optional":         map[string]any{"test": 0.5, "other": true},
	}
	meta, err := FromMap(input)
	require.NoError(t, err)

	tel, ok := meta.Telescope().Scalar()
	require.True(t, ok)
	assert.Equal(t, "cta-north", tel)
	inst, _ := meta.Instrument().Scalar()
	assert.Equal(t, "lst", inst)
	mode, _ := meta.ObservationMode().Scalar()
	assert.Equal(t, "wobble", mode)

	p, ok := meta.Pointing().Scalar()
	require.True(t, ok)
	require.NotNil(t, p.RADecMean)
	assert.InDelta(t, 22.0147, p.RADecMean.Dec(), 1e-9)
	assert.InDelta(t, 83.6287, p.RADecMean.RA(), 1e-9)

	id, ok := meta.ObsIDs().Scalar()
	require.True(t, ok)
	assert.Equal(t, "112", id)
	assert.Equal(t, true, meta.Optional()["other"])
	assert.Equal(t, "dl3kit", strings.Fields(meta.Creation().Creator)[0])
	_, ok = meta.EventType()
	assert.False(t, ok)

	t.Run("invalid assignment", func(t *testing.T) {
		err := meta.Set(FieldPointing, 2.0)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		p, ok := meta.Pointing().Scalar()
		require.True(t, ok, "failed Set must leave the record unchanged")
		assert.InDelta(t, 22.0147, p.RADecMean.Dec(), 1e-9)
	})

	t.Run("unknown field", func(t *testing.T) {
		bad := map[string]any{"bad": crab(t, 22.0147)}
		for k, v := range input {
			bad[k] = v
		}
		_, err := FromMap(bad)
		require.Error(t, err)
		var verr *errors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "bad", verr.Field)
	})
}

func TestFromMapLists(t *testing.T) {
	second, err := coords.New(83.1287, 22.5147, coords.Degree, coords.ICRS)
	require.NoError(t, err)

	meta, err := FromMap(map[string]any{
		"telescope":        "cta-north",
		"instrument":       "lst",
		"observation_mode": "wobble",
		"pointing":         []PointingInfo{crab(t, 22.0147), NewPointing(second)},
		"obs_ids":          []int{111, 222},
	})
	require.NoError(t, err)

	pointings := meta.Pointing().Items()
	require.Len(t, pointings, 2)
	assert.InDelta(t, 22.0147, pointings[0].RADecMean.Dec(), 1e-9)
	assert.InDelta(t, 83.1287, pointings[1].RADecMean.RA(), 1e-9)
	assert.True(t, meta.ObsIDs().IsList())
	assert.Equal(t, []string{"111", "222"}, meta.ObsIDs().Items())
	assert.Nil(t, meta.Optional())
}

func TestOptions(t *testing.T) {
	meta, err := New(
		WithTelescope("hess"),
		WithInstrument("H.E.S.S."),
		WithObsIDs(23523, "23526"),
		WithPointing(crab(t, 22.0147)),
		WithEventType("all"),
		WithOptional(map[string]any{"zenith": 20}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"23523", "23526"}, meta.ObsIDs().Items())
	et, ok := meta.EventType()
	require.True(t, ok)
	assert.Equal(t, "all", et)
	assert.Equal(t, int64(20), meta.Optional()["zenith"])

	_, err = New(With("nope", 1))
	assert.True(t, errors.IsValidationError(err))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"telescope number", FieldTelescope, 3},
		{"instrument list with number", FieldInstrument, []any{"lst", 1}},
		{"fractional obs id", FieldObsIDs, 1.5},
		{"obs id bool", FieldObsIDs, true},
		{"pointing string", FieldPointing, "crab"},
		{"pointing unknown key", FieldPointing, map[string]any{"altaz": nil}},
		{"latitude out of range", FieldPointing, map[string]any{
			"radec_mean": map[string]any{"ra": 10.0, "dec": 95.0},
		}},
		{"optional not a map", FieldOptional, []string{"a"}},
		{"optional nested map", FieldOptional, map[string]any{"x": map[string]any{}}},
		{"event type number", FieldEventType, 1},
		{"creation unknown key", FieldCreation, map[string]any{"author": "me"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := New()
			require.NoError(t, err)
			err = meta.Set(tt.field, tt.value)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestSetReplacesField(t *testing.T) {
	meta, err := New(WithInstrument("lst"))
	require.NoError(t, err)

	require.NoError(t, meta.Set(FieldInstrument, []string{"lst", "mst"}))
	assert.Equal(t, []string{"lst", "mst"}, meta.Instrument().Items())

	require.NoError(t, meta.Set(FieldInstrument, nil))
	assert.True(t, meta.Instrument().IsNull())
}

func TestPointingFromMap(t *testing.T) {
	meta, err := FromMap(map[string]any{
		"pointing": map[string]any{
			"radec_mean": map[string]any{"ra": 5.575, "dec": 22.0147, "unit": "hourangle", "frame": "icrs"},
		},
	})
	require.NoError(t, err)

	p, ok := meta.Pointing().Scalar()
	require.True(t, ok)
	assert.InDelta(t, 83.625, p.RADecMean.RA(), 1e-9)
	assert.Equal(t, coords.ICRS, p.RADecMean.Frame())
}

func TestClone(t *testing.T) {
	meta, err := New(WithObsIDs(1, 2), WithOptional(map[string]any{"a": 1}))
	require.NoError(t, err)

	c := meta.Clone()
	require.NoError(t, c.Set(FieldObsIDs, 3))
	assert.Equal(t, []string{"1", "2"}, meta.ObsIDs().Items())
	assert.Equal(t, meta.Optional(), c.Optional())
}
