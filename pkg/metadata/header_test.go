package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/fits"
)

func TestToHeader(t *testing.T) {
	meta, err := FromMap(map[string]any{
		"telescope":        "a",
		"instrument":       "H.E.S.S.",
		"observation_mode": "wobble",
		"pointing":         crab(t, 22.5147),
		"obs_ids":          111,
		"optional":         map[string]any{"test": 0.5, "other": true},
	})
	require.NoError(t, err)

	hdr, err := meta.ToHeader()
	require.NoError(t, err)
	assert.Equal(t, "H.E.S.S.", hdr["INSTRUM"])
	assert.Equal(t, "111", hdr["OBS_IDS"])
	assert.Equal(t, "a", hdr["TELESCOP"])
	assert.InDelta(t, 83.6287, hdr["RA_PNT"], 1e-9)
	assert.InDelta(t, 22.5147, hdr["DEC_PNT"], 1e-9)
	assert.Contains(t, hdr, "CREATOR")
	assert.Contains(t, hdr, "CREATED")
	assert.NotContains(t, hdr, "EVT_TYPE")
	assert.NotContains(t, hdr, "ORIGIN")
}

func TestToHeaderSingleElementList(t *testing.T) {
	meta, err := New(WithInstrument("H.E.S.S."))
	require.NoError(t, err)
	stacked, err := meta.Stack(meta)
	require.NoError(t, err)
	require.True(t, stacked.Instrument().IsList())

	hdr, err := stacked.ToHeader()
	require.NoError(t, err)
	assert.Equal(t, "H.E.S.S.", hdr["INSTRUM"])
}

func TestToHeaderRejectsLists(t *testing.T) {
	meta, err := New(WithObsIDs(111, 112))
	require.NoError(t, err)

	_, err = meta.ToHeader()
	require.Error(t, err)
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldObsIDs, verr.Field)
}

func TestHeaderCardsOrder(t *testing.T) {
	meta, err := New(
		WithTelescope("cta"),
		WithObsID(7),
		WithEventType("gamma"),
		WithCreation(Creation{Creator: "dl3kit test", Origin: "lab"}),
	)
	require.NoError(t, err)
	hdr, err := meta.ToHeader()
	require.NoError(t, err)

	assert.Equal(t, []string{"TELESCOP", "OBS_IDS", "EVT_TYPE", "CREATOR", "ORIGIN"}, hdr.Keys())

	cards := hdr.Cards()
	require.Len(t, cards, 5)
	assert.Equal(t, "TELESCOP", cards[0].Name)
	assert.Equal(t, "cta", cards[0].Value)
	assert.NotEmpty(t, cards[0].Comment)
	assert.Equal(t, "ORIGIN", cards[4].Name)
}

func TestFromHeader(t *testing.T) {
	meta, err := FromMap(map[string]any{
		"telescope":  "cta",
		"instrument": "lst",
		"pointing":   crab(t, 22.0147),
		"obs_ids":    "42",
		"event_type": "all",
	})
	require.NoError(t, err)
	hdr, err := meta.ToHeader()
	require.NoError(t, err)

	back, err := FromHeader(hdr)
	require.NoError(t, err)
	again, err := back.ToHeader()
	require.NoError(t, err)
	assert.Equal(t, hdr, again)
}

func TestFromHeaderPartialPointing(t *testing.T) {
	_, err := FromHeader(Header{"RA_PNT": 1.0})
	assert.True(t, errors.IsValidationError(err))
}

func TestFromFITSHeader(t *testing.T) {
	h := fits.Header{
		{Key: "TELESCOP", Value: "CTA"},
		{Key: "OBS_IDS", Value: 5},
		{Key: "NAXIS", Value: 2},
	}
	meta, err := FromFITSHeader(h)
	require.NoError(t, err)
	tel, _ := meta.Telescope().Scalar()
	assert.Equal(t, "CTA", tel)
	id, _ := meta.ObsIDs().Scalar()
	assert.Equal(t, "5", id)
}
