package metadata

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"
	"github.com/astrogo/fitsio"

	"github.com/gammasky/dl3kit/pkg/constants"
	"github.com/gammasky/dl3kit/pkg/coords"
	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/fits"
)

// FITS keywords written by ToHeader.
const (
	KeyTelescope       = "TELESCOP"
	KeyInstrument      = "INSTRUM"
	KeyObservationMode = "OBS_MODE"
	KeyObsIDs          = "OBS_IDS"
	KeyEventType       = "EVT_TYPE"
	KeyRAPointing      = "RA_PNT"
	KeyDecPointing     = "DEC_PNT"
	KeyCreator         = "CREATOR"
	KeyCreated         = "CREATED"
	KeyOrigin          = "ORIGIN"
)

type keyword struct {
	key     string
	comment string
}

// headerKeywords is the output order of Header.Cards.
var headerKeywords = []keyword{
	{KeyTelescope, "Telescope"},
	{KeyInstrument, "Instrument"},
	{KeyObservationMode, "Observation mode"},
	{KeyObsIDs, "Observation identifiers"},
	{KeyEventType, "Event type"},
	{KeyRAPointing, "Pointing right ascension [deg]"},
	{KeyDecPointing, "Pointing declination [deg]"},
	{KeyCreator, "Program that created the file"},
	{KeyCreated, "File creation date (UTC)"},
	{KeyOrigin, "Organization responsible for the file"},
}

// Header is a flat keyword to value mapping.
type Header map[string]any

// Keys returns the keywords present in h in output order.
func (h Header) Keys() []string {
	var keys []string
	for _, kw := range headerKeywords {
		if _, ok := h[kw.key]; ok {
			keys = append(keys, kw.key)
		}
	}
	return keys
}

// Cards returns h as FITS header cards in output order.
func (h Header) Cards() []fitsio.Card {
	cards := make([]fitsio.Card, 0, len(h))
	for _, kw := range headerKeywords {
		v, ok := h[kw.key]
		if !ok {
			continue
		}
		cards = append(cards, fitsio.Card{Name: kw.key, Value: v, Comment: kw.comment})
	}
	return cards
}

// ToHeader projects m onto FITS keywords. Null fields are omitted and
// one-element lists export their element. A field holding several values
// cannot be exported and fails with a validation error.
func (m *MapDatasetMetadata) ToHeader() (Header, error) {
	h := Header{}

	strs := []struct {
		field string
		key   string
		value Values[string]
	}{
		{FieldTelescope, KeyTelescope, m.telescope},
		{FieldInstrument, KeyInstrument, m.instrument},
		{FieldObservationMode, KeyObservationMode, m.observationMode},
		{FieldObsIDs, KeyObsIDs, m.obsIDs},
	}
	for _, s := range strs {
		v, ok, err := single(s.field, s.key, s.value)
		if err != nil {
			return nil, err
		}
		if ok {
			h[s.key] = v
		}
	}

	if m.eventType != nil {
		h[KeyEventType] = *m.eventType
	}

	p, ok, err := single(FieldPointing, KeyRAPointing, m.pointing)
	if err != nil {
		return nil, err
	}
	if ok && p.RADecMean != nil {
		h[KeyRAPointing] = p.RADecMean.RA()
		h[KeyDecPointing] = p.RADecMean.Dec()
	}

	if m.creation.Creator != "" {
		h[KeyCreator] = m.creation.Creator
	}
	if !m.creation.Date.IsZero() {
		h[KeyCreated] = m.creation.Date.Format(constants.TimeFormatFITS)
	}
	if m.creation.Origin != "" {
		h[KeyOrigin] = m.creation.Origin
	}
	return h, nil
}

func single[T any](field, key string, v Values[T]) (T, bool, error) {
	var zero T
	switch v.Len() {
	case 0:
		return zero, false, nil
	case 1:
		item, _ := v.Single()
		return item, true, nil
	default:
		return zero, false, errors.NewValidationError(field, v.Items(),
			fmt.Sprintf("cannot export %d values to header keyword %s", v.Len(), key))
	}
}

// FromHeader builds a record from the keywords written by ToHeader.
// Other keywords are ignored.
func FromHeader(h Header) (*MapDatasetMetadata, error) {
	m := &MapDatasetMetadata{}

	for _, f := range []struct {
		field string
		key   string
	}{
		{FieldTelescope, KeyTelescope},
		{FieldInstrument, KeyInstrument},
		{FieldObservationMode, KeyObservationMode},
		{FieldObsIDs, KeyObsIDs},
		{FieldEventType, KeyEventType},
	} {
		v, ok := h[f.key]
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr {
			v = strings.TrimSpace(s)
		}
		if err := m.assign(f.field, v); err != nil {
			return nil, err
		}
	}

	ra, hasRA := h[KeyRAPointing]
	dec, hasDec := h[KeyDecPointing]
	if hasRA != hasDec {
		return nil, errors.NewValidationError(FieldPointing, nil, "RA_PNT and DEC_PNT must be given together")
	}
	if hasRA {
		raDeg, err := number(KeyRAPointing, ra)
		if err != nil {
			return nil, err
		}
		decDeg, err := number(KeyDecPointing, dec)
		if err != nil {
			return nil, err
		}
		c, err := coords.ICRSDeg(raDeg, decDeg)
		if err != nil {
			return nil, errors.WrapValidation(FieldPointing, err)
		}
		m.pointing = Scalar(NewPointing(c))
	}

	creator, _ := h[KeyCreator].(string)
	origin, _ := h[KeyOrigin].(string)
	m.creation = Creation{Creator: strings.TrimSpace(creator), Origin: strings.TrimSpace(origin)}
	if created, ok := h[KeyCreated].(string); ok && created != "" {
		date, err := utc.Parse(constants.TimeFormatFITS, strings.TrimSpace(created))
		if err != nil {
			return nil, errors.NewValidationError(FieldCreation+".date", created, err.Error())
		}
		m.creation.Date = date
	}
	return m, nil
}

// FromFITSHeader builds a record from the header of a FITS HDU.
func FromFITSHeader(h fits.Header) (*MapDatasetMetadata, error) {
	return FromHeader(Header(h.Map()))
}
