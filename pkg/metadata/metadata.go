// Package metadata implements validated, stackable metadata records for
// gamma-ray map datasets.
//
// A record is built once through New or FromMap, optionally merged with
// other records via Stack, and exported to FITS keywords via ToHeader.
// Every field may be null; the schema is closed, so unknown field names
// and values of the wrong type fail with an errors.ValidationError.
package metadata

import (
	"maps"
	"slices"
)

// MapDatasetMetadata describes the observations a map dataset was built from.
type MapDatasetMetadata struct {
	telescope       Values[string]
	instrument      Values[string]
	observationMode Values[string]
	pointing        Values[PointingInfo]
	obsIDs          Values[string]
	optional        map[string]Values[any]
	creation        Creation
	eventType       *string
}

// Option configures a record during New.
type Option func(*MapDatasetMetadata) error

// New builds a record from options. Fields not set are null, except
// creation which defaults to DefaultCreation.
func New(opts ...Option) (*MapDatasetMetadata, error) {
	m := &MapDatasetMetadata{creation: DefaultCreation()}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromMap builds a record from named inputs as decoded from YAML or JSON.
func FromMap(values map[string]any) (*MapDatasetMetadata, error) {
	m := &MapDatasetMetadata{creation: DefaultCreation()}
	// sorted so the reported error is deterministic
	for _, field := range slices.Sorted(maps.Keys(values)) {
		if err := m.assign(field, values[field]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// With sets a field by name.
func With(field string, value any) Option {
	return func(m *MapDatasetMetadata) error {
		return m.assign(field, value)
	}
}

// WithTelescope sets a scalar telescope name.
func WithTelescope(name string) Option {
	return With(FieldTelescope, name)
}

// WithInstrument sets a scalar instrument name.
func WithInstrument(name string) Option {
	return With(FieldInstrument, name)
}

// WithObservationMode sets a scalar observation mode.
func WithObservationMode(mode string) Option {
	return With(FieldObservationMode, mode)
}

// WithPointing sets a single pointing.
func WithPointing(p PointingInfo) Option {
	return With(FieldPointing, p)
}

// WithPointings sets a list of pointings.
func WithPointings(ps ...PointingInfo) Option {
	return With(FieldPointing, List(ps...))
}

// WithObsID sets a single observation identifier. Integers are stored
// in decimal string form.
func WithObsID(id any) Option {
	return With(FieldObsIDs, id)
}

// WithObsIDs sets a list of observation identifiers.
func WithObsIDs(ids ...any) Option {
	return With(FieldObsIDs, ids)
}

// WithOptional sets the free-form extension map.
func WithOptional(values map[string]any) Option {
	return With(FieldOptional, values)
}

// WithEventType sets the event type.
func WithEventType(eventType string) Option {
	return With(FieldEventType, eventType)
}

// WithCreation overrides the default provenance.
func WithCreation(c Creation) Option {
	return With(FieldCreation, c)
}

// Set validates value and assigns it to field. The record is left
// unchanged when validation fails.
func (m *MapDatasetMetadata) Set(field string, value any) error {
	next := m.Clone()
	if err := next.assign(field, value); err != nil {
		return err
	}
	*m = *next
	return nil
}

// Clone returns a deep copy of m.
func (m *MapDatasetMetadata) Clone() *MapDatasetMetadata {
	out := *m
	out.telescope = cloneValues(m.telescope)
	out.instrument = cloneValues(m.instrument)
	out.observationMode = cloneValues(m.observationMode)
	out.pointing = cloneValues(m.pointing)
	out.obsIDs = cloneValues(m.obsIDs)
	out.optional = cloneOptional(m.optional)
	if m.eventType != nil {
		et := *m.eventType
		out.eventType = &et
	}
	return &out
}

func cloneValues[T any](v Values[T]) Values[T] {
	return Values[T]{items: v.Items(), list: v.list}
}

// Telescope returns the telescope field.
func (m *MapDatasetMetadata) Telescope() Values[string] { return m.telescope }

// Instrument returns the instrument field.
func (m *MapDatasetMetadata) Instrument() Values[string] { return m.instrument }

// ObservationMode returns the observation mode field.
func (m *MapDatasetMetadata) ObservationMode() Values[string] { return m.observationMode }

// Pointing returns the pointing field.
func (m *MapDatasetMetadata) Pointing() Values[PointingInfo] { return m.pointing }

// ObsIDs returns the observation identifiers, always in string form.
func (m *MapDatasetMetadata) ObsIDs() Values[string] { return m.obsIDs }

// Creation returns the record provenance.
func (m *MapDatasetMetadata) Creation() Creation { return m.creation }

// EventType returns the event type and whether it is set.
func (m *MapDatasetMetadata) EventType() (string, bool) {
	if m.eventType == nil {
		return "", false
	}
	return *m.eventType, true
}

// Optional returns the extension map with each entry as a scalar or
// []any. It returns nil when the field is null.
func (m *MapDatasetMetadata) Optional() map[string]any {
	if m.optional == nil {
		return nil
	}
	out := make(map[string]any, len(m.optional))
	for k, v := range m.optional {
		out[k] = v.Any()
	}
	return out
}

// OptionalValue returns a single entry of the extension map.
func (m *MapDatasetMetadata) OptionalValue(key string) (Values[any], bool) {
	v, ok := m.optional[key]
	return v, ok
}
