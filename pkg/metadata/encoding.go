package metadata

import (
	"encoding/json"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gammasky/dl3kit/pkg/constants"
	"github.com/gammasky/dl3kit/pkg/errors"
)

// ToMap returns m in the shape accepted by FromMap. Null fields are left out.
func (m *MapDatasetMetadata) ToMap() map[string]any {
	out := map[string]any{
		FieldCreation: m.creation.toMap(),
	}
	for field, v := range map[string]Values[string]{
		FieldTelescope:       m.telescope,
		FieldInstrument:      m.instrument,
		FieldObservationMode: m.observationMode,
		FieldObsIDs:          m.obsIDs,
	} {
		if !v.IsNull() {
			out[field] = v.Any()
		}
	}
	switch {
	case m.pointing.IsList():
		items := make([]any, 0, m.pointing.Len())
		for _, p := range m.pointing.items {
			items = append(items, p.toMap())
		}
		out[FieldPointing] = items
	case !m.pointing.IsNull():
		out[FieldPointing] = m.pointing.items[0].toMap()
	}
	if opt := m.Optional(); opt != nil {
		out[FieldOptional] = opt
	}
	if m.eventType != nil {
		out[FieldEventType] = *m.eventType
	}
	return out
}

// MarshalYAML writes the fields in schema order.
func (m *MapDatasetMetadata) MarshalYAML() (any, error) {
	values := m.ToMap()
	out := yaml.MapSlice{}
	for _, field := range Fields {
		if v, ok := values[field]; ok {
			out = append(out, yaml.MapItem{Key: field, Value: v})
		}
	}
	return out, nil
}

// UnmarshalYAML decodes and validates a YAML mapping.
func (m *MapDatasetMetadata) UnmarshalYAML(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.WrapParse("yaml", "", err)
	}
	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m *MapDatasetMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MapDatasetMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapParse("json", "", err)
	}
	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// Marshal encodes m as YAML.
func Marshal(m *MapDatasetMetadata) ([]byte, error) {
	return yaml.MarshalWithOptions(m, yaml.Indent(2), yaml.IndentSequence(false))
}

// Unmarshal decodes a YAML document into a validated record.
func Unmarshal(data []byte) (*MapDatasetMetadata, error) {
	m := &MapDatasetMetadata{}
	if err := m.UnmarshalYAML(data); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile loads a record from a YAML file.
func ReadFile(path string) (*MapDatasetMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("metadata file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return FromMap(raw)
}

// WriteFile stores m as YAML at path.
func WriteFile(path string, m *MapDatasetMetadata) error {
	data, err := Marshal(m)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}
