package metadata

import (
	"slices"

	"github.com/gammasky/dl3kit/pkg/errors"
)

// Stack merges m with other into a new record. Neither input is modified.
//
// Telescope, instrument and observation mode become the ordered union of
// both sides. Pointing and obs_ids are concatenated. Optional entries are
// concatenated per key and both sides must carry the same keys. Event
// type and creation are kept from m.
func (m *MapDatasetMetadata) Stack(other *MapDatasetMetadata) (*MapDatasetMetadata, error) {
	if other == nil {
		return nil, errors.NewValidationError("", nil, "cannot stack with a nil record")
	}

	optional, err := stackOptional(m.optional, other.optional)
	if err != nil {
		return nil, err
	}

	out := &MapDatasetMetadata{
		telescope:       union(m.telescope, other.telescope),
		instrument:      union(m.instrument, other.instrument),
		observationMode: union(m.observationMode, other.observationMode),
		pointing:        concat(m.pointing, other.pointing),
		obsIDs:          concat(m.obsIDs, other.obsIDs),
		optional:        optional,
		creation:        m.creation,
	}
	if m.eventType != nil {
		et := *m.eventType
		out.eventType = &et
	}
	return out, nil
}

// StackAll folds records left to right with Stack.
func StackAll(records ...*MapDatasetMetadata) (*MapDatasetMetadata, error) {
	if len(records) == 0 {
		return nil, errors.NewValidationError("", nil, "no records to stack")
	}
	if records[0] == nil {
		return nil, errors.NewValidationError("", nil, "cannot stack a nil record")
	}
	out := records[0].Clone()
	for _, r := range records[1:] {
		next, err := out.Stack(r)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func stackOptional(a, b map[string]Values[any]) (map[string]Values[any], error) {
	if a == nil && b == nil {
		return nil, nil
	}

	var missing []string
	for k := range a {
		if _, ok := b[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, errors.NewMergeError(FieldOptional, missing, nil)
	}

	out := make(map[string]Values[any], len(a))
	for k, left := range a {
		out[k] = concat(left, b[k])
	}
	return out, nil
}
