package metadata

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/agentstation/utc"

	"github.com/gammasky/dl3kit/pkg/coords"
	"github.com/gammasky/dl3kit/pkg/errors"
)

// Field names accepted by FromMap and Set.
const (
	FieldTelescope       = "telescope"
	FieldInstrument      = "instrument"
	FieldObservationMode = "observation_mode"
	FieldPointing        = "pointing"
	FieldObsIDs          = "obs_ids"
	FieldOptional        = "optional"
	FieldCreation        = "creation"
	FieldEventType       = "event_type"
)

// Fields lists the record schema in declaration order.
var Fields = []string{
	FieldTelescope,
	FieldInstrument,
	FieldObservationMode,
	FieldPointing,
	FieldObsIDs,
	FieldOptional,
	FieldCreation,
	FieldEventType,
}

const dateLayout = time.RFC3339

// IsField reports whether name is part of the record schema.
func IsField(name string) bool {
	return slices.Contains(Fields, name)
}

// assign validates value for field and stores it on m. On error m is untouched.
func (m *MapDatasetMetadata) assign(field string, value any) error {
	switch field {
	case FieldTelescope, FieldInstrument, FieldObservationMode:
		v, err := parseStrings(field, value)
		if err != nil {
			return err
		}
		switch field {
		case FieldTelescope:
			m.telescope = v
		case FieldInstrument:
			m.instrument = v
		default:
			m.observationMode = v
		}
	case FieldPointing:
		v, err := parsePointings(value)
		if err != nil {
			return err
		}
		m.pointing = v
	case FieldObsIDs:
		v, err := parseObsIDs(value)
		if err != nil {
			return err
		}
		m.obsIDs = v
	case FieldOptional:
		v, err := parseOptional(value)
		if err != nil {
			return err
		}
		m.optional = v
	case FieldCreation:
		v, err := parseCreation(value)
		if err != nil {
			return err
		}
		m.creation = v
	case FieldEventType:
		v, err := parseEventType(value)
		if err != nil {
			return err
		}
		m.eventType = v
	default:
		return errors.NewValidationError(field, value, "unknown field")
	}
	return nil
}

func typeError(field string, value any, want string) error {
	return errors.NewValidationError(field, value, fmt.Sprintf("expected %s, got %T", want, value))
}

func parseStrings(field string, value any) (Values[string], error) {
	switch v := value.(type) {
	case nil:
		return Null[string](), nil
	case string:
		return Scalar(v), nil
	case []string:
		return List(v...), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Values[string]{}, typeError(field, item, "string list element")
			}
			items = append(items, s)
		}
		return List(items...), nil
	case Values[string]:
		return v, nil
	default:
		return Values[string]{}, typeError(field, value, "string or list of strings")
	}
}

func parseObsIDs(value any) (Values[string], error) {
	switch v := value.(type) {
	case nil:
		return Null[string](), nil
	case Values[string]:
		return v, nil
	case []string:
		return List(v...), nil
	case []int:
		return listOf(v, func(i int) string { return strconv.Itoa(i) }), nil
	case []int64:
		return listOf(v, func(i int64) string { return strconv.FormatInt(i, 10) }), nil
	case []uint64:
		return listOf(v, func(i uint64) string { return strconv.FormatUint(i, 10) }), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, err := obsID(item)
			if err != nil {
				return Values[string]{}, err
			}
			items = append(items, s)
		}
		return List(items...), nil
	default:
		s, err := obsID(value)
		if err != nil {
			return Values[string]{}, err
		}
		return Scalar(s), nil
	}
}

func listOf[T any](in []T, conv func(T) string) Values[string] {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = conv(v)
	}
	return List(out...)
}

// obsID normalizes a single observation identifier to its decimal string form.
func obsID(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		// JSON decodes every number as float64
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return "", typeError(FieldObsIDs, value, "integer or string identifier")
		}
		return strconv.FormatFloat(v, 'f', 0, 64), nil
	default:
		return "", typeError(FieldObsIDs, value, "integer or string identifier")
	}
}

func parsePointings(value any) (Values[PointingInfo], error) {
	switch v := value.(type) {
	case nil:
		return Null[PointingInfo](), nil
	case Values[PointingInfo]:
		return v, nil
	case []PointingInfo:
		return List(v...), nil
	case []*PointingInfo:
		items := make([]PointingInfo, 0, len(v))
		for _, p := range v {
			if p == nil {
				return Values[PointingInfo]{}, typeError(FieldPointing, value, "non-nil pointing")
			}
			items = append(items, *p)
		}
		return List(items...), nil
	case []any:
		items := make([]PointingInfo, 0, len(v))
		for _, item := range v {
			p, err := pointing(item)
			if err != nil {
				return Values[PointingInfo]{}, err
			}
			items = append(items, p)
		}
		return List(items...), nil
	default:
		p, err := pointing(value)
		if err != nil {
			return Values[PointingInfo]{}, err
		}
		return Scalar(p), nil
	}
}

func pointing(value any) (PointingInfo, error) {
	switch v := value.(type) {
	case PointingInfo:
		return v, nil
	case *PointingInfo:
		if v == nil {
			return PointingInfo{}, typeError(FieldPointing, value, "non-nil pointing")
		}
		return *v, nil
	case map[string]any:
		for key := range v {
			if key != "radec_mean" {
				return PointingInfo{}, errors.NewValidationError(FieldPointing+"."+key, v[key], "unknown field")
			}
		}
		radec, err := skyCoord(v["radec_mean"])
		if err != nil {
			return PointingInfo{}, err
		}
		return PointingInfo{RADecMean: radec}, nil
	default:
		return PointingInfo{}, typeError(FieldPointing, value, "PointingInfo")
	}
}

func skyCoord(value any) (*coords.SkyCoord, error) {
	const field = FieldPointing + ".radec_mean"
	switch v := value.(type) {
	case nil:
		return nil, nil
	case coords.SkyCoord:
		return &v, nil
	case *coords.SkyCoord:
		return v, nil
	case map[string]any:
		ra, err := number(field+".ra", v["ra"])
		if err != nil {
			return nil, err
		}
		dec, err := number(field+".dec", v["dec"])
		if err != nil {
			return nil, err
		}
		frame, _ := v["frame"].(string)
		unit := coords.Degree
		if u, ok := v["unit"].(string); ok && u != "" {
			unit = coords.Unit(u)
		}
		c, err := coords.New(ra, dec, unit, coords.Frame(frame))
		if err != nil {
			return nil, errors.WrapValidation(field, err)
		}
		return &c, nil
	default:
		return nil, typeError(field, value, "sky coordinate")
	}
}

func number(field string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, typeError(field, value, "number")
	}
}

func parseOptional(value any) (map[string]Values[any], error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]Values[any]:
		return cloneOptional(v), nil
	case map[string]any:
		out := make(map[string]Values[any], len(v))
		for key, raw := range v {
			val, err := optionalValue(key, raw)
			if err != nil {
				return nil, err
			}
			out[key] = val
		}
		return out, nil
	default:
		return nil, typeError(FieldOptional, value, "mapping")
	}
}

func optionalValue(key string, raw any) (Values[any], error) {
	if items, ok := raw.([]any); ok {
		out := make([]any, 0, len(items))
		for _, item := range items {
			s, err := optionalScalar(key, item)
			if err != nil {
				return Values[any]{}, err
			}
			out = append(out, s)
		}
		return List(out...), nil
	}
	s, err := optionalScalar(key, raw)
	if err != nil {
		return Values[any]{}, err
	}
	return Scalar(s), nil
}

// optionalScalar normalizes integer kinds to int64 and floats to float64.
func optionalScalar(key string, value any) (any, error) {
	switch v := value.(type) {
	case string, bool, int64, float64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, typeError(FieldOptional+"."+key, value, "int64 range integer")
		}
		return int64(v), nil
	case float32:
		return float64(v), nil
	default:
		return nil, typeError(FieldOptional+"."+key, value, "string, bool, integer or float")
	}
}

func cloneOptional(in map[string]Values[any]) map[string]Values[any] {
	if in == nil {
		return nil
	}
	out := make(map[string]Values[any], len(in))
	for k, v := range in {
		out[k] = Values[any]{items: v.Items(), list: v.list}
	}
	return out
}

func parseCreation(value any) (Creation, error) {
	switch v := value.(type) {
	case Creation:
		return v, nil
	case *Creation:
		if v == nil {
			return DefaultCreation(), nil
		}
		return *v, nil
	case nil:
		return DefaultCreation(), nil
	case map[string]any:
		c := Creation{}
		for key, raw := range v {
			if ts, ok := raw.(time.Time); ok && key == "date" {
				c.Date = utc.New(ts)
				continue
			}
			s, ok := raw.(string)
			if !ok && raw != nil {
				return Creation{}, typeError(FieldCreation+"."+key, raw, "string")
			}
			switch key {
			case "creator":
				c.Creator = s
			case "origin":
				c.Origin = s
			case "date":
				if s == "" {
					continue
				}
				date, err := utc.Parse(dateLayout, s)
				if err != nil {
					return Creation{}, errors.NewValidationError(FieldCreation+".date", raw, err.Error())
				}
				c.Date = date
			default:
				return Creation{}, errors.NewValidationError(FieldCreation+"."+key, raw, "unknown field")
			}
		}
		return c, nil
	default:
		return Creation{}, typeError(FieldCreation, value, "Creation")
	}
}

func parseEventType(value any) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case *string:
		if v == nil {
			return nil, nil
		}
		s := *v
		return &s, nil
	default:
		return nil, typeError(FieldEventType, value, "string")
	}
}
