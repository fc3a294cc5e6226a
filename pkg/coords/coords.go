// Package coords provides a minimal celestial coordinate value used for
// telescope pointing positions. Positions are stored as longitude and
// latitude in degrees together with the name of their reference frame.
// Frame transformations are not supported.
package coords

import (
	"fmt"
	"math"
	"strings"

	"github.com/gammasky/dl3kit/pkg/errors"
)

// Frame names a celestial reference frame.
type Frame string

// Supported frames.
const (
	ICRS     Frame = "icrs"
	FK5      Frame = "fk5"
	Galactic Frame = "galactic"
)

// String returns the string representation of a Frame.
func (f Frame) String() string {
	return string(f)
}

// ParseFrame converts a frame name to a Frame.
func ParseFrame(s string) (Frame, error) {
	switch f := Frame(strings.ToLower(strings.TrimSpace(s))); f {
	case ICRS, FK5, Galactic:
		return f, nil
	case "":
		return ICRS, nil
	default:
		return "", errors.NewValidationError("frame", s, "unsupported frame (want icrs, fk5 or galactic)")
	}
}

// Unit is an angular unit accepted when constructing coordinates.
type Unit string

// Supported units.
const (
	Degree    Unit = "deg"
	Radian    Unit = "rad"
	HourAngle Unit = "hourangle"
)

// toDegrees converts v expressed in u to degrees.
func (u Unit) toDegrees(v float64) (float64, error) {
	switch u {
	case Degree, "":
		return v, nil
	case Radian:
		return v * 180 / math.Pi, nil
	case HourAngle:
		return v * 15, nil
	default:
		return 0, errors.NewValidationError("unit", string(u), "unsupported unit (want deg, rad or hourangle)")
	}
}

// SkyCoord is a position on the celestial sphere.
type SkyCoord struct {
	lon   float64
	lat   float64
	frame Frame
}

// New creates a coordinate from longitude and latitude in unit.
// HourAngle applies only to the longitude; the latitude is then read in degrees.
// Longitude is wrapped into [0, 360) and latitude must lie within [-90, 90].
func New(lon, lat float64, unit Unit, frame Frame) (SkyCoord, error) {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return SkyCoord{}, errors.NewValidationError("coordinate", []float64{lon, lat}, "values must be finite")
	}
	frame, err := ParseFrame(string(frame))
	if err != nil {
		return SkyCoord{}, err
	}

	lonDeg, err := unit.toDegrees(lon)
	if err != nil {
		return SkyCoord{}, err
	}
	latUnit := unit
	if unit == HourAngle {
		latUnit = Degree
	}
	latDeg, err := latUnit.toDegrees(lat)
	if err != nil {
		return SkyCoord{}, err
	}
	if latDeg < -90 || latDeg > 90 {
		return SkyCoord{}, errors.NewValidationError("latitude", latDeg, "must be within [-90, 90] deg")
	}

	return SkyCoord{lon: wrap360(lonDeg), lat: latDeg, frame: frame}, nil
}

// MustNew is like New but panics on error. Intended for fixed positions in tests.
func MustNew(lon, lat float64, unit Unit, frame Frame) SkyCoord {
	c, err := New(lon, lat, unit, frame)
	if err != nil {
		panic(err)
	}
	return c
}

// ICRSDeg creates an ICRS coordinate from right ascension and declination in degrees.
func ICRSDeg(ra, dec float64) (SkyCoord, error) {
	return New(ra, dec, Degree, ICRS)
}

// Lon returns the longitude in degrees.
func (c SkyCoord) Lon() float64 { return c.lon }

// Lat returns the latitude in degrees.
func (c SkyCoord) Lat() float64 { return c.lat }

// RA returns the right ascension in degrees.
func (c SkyCoord) RA() float64 { return c.lon }

// Dec returns the declination in degrees.
func (c SkyCoord) Dec() float64 { return c.lat }

// Frame returns the reference frame.
func (c SkyCoord) Frame() Frame { return c.frame }

// Equal reports whether two coordinates denote the same position in the same frame.
func (c SkyCoord) Equal(o SkyCoord) bool {
	return c.frame == o.frame && c.lon == o.lon && c.lat == o.lat
}

// String formats the coordinate as "<frame> (lon, lat) deg".
func (c SkyCoord) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f) deg", c.frame, c.lon, c.lat)
}

// Separation returns the great-circle distance to o in degrees.
func (c SkyCoord) Separation(o SkyCoord) (float64, error) {
	if c.frame != o.frame {
		return 0, errors.NewValidationError("frame", o.frame, fmt.Sprintf("cannot compare %s with %s", c.frame, o.frame))
	}
	lon1, lat1 := radians(c.lon), radians(c.lat)
	lon2, lat2 := radians(o.lon), radians(o.lat)

	// Vincenty formula, stable for small and antipodal separations.
	dlon := lon2 - lon1
	num1 := math.Cos(lat2) * math.Sin(dlon)
	num2 := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	den := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dlon)
	return degrees(math.Atan2(math.Hypot(num1, num2), den)), nil
}

// Mean returns the normalized vector mean of the given positions.
// All positions must share a frame.
func Mean(positions ...SkyCoord) (SkyCoord, error) {
	if len(positions) == 0 {
		return SkyCoord{}, errors.NewValidationError("positions", nil, "at least one position is required")
	}

	frame := positions[0].frame
	var x, y, z float64
	for _, p := range positions {
		if p.frame != frame {
			return SkyCoord{}, errors.NewValidationError("frame", p.frame, fmt.Sprintf("mixed frames %s and %s", frame, p.frame))
		}
		lon, lat := radians(p.lon), radians(p.lat)
		x += math.Cos(lat) * math.Cos(lon)
		y += math.Cos(lat) * math.Sin(lon)
		z += math.Sin(lat)
	}

	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return SkyCoord{}, errors.NewValidationError("positions", nil, "mean direction is undefined")
	}
	lat := degrees(math.Asin(z / r))
	lon := wrap360(degrees(math.Atan2(y, x)))
	return SkyCoord{lon: lon, lat: lat, frame: frame}, nil
}

func radians(d float64) float64 { return d * math.Pi / 180 }

func degrees(r float64) float64 { return r * 180 / math.Pi }

func wrap360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
