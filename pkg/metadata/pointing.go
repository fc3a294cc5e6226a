package metadata

import (
	"github.com/gammasky/dl3kit/pkg/coords"
)

// PointingInfo describes where the telescope was aimed during an observation.
type PointingInfo struct {
	// RADecMean is the mean pointing position, nil when unknown.
	RADecMean *coords.SkyCoord
}

// NewPointing returns a PointingInfo with the given mean position.
func NewPointing(radec coords.SkyCoord) PointingInfo {
	return PointingInfo{RADecMean: &radec}
}

func (p PointingInfo) toMap() map[string]any {
	if p.RADecMean == nil {
		return map[string]any{"radec_mean": nil}
	}
	return map[string]any{
		"radec_mean": map[string]any{
			"ra":    p.RADecMean.RA(),
			"dec":   p.RADecMean.Dec(),
			"frame": p.RADecMean.Frame().String(),
			"unit":  string(coords.Degree),
		},
	}
}
