package metadata

import (
	"github.com/agentstation/utc"

	"github.com/gammasky/dl3kit/pkg/constants"
)

// CreatorVersion is appended to the creator name of new records.
// The CLI sets it from its build version.
var CreatorVersion = "dev"

// Creation records which software produced a record and when.
type Creation struct {
	Creator string
	Date    utc.Time
	Origin  string
}

// DefaultCreation returns provenance for a record created now by dl3kit.
func DefaultCreation() Creation {
	return Creation{
		Creator: constants.AppName + " " + CreatorVersion,
		Date:    utc.Now(),
	}
}

func (c Creation) toMap() map[string]any {
	out := map[string]any{"creator": c.Creator}
	if !c.Date.IsZero() {
		out["date"] = c.Date.Format(dateLayout)
	}
	if c.Origin != "" {
		out["origin"] = c.Origin
	}
	return out
}
