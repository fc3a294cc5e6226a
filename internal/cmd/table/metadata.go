package table

import (
	"github.com/gammasky/dl3kit/internal/index"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// MetadataToTableData shows a record as field/value pairs in schema order.
func MetadataToTableData(m *metadata.MapDatasetMetadata) Data {
	values := m.ToMap()
	rows := make([][]string, 0, len(metadata.Fields))
	for _, field := range metadata.Fields {
		rows = append(rows, []string{Title(field), FormatValue(values[field])})
	}
	return Data{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}
}

// HeaderToTableData shows header keywords in output order.
func HeaderToTableData(h metadata.Header) Data {
	keys := h.Keys()
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, FormatValue(h[k])})
	}
	return Data{
		Headers: []string{"Keyword", "Value"},
		Rows:    rows,
	}
}

// EntriesToTableData lists index entries.
func EntriesToTableData(entries []*index.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Name,
			FormatValue(e.Telescope),
			FormatValue(e.ObsIDs),
			e.UpdatedAt.Format("2006-01-02 15:04:05"),
			e.ID.String(),
		})
	}
	return Data{
		Headers: []string{"Name", "Telescope", "Obs IDs", "Updated", "ID"},
		Rows:    rows,
	}
}
