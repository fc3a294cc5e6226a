package table

import (
	"strconv"

	"github.com/gammasky/dl3kit/pkg/irf"
)

// IRFSetToTableData lists the IRFs of one file in load order.
func IRFSetToTableData(set irf.Set) Data {
	rows := make([][]string, 0, len(set))
	for _, ext := range irf.CTAExtensions {
		resp, ok := set[ext.Key]
		if !ok {
			continue
		}
		rows = append(rows, IRFRow(ext.Key, resp.Info()))
	}
	return Data{
		Headers:         []string{"Key", "Class", "HDU", "Column", "Unit", "Shape", "Axes"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// IRFRow is one table row describing t.
func IRFRow(key string, t *irf.Table) []string {
	return []string{
		key,
		t.Class,
		t.HDU,
		t.Data.Name,
		FormatValue(t.Data.Unit),
		FormatShape(t.Data.Shape),
		FormatValue(t.AxisNames()),
	}
}

// AxesToTableData lists the axes of t.
func AxesToTableData(t *irf.Table) Data {
	rows := make([][]string, 0, len(t.Axes))
	for _, a := range t.Axes {
		rows = append(rows, []string{
			a.Name,
			a.Column,
			string(a.Interp),
			FormatValue(a.Unit),
			strconv.FormatInt(a.Bins, 10),
			strconv.FormatBool(a.Edges),
		})
	}
	return Data{
		Headers:         []string{"Axis", "Column", "Interp", "Unit", "Bins", "Edges"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// BatchRow summarizes the IRFs loaded from one file.
type BatchRow struct {
	Path string
	Set  irf.Set
}

// BatchToTableData lists one row per file with the bin counts of its effective area.
func BatchToTableData(rows []BatchRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		energyBins, offsetBins := "-", "-"
		if aeff := r.Set.AEff(); aeff != nil {
			if a, ok := aeff.Axis("energy_true"); ok {
				energyBins = strconv.FormatInt(a.Bins, 10)
			}
			if a, ok := aeff.Axis("offset"); ok {
				offsetBins = strconv.FormatInt(a.Bins, 10)
			}
		}
		out = append(out, []string{r.Path, strconv.Itoa(len(r.Set)), energyBins, offsetBins})
	}
	return Data{
		Headers:         []string{"File", "IRFs", "Energy Bins", "Offset Bins"},
		Rows:            out,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}
