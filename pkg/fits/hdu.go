package fits

import (
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
)

// HDU describes one extension: its header and, for tables, its columns.
type HDU struct {
	Name    string
	Header  Header
	Columns []Column
	Rows    int64
	IsTable bool
}

// Column describes one column of a binary table.
type Column struct {
	Name   string
	Format string
	Unit   string
	Dim    []int64
}

// Repeat returns the element count encoded in the TFORM value ("42E" → 42).
// A format without a leading count has a repeat of 1.
func (c Column) Repeat() int64 {
	i := 0
	for i < len(c.Format) && c.Format[i] >= '0' && c.Format[i] <= '9' {
		i++
	}
	if i == 0 {
		return 1
	}
	n, err := strconv.ParseInt(c.Format[:i], 10, 64)
	if err != nil {
		return 1
	}
	return n
}

// Column returns the column called name (case-insensitive).
func (h *HDU) Column(name string) (Column, bool) {
	for _, c := range h.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

func newHDU(hdu fitsio.HDU) *HDU {
	out := &HDU{
		Name:   strings.TrimSpace(hdu.Name()),
		Header: headerFromFITS(hdu.Header()),
	}

	if tbl, ok := hdu.(*fitsio.Table); ok {
		out.IsTable = true
		out.Rows = tbl.NumRows()
		for _, col := range tbl.Cols() {
			out.Columns = append(out.Columns, Column{
				Name:   strings.TrimSpace(col.Name),
				Format: strings.TrimSpace(col.Format),
				Unit:   strings.TrimSpace(col.Unit),
				Dim:    col.Dim,
			})
		}
	}

	return out
}
