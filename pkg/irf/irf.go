// Package irf reads instrument response functions stored in GADF
// multi-extension FITS files.
//
// Only the table layout is interpreted: class tag, data column, axes and
// header. Evaluating or interpolating the responses is left to callers.
package irf

import (
	"strings"

	"github.com/gammasky/dl3kit/pkg/fits"
)

// Axis is one binned dimension of an IRF table.
type Axis struct {
	Name   string
	Column string
	Interp Interp
	Unit   string
	Bins   int64
	// Edges is true when the axis is given as _LO/_HI bin edge columns.
	Edges bool
}

// Column describes the data column of an IRF table.
type Column struct {
	Name  string
	Unit  string
	Shape []int64
}

// Size returns the number of elements per row.
func (c Column) Size() int64 {
	n := int64(1)
	for _, d := range c.Shape {
		n *= d
	}
	return n
}

// Table holds the parts common to every IRF.
type Table struct {
	Class  string
	HDU    string
	Data   Column
	Axes   []Axis
	Header fits.Header
}

// IRF is implemented by every parsed response type.
type IRF interface {
	ClassTag() string
	Info() *Table
}

// ClassTag returns the class tag the table was read as.
func (t *Table) ClassTag() string { return t.Class }

// Info returns t.
func (t *Table) Info() *Table { return t }

// Axis returns the axis with the given name.
func (t *Table) Axis(name string) (Axis, bool) {
	for _, a := range t.Axes {
		if a.Name == name {
			return a, true
		}
	}
	return Axis{}, false
}

// AxisNames returns the axis names in file order.
func (t *Table) AxisNames() []string {
	names := make([]string, len(t.Axes))
	for i, a := range t.Axes {
		names[i] = a.Name
	}
	return names
}

// String returns a one-line summary such as "aeff_2d EFFAREA[m2] (energy_true x offset)".
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(t.Class)
	b.WriteString(" ")
	b.WriteString(t.Data.Name)
	if t.Data.Unit != "" {
		b.WriteString("[" + t.Data.Unit + "]")
	}
	if len(t.Axes) > 0 {
		b.WriteString(" (" + strings.Join(t.AxisNames(), " x ") + ")")
	}
	return b.String()
}

// EffectiveAreaTable2D is the effective area as a function of true energy and offset.
type EffectiveAreaTable2D struct {
	Table
}

// Background3D is the background rate in field-of-view coordinates.
type Background3D struct {
	Table
}

// EnergyDispersion2D is the migration matrix as a function of true energy and offset.
type EnergyDispersion2D struct {
	Table
}

// EnergyDependentMultiGaussPSF is a PSF parametrized by up to three Gaussians.
type EnergyDependentMultiGaussPSF struct {
	Table
	// Components holds the SIGMA_n, AMPL_n and SCALE columns found in the table.
	Components []Column
}

var (
	_ IRF = (*EffectiveAreaTable2D)(nil)
	_ IRF = (*Background3D)(nil)
	_ IRF = (*EnergyDispersion2D)(nil)
	_ IRF = (*EnergyDependentMultiGaussPSF)(nil)
)
