package irf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/fits"
)

// Reader reads one IRF from the named HDU of a FITS file.
type Reader interface {
	Read(path, hdu string) (IRF, error)
}

// ReaderFunc adapts a function to a Reader.
type ReaderFunc func(path, hdu string) (IRF, error)

// Read calls f(path, hdu).
func (f ReaderFunc) Read(path, hdu string) (IRF, error) {
	return f(path, hdu)
}

// ReadEffectiveAreaTable2D reads an aeff_2d table.
func ReadEffectiveAreaTable2D(path, hdu string) (*EffectiveAreaTable2D, error) {
	t, err := ReadTable(path, hdu, ClassAEff2D)
	if err != nil {
		return nil, err
	}
	return &EffectiveAreaTable2D{Table: *t}, nil
}

// ReadBackground3D reads a bkg_3d table.
func ReadBackground3D(path, hdu string) (*Background3D, error) {
	t, err := ReadTable(path, hdu, ClassBkg3D)
	if err != nil {
		return nil, err
	}
	return &Background3D{Table: *t}, nil
}

// ReadEnergyDispersion2D reads an edisp_2d table.
func ReadEnergyDispersion2D(path, hdu string) (*EnergyDispersion2D, error) {
	t, err := ReadTable(path, hdu, ClassEDisp2D)
	if err != nil {
		return nil, err
	}
	return &EnergyDispersion2D{Table: *t}, nil
}

// ReadEnergyDependentMultiGaussPSF reads a psf_3gauss table.
func ReadEnergyDependentMultiGaussPSF(path, hdu string) (*EnergyDependentMultiGaussPSF, error) {
	h, err := fits.ReadHDU(path, hdu)
	if err != nil {
		return nil, err
	}
	t, err := tableFromHDU(path, h, ClassPSF3Gauss)
	if err != nil {
		return nil, err
	}
	psf := &EnergyDependentMultiGaussPSF{Table: *t}
	for _, c := range h.Columns {
		name := strings.ToUpper(c.Name)
		if strings.HasPrefix(name, "SIGMA_") || strings.HasPrefix(name, "AMPL_") || name == "SCALE" {
			psf.Components = append(psf.Components, dataColumn(c))
		}
	}
	return psf, nil
}

// ReadTable reads the named HDU of path as an IRF of the given class.
func ReadTable(path, hdu, class string) (*Table, error) {
	h, err := fits.ReadHDU(path, hdu)
	if err != nil {
		return nil, err
	}
	return tableFromHDU(path, h, class)
}

// ReadClass reads an IRF class from its conventional HDU.
func ReadClass(path, class string) (*Table, error) {
	spec, ok := HDUSpecification[class]
	if !ok {
		return nil, errors.NewValidationError("class", class, "unknown IRF class")
	}
	return ReadTable(path, spec.HDU, class)
}

func tableFromHDU(path string, h *fits.HDU, class string) (*Table, error) {
	spec, ok := HDUSpecification[class]
	if !ok {
		return nil, errors.NewValidationError("class", class, "unknown IRF class")
	}
	if !h.IsTable {
		return nil, errors.NewParseError("fits", path, fmt.Sprintf("HDU %q is not a binary table", h.Name), nil)
	}
	if got := strings.TrimSpace(h.Header.String("HDUCLAS2")); got != "" && !strings.EqualFold(got, spec.HDUClas2) {
		return nil, errors.NewParseError("fits", path,
			fmt.Sprintf("HDU %q has HDUCLAS2 %s, want %s for %s", h.Name, got, spec.HDUClas2, class), nil)
	}

	data, ok := h.Column(spec.Column)
	if !ok {
		return nil, errors.NewParseError("fits", path,
			fmt.Sprintf("HDU %q has no %s column", h.Name, spec.Column), nil)
	}

	return &Table{
		Class:  class,
		HDU:    h.Name,
		Data:   dataColumn(data),
		Axes:   axes(h),
		Header: h.Header,
	}, nil
}

func dataColumn(c fits.Column) Column {
	shape := slices.Clone(c.Dim)
	if len(shape) == 0 {
		shape = []int64{c.Repeat()}
	}
	return Column{Name: c.Name, Unit: c.Unit, Shape: shape}
}

// axes finds the axis columns of h in file order. A prefix is read from a
// _LO/_HI pair when both exist, otherwise from a single center column.
func axes(h *fits.HDU) []Axis {
	var out []Axis
	seen := map[string]bool{}
	for _, c := range h.Columns {
		name := strings.ToUpper(c.Name)
		prefix, edges := name, false
		if p, ok := strings.CutSuffix(name, "_LO"); ok {
			if _, hasHi := h.Column(p + "_HI"); hasHi {
				prefix, edges = p, true
			}
		}
		spec, ok := AxesSpecification[prefix]
		if !ok || seen[prefix] {
			continue
		}
		seen[prefix] = true
		out = append(out, Axis{
			Name:   spec.Name,
			Column: prefix,
			Interp: spec.Interp,
			Unit:   c.Unit,
			Bins:   c.Repeat(),
			Edges:  edges,
		})
	}
	return out
}
