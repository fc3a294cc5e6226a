package irf

import (
	"slices"
	"strings"
	"testing"

	"github.com/gammasky/dl3kit/pkg/fits"
)

// Bin counts used by the CTA test fixture.
const (
	TestEnergyBins = 42
	TestOffsetBins = 6
	TestMigraBins  = 300
	TestFOVBins    = 36
)

// CTATestTables returns the four extensions of a CTA-like IRF file with
// zero-filled data.
func CTATestTables() []fits.TestTable {
	edges := func(prefix, unit string, n int64) []fits.Column {
		format := formatOf(n)
		return []fits.Column{
			{Name: prefix + "_LO", Format: format, Unit: unit},
			{Name: prefix + "_HI", Format: format, Unit: unit},
		}
	}
	hduclas := func(clas2, clas4 string) []fits.Card {
		return []fits.Card{
			{Key: "HDUCLASS", Value: "GADF"},
			{Key: "HDUCLAS1", Value: "RESPONSE"},
			{Key: "HDUCLAS2", Value: clas2},
			{Key: "HDUCLAS3", Value: "FULL-ENCLOSURE"},
			{Key: "HDUCLAS4", Value: clas4},
			{Key: "TELESCOP", Value: "CTA"},
		}
	}

	aeffCols := slices.Concat(
		edges("ENERG", "TeV", TestEnergyBins),
		edges("THETA", "deg", TestOffsetBins),
		[]fits.Column{{Name: "EFFAREA", Format: formatOf(TestEnergyBins * TestOffsetBins), Unit: "m2",
			Dim: []int64{TestEnergyBins, TestOffsetBins}}},
	)
	bkgCols := slices.Concat(
		edges("DETX", "deg", TestFOVBins),
		edges("DETY", "deg", TestFOVBins),
		edges("ENERG", "TeV", TestEnergyBins),
		[]fits.Column{{Name: "BKG", Format: formatOf(TestFOVBins * TestFOVBins * TestEnergyBins), Unit: "s-1 MeV-1 sr-1",
			Dim: []int64{TestFOVBins, TestFOVBins, TestEnergyBins}}},
	)
	edispCols := slices.Concat(
		edges("ETRUE", "TeV", TestEnergyBins),
		edges("MIGRA", "", TestMigraBins),
		edges("THETA", "deg", TestOffsetBins),
		[]fits.Column{{Name: "MATRIX", Format: formatOf(TestEnergyBins * TestMigraBins * TestOffsetBins),
			Dim: []int64{TestEnergyBins, TestMigraBins, TestOffsetBins}}},
	)
	psfCols := slices.Concat(
		edges("ENERG", "TeV", TestEnergyBins),
		edges("THETA", "deg", TestOffsetBins),
	)
	for _, name := range []string{"SCALE", "SIGMA_1", "AMPL_2", "SIGMA_2", "AMPL_3", "SIGMA_3"} {
		unit := "deg"
		if name == "SCALE" || strings.HasPrefix(name, "AMPL") {
			unit = ""
		}
		psfCols = append(psfCols, fits.Column{
			Name: name, Format: formatOf(TestEnergyBins * TestOffsetBins), Unit: unit,
			Dim: []int64{TestEnergyBins, TestOffsetBins},
		})
	}

	return []fits.TestTable{
		{Name: "EFFECTIVE AREA", Columns: aeffCols, Rows: 1, Cards: hduclas("EFF_AREA", "AEFF_2D")},
		{Name: "POINT SPREAD FUNCTION", Columns: psfCols, Rows: 1, Cards: hduclas("PSF", "PSF_3GAUSS")},
		{Name: "ENERGY DISPERSION", Columns: edispCols, Rows: 1, Cards: hduclas("EDISP", "EDISP_2D")},
		{Name: "BACKGROUND", Columns: bkgCols, Rows: 1, Cards: hduclas("BKG", "BKG_3D")},
	}
}

// WriteCTATestFile writes a CTA-like IRF file to path, leaving out the
// named extensions.
func WriteCTATestFile(t testing.TB, path string, omit ...string) {
	t.Helper()

	var tables []fits.TestTable
	for _, tbl := range CTATestTables() {
		if slices.Contains(omit, tbl.Name) {
			continue
		}
		tables = append(tables, tbl)
	}
	fits.WriteTestFile(t, path, tables...)
}

func formatOf(n int64) string {
	return fits.FormatRepeat(n, "E")
}
