package irf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/fits"
)

func ctaFile(t *testing.T, omit ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "irf_file.fits")
	WriteCTATestFile(t, path, omit...)
	return path
}

func TestLoadCTAIRFs(t *testing.T) {
	path := ctaFile(t)

	set, err := LoadCTAIRFs(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, set, 4)

	aeff := set.AEff()
	require.NotNil(t, aeff)
	assert.Equal(t, ClassAEff2D, aeff.ClassTag())
	assert.Equal(t, "EFFECTIVE AREA", aeff.HDU)
	assert.Equal(t, "EFFAREA", aeff.Data.Name)
	assert.Equal(t, "m2", aeff.Data.Unit)
	assert.Equal(t, []string{"energy_true", "offset"}, aeff.AxisNames())

	energy, ok := aeff.Axis("energy_true")
	require.True(t, ok)
	assert.Equal(t, int64(TestEnergyBins), energy.Bins)
	assert.Equal(t, InterpLog, energy.Interp)
	assert.True(t, energy.Edges)
	assert.Equal(t, "TeV", energy.Unit)

	bkg := set.Bkg()
	require.NotNil(t, bkg)
	assert.Equal(t, []string{"fov_lon", "fov_lat", "energy_true"}, bkg.AxisNames())

	edisp := set.EDisp()
	require.NotNil(t, edisp)
	assert.Equal(t, []string{"energy_true", "migra", "offset"}, edisp.AxisNames())
	migra, _ := edisp.Axis("migra")
	assert.Equal(t, int64(TestMigraBins), migra.Bins)

	psf := set.PSF()
	require.NotNil(t, psf)
	assert.Equal(t, "SIGMA_1", psf.Data.Name)
	assert.Len(t, psf.Components, 6)
}

func TestLoadCTAIRFsMissingBackground(t *testing.T) {
	path := ctaFile(t, "BACKGROUND")

	set, err := LoadCTAIRFs(context.Background(), path)
	require.Error(t, err)
	assert.Nil(t, set)
	assert.True(t, errors.IsNotFound(err))

	var nf *errors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "BACKGROUND", nf.ID)
}

func TestLoadCTAIRFsCanceled(t *testing.T) {
	path := ctaFile(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set, err := LoadCTAIRFs(ctx, path)
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadTableWrongClass(t *testing.T) {
	path := ctaFile(t)

	_, err := ReadTable(path, "EFFECTIVE AREA", ClassEDisp2D)
	require.Error(t, err)
	var perr *errors.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestReadTableMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aeff.fits")
	fits.WriteTestFile(t, path, fits.TestTable{
		Name: "EFFECTIVE AREA",
		Columns: []fits.Column{
			{Name: "ENERG_LO", Format: "10E"},
			{Name: "ENERG_HI", Format: "10E"},
		},
		Rows: 1,
	})

	_, err := ReadEffectiveAreaTable2D(path, "EFFECTIVE AREA")
	require.Error(t, err)
	var perr *errors.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Message, "EFFAREA")
}

func TestAxesCenterColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psf.fits")
	fits.WriteTestFile(t, path, fits.TestTable{
		Name: "PSF_2D_TABLE",
		Columns: []fits.Column{
			{Name: "RAD", Format: "20E", Unit: "deg"},
			{Name: "THETA_LO", Format: "3E"},
			{Name: "THETA_HI", Format: "3E"},
			{Name: "RPSF", Format: "60E", Unit: "sr-1"},
		},
		Rows:  1,
		Cards: []fits.Card{{Key: "HDUCLAS2", Value: "PSF"}},
	})

	tbl, err := ReadClass(path, ClassPSFTable)
	require.NoError(t, err)
	require.Len(t, tbl.Axes, 2)
	assert.Equal(t, "rad", tbl.Axes[0].Name)
	assert.False(t, tbl.Axes[0].Edges)
	assert.Equal(t, int64(20), tbl.Axes[0].Bins)
	assert.Equal(t, []int64{60}, tbl.Data.Shape)
	assert.Equal(t, "psf_table RPSF[sr-1] (rad x offset)", tbl.String())
}

func TestReadClassUnknown(t *testing.T) {
	_, err := ReadClass("irrelevant.fits", "nope")
	assert.True(t, errors.IsValidationError(err))
}

func TestSpecificationTables(t *testing.T) {
	for tag, spec := range HDUSpecification {
		assert.NotEmpty(t, spec.HDU, tag)
		assert.NotEmpty(t, spec.Column, tag)
		assert.NotEmpty(t, spec.HDUClas2, tag)
	}
	assert.Equal(t, AxisSpec{Name: "energy_true", Interp: InterpLog}, AxesSpecification["ETRUE"])
	assert.Equal(t, "psf", MapHDUSpecification["psf_map"])

	keys := make([]string, 0, len(CTAExtensions))
	for _, ext := range CTAExtensions {
		keys = append(keys, ext.Key)
	}
	assert.Equal(t, []string{KeyAEff, KeyBkg, KeyEDisp, KeyPSF}, keys)
}

func TestColumnSize(t *testing.T) {
	assert.Equal(t, int64(24), Column{Shape: []int64{2, 3, 4}}.Size())
}
