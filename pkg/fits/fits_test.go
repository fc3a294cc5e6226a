package fits_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/fits"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "irf.fits")
	fits.WriteTestFile(t, path,
		fits.TestTable{
			Name: "EFFECTIVE AREA",
			Rows: 1,
			Columns: []fits.Column{
				{Name: "ENERG_LO", Format: "42E", Unit: "TeV"},
				{Name: "ENERG_HI", Format: "42E", Unit: "TeV"},
				{Name: "EFFAREA", Format: "252E", Unit: "m2"},
			},
			Cards: []fits.Card{
				{Key: "HDUCLAS2", Value: "EFF_AREA"},
				{Key: "LO_THRES", Value: 0.1},
			},
		},
		fits.TestTable{
			Name:    "BACKGROUND",
			Rows:    1,
			Columns: []fits.Column{{Name: "BKG", Format: "10E", Unit: "s-1 MeV-1 sr-1"}},
		},
	)
	return path
}

func TestOpenAndNames(t *testing.T) {
	f, err := fits.Open(writeFixture(t))
	require.NoError(t, err)
	defer f.Close()

	names := f.Names()
	require.Len(t, names, 3)
	assert.Equal(t, "EFFECTIVE AREA", names[1])
	assert.Equal(t, "BACKGROUND", names[2])
}

func TestHDU(t *testing.T) {
	f, err := fits.Open(writeFixture(t))
	require.NoError(t, err)
	defer f.Close()

	hdu, err := f.HDU("effective area")
	require.NoError(t, err)
	assert.Equal(t, "EFFECTIVE AREA", hdu.Name)
	assert.True(t, hdu.IsTable)
	assert.Equal(t, int64(1), hdu.Rows)
	require.Len(t, hdu.Columns, 3)

	col, ok := hdu.Column("effarea")
	require.True(t, ok)
	assert.Equal(t, "m2", col.Unit)
	assert.Equal(t, int64(252), col.Repeat())

	assert.Equal(t, "EFF_AREA", hdu.Header.String("HDUCLAS2"))
	assert.Equal(t, "", hdu.Header.String("MISSING"))
}

func TestHDUNotFound(t *testing.T) {
	f, err := fits.Open(writeFixture(t))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.HDU("POINT SPREAD FUNCTION")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestReadHDU(t *testing.T) {
	hdu, err := fits.ReadHDU(writeFixture(t), "BACKGROUND")
	require.NoError(t, err)
	assert.Equal(t, "BKG", hdu.Columns[0].Name)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := fits.Open(filepath.Join(t.TempDir(), "missing.fits"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestColumnRepeat(t *testing.T) {
	assert.Equal(t, int64(1), fits.Column{Format: "E"}.Repeat())
	assert.Equal(t, int64(42), fits.Column{Format: "42E"}.Repeat())
	assert.Equal(t, int64(1), fits.Column{Format: ""}.Repeat())
}

func TestEncodeTestFileBlocks(t *testing.T) {
	data, err := fits.EncodeTestFile(fits.TestTable{
		Name:    "EVENTS",
		Rows:    3,
		Columns: []fits.Column{{Name: "TIME", Format: "D"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, len(data)%2880)
	assert.Equal(t, "SIMPLE  =                    T", string(data[:30]))

	_, err = fits.EncodeTestFile(fits.TestTable{
		Name:    "BAD",
		Columns: []fits.Column{{Name: "X", Format: "9Q"}},
	})
	assert.Error(t, err)
}
