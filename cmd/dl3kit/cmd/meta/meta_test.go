package meta

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/fits"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

const obs1 = `telescope: cta-north
instrument: lst
obs_ids: [111]
pointing:
  radec_mean: {ra: 83.6287, dec: 22.0147, frame: icrs}
optional:
  zenith: 20
event_type: all
`

const obs2 = `telescope: cta-north
instrument: mst
obs_ids: [222]
pointing:
  radec_mean: {ra: 83.0, dec: 22.5, frame: icrs}
optional:
  zenith: 30
`

func writeRecord(t *testing.T, name, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func run(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(&appcontext.Mock{Format: format})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestStack(t *testing.T) {
	a := writeRecord(t, "a.yaml", obs1)
	b := writeRecord(t, "b.yaml", obs2)
	written := filepath.Join(t.TempDir(), "stacked.yaml")

	out, err := run(t, "json", "stack", a, b, "-w", written)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []any{"cta-north"}, got["telescope"])
	assert.Equal(t, []any{"lst", "mst"}, got["instrument"])
	assert.Equal(t, []any{"111", "222"}, got["obs_ids"])
	assert.Equal(t, "all", got["event_type"])

	back, err := metadata.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, back.ObsIDs().Items())
	assert.Len(t, back.Pointing().Items(), 2)
}

func TestStackOptionalMismatch(t *testing.T) {
	a := writeRecord(t, "a.yaml", obs1)
	b := writeRecord(t, "b.yaml", "telescope: cta-north\noptional:\n  other: 1\n")

	_, err := run(t, "json", "stack", a, b)
	require.Error(t, err)
	assert.True(t, errors.IsMergeConflict(err))
}

func TestStackTable(t *testing.T) {
	a := writeRecord(t, "a.yaml", obs1)

	out, err := run(t, "table", "stack", a)
	require.NoError(t, err)
	assert.Contains(t, out, "cta-north")
	assert.Contains(t, out, "Obs Ids")
}

func TestValidate(t *testing.T) {
	good := writeRecord(t, "good.yaml", obs1)
	bad := writeRecord(t, "bad.yaml", "telescope: cta\nbad: 1\n")

	out, err := run(t, "json", "validate", good)
	require.NoError(t, err)
	var results []result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)

	out, err = run(t, "json", "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.False(t, results[1].Valid)
	assert.Contains(t, results[1].Error, "bad")
}

func TestValidateMissingFile(t *testing.T) {
	out, err := run(t, "table", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "invalid")
}

func TestHeader(t *testing.T) {
	a := writeRecord(t, "a.yaml", obs1)

	out, err := run(t, "json", "header", a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "cta-north", got[metadata.KeyTelescope])
	assert.Equal(t, "111", got[metadata.KeyObsIDs])
	assert.InDelta(t, 83.6287, got[metadata.KeyRAPointing], 1e-9)
}

func TestHeaderMultipleValues(t *testing.T) {
	a := writeRecord(t, "a.yaml", "telescope: [cta-north, cta-south]\n")

	_, err := run(t, "json", "header", a)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestFromHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.fits")
	fits.WriteTestFile(t, path, fits.TestTable{
		Name:    "EVENTS",
		Columns: []fits.Column{{Name: "TIME", Format: "1D", Unit: "s"}},
		Rows:    1,
		Cards: []fits.Card{
			{Key: "TELESCOP", Value: "CTA"},
			{Key: "OBS_IDS", Value: 5},
		},
	})

	out, err := run(t, "json", "from-header", path, "--hdu", "EVENTS")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "CTA", got["telescope"])
	assert.Equal(t, "5", got["obs_ids"])
}

func TestFromHeaderMissingHDU(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.fits")
	fits.WriteTestFile(t, path)

	_, err := run(t, "json", "from-header", path, "--hdu", "EVENTS")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
