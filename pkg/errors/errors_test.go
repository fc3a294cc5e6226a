package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gammasky/dl3kit/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "hdu",
			ID:       "BACKGROUND",
		}
		assert.Equal(t, `hdu "BACKGROUND" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("observation", "run-1")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("pointing", 2.0, "expected PointingInfo")
		assert.Equal(t, "validation failed for field pointing: expected PointingInfo", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty record"}
		assert.Equal(t, "validation failed: empty record", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("unknown backend")
	err := pkgerrors.NewConfigError("parallel", `backend "ray" is not supported`, base)
	assert.Contains(t, err.Error(), "parallel")
	assert.Contains(t, err.Error(), "ray")
	assert.Equal(t, base, err.Unwrap())
	assert.True(t, pkgerrors.IsConfigError(err))
}

func TestMergeError(t *testing.T) {
	t.Run("with keys", func(t *testing.T) {
		err := pkgerrors.NewMergeError("optional", []string{"zenith"}, nil)
		assert.Contains(t, err.Error(), "optional")
		assert.Contains(t, err.Error(), "zenith")
		assert.True(t, pkgerrors.IsMergeConflict(err))
	})

	t.Run("with cause", func(t *testing.T) {
		base := errors.New("incompatible")
		err := pkgerrors.NewMergeError("pointing", nil, base)
		assert.Contains(t, err.Error(), "incompatible")
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestTaskError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewTaskError("load irf", 3, base)
	assert.Equal(t, "task load irf failed on input 3: boom", err.Error())
	assert.True(t, errors.Is(err, pkgerrors.ErrTaskFailed))
	assert.True(t, errors.Is(err, base))

	anon := pkgerrors.NewTaskError("", 0, base)
	assert.Equal(t, "task failed on input 0: boom", anon.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "fits",
			File:    "irf.fits",
			Message: "missing column EFFAREA",
		}
		assert.Equal(t, "parse error in fits file irf.fits: missing column EFFAREA", err.Error())
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "header", Message: "bad card"}
		assert.Equal(t, "header parse error: bad card", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("EOF")
		wrapped := pkgerrors.WrapParse("yaml", "meta.yaml", base)
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(wrapped, &parseErr))
		assert.Equal(t, "yaml", parseErr.Format)
		assert.Equal(t, base, parseErr.Unwrap())
		assert.Nil(t, pkgerrors.WrapParse("yaml", "meta.yaml", nil))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("open", "/data/irf.fits", base)
	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Operation)
	assert.Contains(t, err.Error(), "/data/irf.fits")
	assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("load", "irf", "south.fits", pkgerrors.NewNotFoundError("hdu", "BACKGROUND"))
	assert.Contains(t, err.Error(), "load")
	assert.Contains(t, err.Error(), "south.fits")
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Nil(t, pkgerrors.WrapResource("load", "irf", "", nil))
}

func TestWrapValidation(t *testing.T) {
	err := pkgerrors.WrapValidation("obs_ids", errors.New("negative"))
	assert.Contains(t, err.Error(), "obs_ids")
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Nil(t, pkgerrors.WrapValidation("obs_ids", nil))
}
