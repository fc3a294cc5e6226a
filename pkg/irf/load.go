package irf

import (
	"context"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/logging"
)

// Keys of the set returned by LoadCTAIRFs.
const (
	KeyAEff  = "aeff"
	KeyBkg   = "bkg"
	KeyEDisp = "edisp"
	KeyPSF   = "psf"
)

// Extension binds a set key to the HDU it is read from.
type Extension struct {
	Key    string
	HDU    string
	Reader Reader
}

// CTAExtensions lists the extensions of a CTA IRF file in load order.
var CTAExtensions = []Extension{
	{KeyAEff, "EFFECTIVE AREA", ReaderFunc(func(path, hdu string) (IRF, error) {
		return ReadEffectiveAreaTable2D(path, hdu)
	})},
	{KeyBkg, "BACKGROUND", ReaderFunc(func(path, hdu string) (IRF, error) {
		return ReadBackground3D(path, hdu)
	})},
	{KeyEDisp, "ENERGY DISPERSION", ReaderFunc(func(path, hdu string) (IRF, error) {
		return ReadEnergyDispersion2D(path, hdu)
	})},
	{KeyPSF, "POINT SPREAD FUNCTION", ReaderFunc(func(path, hdu string) (IRF, error) {
		return ReadEnergyDependentMultiGaussPSF(path, hdu)
	})},
}

// Set maps extension keys to parsed IRFs.
type Set map[string]IRF

// AEff returns the effective area.
func (s Set) AEff() *EffectiveAreaTable2D {
	v, _ := s[KeyAEff].(*EffectiveAreaTable2D)
	return v
}

// Bkg returns the background model.
func (s Set) Bkg() *Background3D {
	v, _ := s[KeyBkg].(*Background3D)
	return v
}

// EDisp returns the energy dispersion.
func (s Set) EDisp() *EnergyDispersion2D {
	v, _ := s[KeyEDisp].(*EnergyDispersion2D)
	return v
}

// PSF returns the point spread function.
func (s Set) PSF() *EnergyDependentMultiGaussPSF {
	v, _ := s[KeyPSF].(*EnergyDependentMultiGaussPSF)
	return v
}

// LoadCTAIRFs reads effective area, background, energy dispersion and
// PSF from a CTA IRF file. All four are required; if any fails nothing
// is returned.
func LoadCTAIRFs(ctx context.Context, path string) (Set, error) {
	return Load(ctx, path, CTAExtensions)
}

// Load reads every extension from path.
func Load(ctx context.Context, path string, extensions []Extension) (Set, error) {
	fileCtx := logging.WithFile(ctx, path)

	set := make(Set, len(extensions))
	for _, ext := range extensions {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapResource("load", "irf", path, err)
		}
		hduLogger := logging.FromContext(logging.WithHDU(fileCtx, ext.HDU))
		resp, err := ext.Reader.Read(path, ext.HDU)
		if err != nil {
			hduLogger.Debug().Err(err).Msg("Failed to read IRF")
			return nil, err
		}
		hduLogger.Debug().
			Str("key", ext.Key).
			Str("class", resp.ClassTag()).
			Msg("Read IRF")
		set[ext.Key] = resp
	}
	return set, nil
}
