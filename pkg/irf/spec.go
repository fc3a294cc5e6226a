package irf

// Interp is the interpolation scale of an axis.
type Interp string

// Interpolation scales.
const (
	InterpLin Interp = "lin"
	InterpLog Interp = "log"
)

// AxisSpec names an axis and its interpolation scale.
type AxisSpec struct {
	Name   string
	Interp Interp
}

// AxesSpecification maps a GADF column prefix to the axis it describes.
var AxesSpecification = map[string]AxisSpec{
	"THETA": {Name: "offset", Interp: InterpLin},
	"ENERG": {Name: "energy_true", Interp: InterpLog},
	"ETRUE": {Name: "energy_true", Interp: InterpLog},
	"RAD":   {Name: "rad", Interp: InterpLin},
	"DETX":  {Name: "fov_lon", Interp: InterpLin},
	"DETY":  {Name: "fov_lat", Interp: InterpLin},
	"MIGRA": {Name: "migra", Interp: InterpLin},
}

// HDUSpec describes where an IRF class is stored. The HDU name is a
// convention only; GADF does not mandate it.
type HDUSpec struct {
	HDU      string
	Column   string
	HDUClas2 string
}

// Class tags.
const (
	ClassBkg3D     = "bkg_3d"
	ClassBkg2D     = "bkg_2d"
	ClassEDisp2D   = "edisp_2d"
	ClassPSFTable  = "psf_table"
	ClassPSF3Gauss = "psf_3gauss"
	ClassAEff2D    = "aeff_2d"
)

// HDUSpecification maps a class tag to its storage convention.
var HDUSpecification = map[string]HDUSpec{
	ClassBkg3D:     {HDU: "BACKGROUND", Column: "BKG", HDUClas2: "BKG"},
	ClassBkg2D:     {HDU: "BACKGROUND", Column: "BKG", HDUClas2: "BKG"},
	ClassEDisp2D:   {HDU: "ENERGY DISPERSION", Column: "MATRIX", HDUClas2: "EDISP"},
	ClassPSFTable:  {HDU: "PSF_2D_TABLE", Column: "RPSF", HDUClas2: "PSF"},
	ClassPSF3Gauss: {HDU: "POINT SPREAD FUNCTION", Column: "SIGMA_1", HDUClas2: "PSF"},
	ClassAEff2D:    {HDU: "EFFECTIVE AREA", Column: "EFFAREA", HDUClas2: "EFF_AREA"},
}

// MapHDUSpecification maps an IRF map class to the IRF kind it wraps.
var MapHDUSpecification = map[string]string{
	"edisp_kernel_map": "edisp",
	"edisp_map":        "edisp",
	"psf_map":          "psf",
}
