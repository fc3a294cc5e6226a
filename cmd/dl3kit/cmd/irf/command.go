// Package irf implements the irf command for reading instrument response
// functions from DL3 FITS files.
package irf

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
)

// NewCommand creates the irf command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "irf [command]",
		GroupID: "core",
		Short:   "Read instrument response functions",
		Long: `Read instrument response functions (IRFs) from GADF FITS files.

Each file must contain the four CTA extensions:
  EFFECTIVE AREA      - aeff_2d
  BACKGROUND          - bkg_3d
  ENERGY DISPERSION   - edisp_2d
  POINT SPREAD FUNCTION - psf_3gauss`,
		Example: `  dl3kit irf inspect irf_file.fits            # Summarize the IRFs of one file
  dl3kit irf inspect irf_file.fits --axes     # Include the axes of every IRF
  dl3kit irf batch a.fits b.fits -j 4         # Load several files concurrently`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown command: %s", args[0])
		},
	}

	cmd.AddCommand(NewInspectCommand(app))
	cmd.AddCommand(NewBatchCommand(app))

	return cmd
}
