package meta

import (
	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
	"github.com/gammasky/dl3kit/pkg/fits"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// NewHeaderCommand creates the meta header subcommand.
func NewHeaderCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "header <file>",
		Short: "Export a record as FITS header keywords",
		Long: `Header converts a record to FITS header keywords.

Records holding several values for a field (stacked records, for example)
cannot be exported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			m, err := metadata.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := m.ToHeader()
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: map[string]any(h), Table: table.HeaderToTableData(h)})
		},
	}
}

// NewFromHeaderCommand creates the meta from-header subcommand.
func NewFromHeaderCommand(app appcontext.Interface) *cobra.Command {
	var hdu string

	cmd := &cobra.Command{
		Use:   "from-header <fits-file>",
		Short: "Build a record from the header of a FITS extension",
		Args:  cobra.ExactArgs(1),
		Example: `  dl3kit meta from-header events.fits
  dl3kit meta from-header events.fits --hdu EVENTS -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			ext, err := fits.ReadHDU(args[0], hdu)
			if err != nil {
				return err
			}
			m, err := metadata.FromFITSHeader(ext.Header)
			if err != nil {
				return err
			}
			app.Logger().Debug().Str("file", args[0]).Str("hdu", ext.Name).Msg("Read metadata from header")

			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: m, Table: table.MetadataToTableData(m)})
		},
	}

	cmd.Flags().StringVar(&hdu, "hdu", "PRIMARY", "Extension whose header holds the metadata")

	return cmd
}
