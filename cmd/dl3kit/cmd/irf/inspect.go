package irf

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
	"github.com/gammasky/dl3kit/pkg/irf"
)

// NewInspectCommand creates the irf inspect subcommand.
func NewInspectCommand(app appcontext.Interface) *cobra.Command {
	var showAxes bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize the IRFs stored in a file",
		Args:  cobra.ExactArgs(1),
		Example: `  dl3kit irf inspect irf_file.fits
  dl3kit irf inspect irf_file.fits --axes
  dl3kit irf inspect irf_file.fits -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			kit, err := app.Kit()
			if err != nil {
				return err
			}

			path := args[0]
			set, err := kit.LoadIRFs(cmd.Context(), path)
			if err != nil {
				return err
			}
			app.Logger().Info().Str("file", path).Msgf("Loaded %d IRFs", len(set))

			w := cmd.OutOrStdout()
			view := newFileView(path, set)
			if err := output.Write(w, format, output.Value{Data: view, Table: table.IRFSetToTableData(set)}); err != nil {
				return err
			}
			if showAxes && format == output.FormatTable {
				return writeAxes(w, set)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAxes, "axes", false, "Show the axes of every IRF (table output)")

	return cmd
}

// writeAxes prints one axes table per IRF in load order.
func writeAxes(w io.Writer, set irf.Set) error {
	for _, ext := range irf.CTAExtensions {
		resp, ok := set[ext.Key]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", resp.Info()); err != nil {
			return err
		}
		if err := output.NewFormatter(output.FormatTable).Format(w, table.AxesToTableData(resp.Info())); err != nil {
			return err
		}
	}
	return nil
}
