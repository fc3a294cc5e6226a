package irf

import (
	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit"
	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/globals"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
	"github.com/gammasky/dl3kit/pkg/irf"
)

// NewBatchCommand creates the irf batch subcommand.
func NewBatchCommand(app appcontext.Interface) *cobra.Command {
	var flags *globals.ParallelFlags

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Load several IRF files on a worker pool",
		Long: `Batch loads every file with the configured worker pool.

Results are reported in input order whatever the pool settings. The
first file that fails to load aborts the batch.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  dl3kit irf batch a.fits b.fits c.fits
  dl3kit irf batch *.fits -j 8 --backend conc
  dl3kit irf batch *.fits -j 4 --method apply_async -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			cfg := flags.Apply(app.Parallel())
			kit, err := app.KitWithOptions(dl3kit.WithParallel(cfg))
			if err != nil {
				return err
			}

			logger := app.Logger()
			kit.OnIRFLoaded(func(path string, set irf.Set) {
				logger.Debug().Str("file", path).Int("irfs", len(set)).Msg("Loaded IRF file")
			})

			sets, err := kit.LoadIRFFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			rows := make([]table.BatchRow, len(sets))
			views := make([]fileView, len(sets))
			for i, set := range sets {
				rows[i] = table.BatchRow{Path: args[i], Set: set}
				views[i] = newFileView(args[i], set)
			}

			if !globals.Parse(cmd).Quiet {
				logger.Info().Int("processes", cfg.Processes).Msgf("Loaded %d files", len(sets))
			}

			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: views, Table: table.BatchToTableData(rows)})
		},
	}

	flags = globals.AddParallelFlags(cmd.Flags(), app.Parallel())

	return cmd
}
