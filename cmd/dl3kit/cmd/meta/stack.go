package meta

import (
	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// NewStackCommand creates the meta stack subcommand.
func NewStackCommand(app appcontext.Interface) *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "stack <file>...",
		Short: "Merge metadata records left to right",
		Long: `Stack merges records in the order given.

Telescope, instrument and observation mode keep their distinct values.
Pointings and observation IDs are concatenated. Optional keys must be the
same on every record.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  dl3kit meta stack obs_1.yaml obs_2.yaml
  dl3kit meta stack obs_*.yaml -w stacked.yaml -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			records, err := readAll(args)
			if err != nil {
				return err
			}

			kit, err := app.Kit()
			if err != nil {
				return err
			}
			stacked, err := kit.Stack(records...)
			if err != nil {
				return err
			}

			if writePath != "" {
				if err := metadata.WriteFile(writePath, stacked); err != nil {
					return err
				}
				app.Logger().Info().Str("file", writePath).Msgf("Stacked %d records", len(records))
			}

			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: stacked, Table: table.MetadataToTableData(stacked)})
		},
	}

	cmd.Flags().StringVarP(&writePath, "write", "w", "", "Also write the stacked record to this YAML file")

	return cmd
}
