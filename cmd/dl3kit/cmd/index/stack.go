package index

import (
	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
)

// NewStackCommand creates the index stack subcommand.
func NewStackCommand(app appcontext.Interface) *cobra.Command {
	var saveAs string

	cmd := &cobra.Command{
		Use:   "stack <name>...",
		Short: "Stack indexed records in the order given",
		Args:  cobra.MinimumNArgs(1),
		Example: `  dl3kit index stack run-23523 run-23526
  dl3kit index stack run-23523 run-23526 --save crab-stack`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			idx, err := app.Index()
			if err != nil {
				return err
			}
			stacked, err := idx.Stack(cmd.Context(), args...)
			if err != nil {
				return err
			}

			if saveAs != "" {
				id, err := idx.Put(cmd.Context(), saveAs, stacked)
				if err != nil {
					return err
				}
				app.Logger().Info().Str("name", saveAs).Str("id", id.String()).Msgf("Saved stack of %d records", len(args))
			}

			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: stacked, Table: table.MetadataToTableData(stacked)})
		},
	}

	cmd.Flags().StringVar(&saveAs, "save", "", "Store the stacked record in the index under this name")

	return cmd
}
