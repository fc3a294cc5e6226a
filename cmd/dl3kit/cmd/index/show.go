package index

import (
	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
)

// NewShowCommand creates the index show subcommand.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show an indexed record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			idx, err := app.Index()
			if err != nil {
				return err
			}
			entry, err := idx.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: entry.Record, Table: table.MetadataToTableData(entry.Record)})
		},
	}
}

// NewRemoveCommand creates the index remove subcommand.
func NewRemoveCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>...",
		Aliases: []string{"rm"},
		Short:   "Remove records from the index",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := app.Index()
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := idx.Delete(cmd.Context(), name); err != nil {
					return err
				}
				app.Logger().Info().Str("name", name).Msg("Removed record")
			}
			return nil
		},
	}
}
