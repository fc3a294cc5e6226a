package index

import (
	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
)

// NewListCommand creates the index list subcommand.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List indexed records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			idx, err := app.Index()
			if err != nil {
				return err
			}
			entries, err := idx.List(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]entryView, len(entries))
			for i, e := range entries {
				views[i] = newEntryView(e)
			}
			return output.Write(cmd.OutOrStdout(), format, output.Value{Data: views, Table: table.EntriesToTableData(entries)})
		},
	}
}
