package index

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// NewAddCommand creates the index add subcommand.
func NewAddCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Add or replace a record in the index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			record, err := metadata.ReadFile(path)
			if err != nil {
				return err
			}

			idx, err := app.Index()
			if err != nil {
				return err
			}
			id, err := idx.Put(cmd.Context(), name, record)
			if err != nil {
				return err
			}

			app.Logger().Info().Str("name", name).Str("id", id.String()).Msg("Indexed record")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return err
		},
	}
}
