// Package index implements the index command for managing the local
// observation index.
package index

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	store "github.com/gammasky/dl3kit/internal/index"
)

// NewCommand creates the index command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "index [command]",
		GroupID: "management",
		Short:   "Manage the local observation index",
		Long: `The index keeps named metadata records in a local SQLite database
(default ~/.dl3kit/index.db, see index.path in the config file).`,
		Example: `  dl3kit index add run-23523 obs_23523.yaml
  dl3kit index list
  dl3kit index stack run-23523 run-23526 --save crab-stack`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown command: %s", args[0])
		},
	}

	cmd.AddCommand(NewAddCommand(app))
	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewShowCommand(app))
	cmd.AddCommand(NewRemoveCommand(app))
	cmd.AddCommand(NewStackCommand(app))

	return cmd
}

// entryView is the JSON/YAML form of an index entry without its record.
type entryView struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Telescope []string `json:"telescope" yaml:"telescope"`
	ObsIDs    []string `json:"obs_ids" yaml:"obs_ids"`
	CreatedAt string   `json:"created_at" yaml:"created_at"`
	UpdatedAt string   `json:"updated_at" yaml:"updated_at"`
}

const viewTimeLayout = "2006-01-02T15:04:05Z07:00"

func newEntryView(e *store.Entry) entryView {
	return entryView{
		ID:        e.ID.String(),
		Name:      e.Name,
		Telescope: nonNil(e.Telescope),
		ObsIDs:    nonNil(e.ObsIDs),
		CreatedAt: e.CreatedAt.Format(viewTimeLayout),
		UpdatedAt: e.UpdatedAt.Format(viewTimeLayout),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
