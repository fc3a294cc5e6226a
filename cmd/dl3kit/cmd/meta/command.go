// Package meta implements the meta command for validating, stacking and
// converting observation dataset metadata.
package meta

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// NewCommand creates the meta command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meta [command]",
		GroupID: "core",
		Short:   "Validate, stack and convert dataset metadata",
		Long: `Work with observation dataset metadata records stored as YAML or JSON.

Available subcommands:
  validate     - check records against the metadata schema
  stack        - merge records left to right
  header       - export a record as FITS header keywords
  from-header  - build a record from the header of a FITS extension`,
		Example: `  dl3kit meta validate obs_23523.yaml
  dl3kit meta stack obs_*.yaml -w stacked.yaml
  dl3kit meta header obs_23523.yaml
  dl3kit meta from-header events.fits --hdu EVENTS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown command: %s", args[0])
		},
	}

	cmd.AddCommand(NewValidateCommand(app))
	cmd.AddCommand(NewStackCommand(app))
	cmd.AddCommand(NewHeaderCommand(app))
	cmd.AddCommand(NewFromHeaderCommand(app))

	return cmd
}

// readAll reads one record per path, stopping at the first failure.
func readAll(paths []string) ([]*metadata.MapDatasetMetadata, error) {
	records := make([]*metadata.MapDatasetMetadata, 0, len(paths))
	for _, path := range paths {
		m, err := metadata.ReadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, nil
}
