package meta

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/internal/appcontext"
	"github.com/gammasky/dl3kit/internal/cmd/output"
	"github.com/gammasky/dl3kit/internal/cmd/table"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// NewValidateCommand creates the meta validate subcommand.
func NewValidateCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check metadata records against the schema",
		Long: `Validate reads every file and reports whether it is a valid record.

All files are checked. The command fails when at least one is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			logger := app.Logger()
			results := make([]result, 0, len(args))
			failed := 0
			for _, path := range args {
				r := result{File: path, Valid: true}
				if _, err := metadata.ReadFile(path); err != nil {
					r.Valid = false
					r.Error = err.Error()
					failed++
					logger.Debug().Err(err).Str("file", path).Msg("Invalid metadata record")
				}
				results = append(results, r)
			}

			if err := output.Write(cmd.OutOrStdout(), format, output.Value{Data: results, Table: resultsTable(results)}); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d records are invalid", failed, len(args))
			}
			return nil
		},
	}
}

// result is the outcome of validating one file.
type result struct {
	File  string `json:"file" yaml:"file"`
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func resultsTable(results []result) table.Data {
	rows := make([][]string, len(results))
	for i, r := range results {
		status := "ok"
		if !r.Valid {
			status = "invalid"
		}
		rows[i] = []string{r.File, status, r.Error}
	}
	return table.Data{
		Headers: []string{"File", "Status", "Error"},
		Rows:    rows,
	}
}
