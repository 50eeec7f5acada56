package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rsviz/budgetflow/internal/record"
)

// DatasetStats is the payload of the stats command.
type DatasetStats struct {
	FiscalYear  int     `json:"fiscalYear"`
	Ministries  int     `json:"ministries"`
	Projects    int     `json:"projects"`
	Recipients  int     `json:"recipients"`
	TotalBudget float64 `json:"totalBudget"`
}

// NewStatsCommand creates the stats command: print dataset-level counts.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dataset summary counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			store, err := record.Open(datasetPath)
			if err != nil {
				formatter.Error(ErrCodeUnavailable, err.Error(), nil)
				return WrapExitError(ExitCommandError, "opening dataset", err)
			}
			defer store.Close()

			ds, err := store.Load(cmd.Context())
			if err != nil {
				formatter.Error(ErrCodeUnavailable, err.Error(), nil)
				return WrapExitError(ExitCommandError, "loading dataset", err)
			}

			stats := DatasetStats{
				FiscalYear:  ds.FiscalYear(),
				Ministries:  len(ds.Ministries()),
				Projects:    len(ds.Projects()),
				Recipients:  len(ds.Recipients()),
				TotalBudget: ds.TotalBudget(),
			}

			if opts.Format == "json" {
				return formatter.Success(stats)
			}
			p := message.NewPrinter(language.Japanese)
			fmt.Fprintf(formatter.Writer, "fiscal year %d\n", stats.FiscalYear)
			fmt.Fprintf(formatter.Writer, "ministries  %d\n", stats.Ministries)
			fmt.Fprintf(formatter.Writer, "projects    %d\n", stats.Projects)
			fmt.Fprintf(formatter.Writer, "recipients  %d\n", stats.Recipients)
			p.Fprintf(formatter.Writer, "budget      %v\n", int64(stats.TotalBudget))
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "path to the dataset database (required)")
	cmd.MarkFlagRequired("dataset")
	return cmd
}
