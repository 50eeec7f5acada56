package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rsviz/budgetflow/internal/assembler"
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/view"
)

// NewBuildCommand creates the build command: assemble one envelope for the
// given view settings and print it.
func NewBuildCommand(opts *RootOptions) *cobra.Command {
	var datasetPath string
	var spec view.Spec

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build one flow graph envelope and print it",
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

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			svc := assembler.New(ds, assembler.WithLogger(logger))

			env, err := svc.Build(cmd.Context(), spec)
			if err != nil {
				var nf *selector.NotFoundError
				switch {
				case errors.As(err, &nf):
					formatter.Error(ErrCodeNotFound, nf.Error(), nil)
					return WrapExitError(ExitFailure, "target not found", err)
				case errors.Is(err, view.ErrAmbiguousTarget):
					formatter.Error(ErrCodeBadRequest, err.Error(), nil)
					return WrapExitError(ExitCommandError, "invalid view settings", err)
				default:
					formatter.Error(ErrCodeUnavailable, err.Error(), nil)
					return WrapExitError(ExitCommandError, "assembling envelope", err)
				}
			}

			if opts.Format == "json" {
				return formatter.SuccessJSON(env)
			}
			printEnvelopeText(formatter, env)
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "path to the dataset database (required)")
	cmd.MarkFlagRequired("dataset")
	cmd.Flags().IntVar(&spec.MinistryLimit, "ministry-limit", 0, "ministries to keep (0 = mode default)")
	cmd.Flags().IntVar(&spec.ProjectLimit, "project-limit", 0, "projects to keep per ministry (0 = mode default)")
	cmd.Flags().IntVar(&spec.SpendingLimit, "spending-limit", 0, "recipients to keep (0 = mode default)")
	cmd.Flags().IntVar(&spec.DrilldownLevel, "drilldown", 0, "ministry page to show")
	cmd.Flags().IntVar(&spec.ProjectDrilldownLevel, "project-drilldown", 0, "project page to show")
	cmd.Flags().StringVar(&spec.TargetMinistry, "ministry", "", "focus on one ministry by name")
	cmd.Flags().StringVar(&spec.TargetProject, "project", "", "focus on one project by name")
	cmd.Flags().StringVar(&spec.TargetRecipient, "recipient", "", "focus on one recipient by name")
	return cmd
}

func printEnvelopeText(f *OutputFormatter, env *assembler.Envelope) {
	p := message.NewPrinter(language.Japanese)
	s := env.Metadata.Summary

	fmt.Fprintf(f.Writer, "fiscal year %d, %s view\n", env.Metadata.FiscalYear, env.Metadata.ViewMode)
	fmt.Fprintf(f.Writer, "%d nodes, %d links\n", len(env.Graph.Nodes), len(env.Graph.Links))
	p.Fprintf(f.Writer, "budget     %v / %v\n", int64(s.SelectedBudget), int64(s.TotalBudget))
	fmt.Fprintf(f.Writer, "coverage   %.0f%%\n", s.CoverageRate)
	fmt.Fprintf(f.Writer, "ministries %d/%d  projects %d/%d  recipients %d/%d\n",
		s.SelectedMinistries, s.TotalMinistries,
		s.SelectedProjects, s.TotalProjects,
		s.SelectedSpendings, s.TotalSpendings,
	)
}
