// Command validate checks a submitted predictions file against the
// goldstandard and records the outcome in the shared results file.
//
// The process exits zero whenever the outcome was recorded, including for
// INVALID submissions; only infrastructure failures (goldstandard folder
// lookup, unwritable results file) exit non-zero. The final status string
// is printed to stdout for the orchestrator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahrav/challenge-eval/internal/domain"
	"github.com/ahrav/challenge-eval/internal/runner"
)

func main() {
	var req domain.StageRequest

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a predictions file in preparation for scoring",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			outcome, err := runner.RunValidation(req)
			if err != nil {
				return err
			}
			fmt.Println(outcome.Status)
			return nil
		},
	}

	req.BindFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("predictions_file")
	_ = cmd.MarkFlagRequired("goldstandard_folder")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
