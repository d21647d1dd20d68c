// Command score computes AUC-ROC and AUPRC for a validated submission
// and merges the metrics into the shared results file.
//
// Scoring is gated on the validation_status recorded by the validate
// stage: an INVALID submission is never scored and that fact is recorded.
// As with validate, submission-level failures exit zero; the status
// string on stdout is the orchestrator's signal.
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
		Use:   "score",
		Short: "Score predictions against the goldstandard and update the results file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			outcome, err := runner.RunScoring(req)
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
