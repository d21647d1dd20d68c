// Package workflow orchestrates submission evaluation using Temporal
// workflows. It defines deterministic control flow over the two stages:
// Validate → Score, coupled through the shared results file exactly as
// the standalone CLIs are.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/challenge-eval/internal/domain"
	"github.com/ahrav/challenge-eval/internal/evaluation"
)

// EvaluationReport is the workflow's aggregate result: the outcome of
// each stage, in execution order.
type EvaluationReport struct {
	Validation domain.StageOutcome `json:"validation"`
	Scoring    domain.StageOutcome `json:"scoring"`
}

// EvaluationWorkflow validates and then scores one submission. The scorer
// activity itself enforces the status-propagation contract (it reads the
// results file the validator wrote), so the workflow runs both stages
// unconditionally and an INVALID submission still completes successfully
// with scoring skipped.
func EvaluationWorkflow(
	ctx workflow.Context,
	req domain.StageRequest,
) (*EvaluationReport, error) {
	// Version gate enables safe evolution of the stage sequence.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "evaluation.v", workflow.DefaultVersion, currentVersion)

	// Validate request early to fail fast on invalid input.
	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid evaluation request",
			"Validation",
			err,
		)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var activities *evaluation.Activities

	var report EvaluationReport
	if err := workflow.ExecuteActivity(
		ctx, activities.ValidateSubmission, req,
	).Get(ctx, &report.Validation); err != nil {
		return nil, err
	}

	if err := workflow.ExecuteActivity(
		ctx, activities.ScoreSubmission, req,
	).Get(ctx, &report.Scoring); err != nil {
		return nil, err
	}

	return &report, nil
}
