// Package evaluation exposes the two pipeline stages as Temporal
// activities. A submission that fails validation or scoring is a normal,
// recorded outcome — the activity still succeeds. Activity errors are
// reserved for infrastructure problems: bad requests, goldstandard
// lookup failures, unwritable results files.
package evaluation

import (
	"context"
	"encoding/json"
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/challenge-eval/internal/domain"
	"github.com/ahrav/challenge-eval/internal/runner"
	pkgactivity "github.com/ahrav/challenge-eval/pkg/activity"
	"github.com/ahrav/challenge-eval/pkg/events"
)

// Activities handles the stage-specific Temporal activities for
// submission evaluation. Both activities delegate to the runner drivers
// so the CLI and orchestrated paths share one implementation.
type Activities struct {
	pkgactivity.BaseActivities
}

// NewActivities creates evaluation activities with the provided base
// infrastructure for logging and event emission.
func NewActivities(base pkgactivity.BaseActivities) *Activities {
	return &Activities{BaseActivities: base}
}

// ValidateSubmission runs the validation stage and records the outcome in
// the shared results file. The returned outcome mirrors the recorded
// fields so the workflow can branch without re-reading the file.
func (a *Activities) ValidateSubmission(
	ctx context.Context,
	req domain.StageRequest,
) (*domain.StageOutcome, error) {
	wfCtx := a.GetWorkflowContext(ctx)
	pkgactivity.SafeLog(ctx, "Starting ValidateSubmission activity",
		"workflow_id", wfCtx.WorkflowID,
		"predictions_file", req.PredictionsFile)

	outcome, err := runner.RunValidation(req)
	if err != nil {
		return nil, classify("ValidateSubmission", err)
	}

	a.emitOutcome(ctx, events.TypeValidationCompleted, "validation-activity", outcome)
	return outcome, nil
}

// ScoreSubmission runs the scoring stage against the record the
// validation stage left behind. Skipped scoring (prior INVALID status)
// and data-caused scoring failures are successful activity executions
// with an INVALID outcome.
func (a *Activities) ScoreSubmission(
	ctx context.Context,
	req domain.StageRequest,
) (*domain.StageOutcome, error) {
	wfCtx := a.GetWorkflowContext(ctx)
	pkgactivity.SafeLog(ctx, "Starting ScoreSubmission activity",
		"workflow_id", wfCtx.WorkflowID,
		"predictions_file", req.PredictionsFile)

	outcome, err := runner.RunScoring(req)
	if err != nil {
		return nil, classify("ScoreSubmission", err)
	}

	a.emitOutcome(ctx, events.TypeScoringCompleted, "scoring-activity", outcome)
	return outcome, nil
}

// emitOutcome publishes a best-effort stage-completion event.
func (a *Activities) emitOutcome(
	ctx context.Context,
	eventType, source string,
	outcome *domain.StageOutcome,
) {
	payload, err := json.Marshal(outcome)
	if err != nil {
		pkgactivity.SafeLogError(ctx, "Failed to marshal outcome event", "error", err)
		return
	}
	a.EmitEventSafe(ctx, events.NewEnvelope(eventType, source, payload), eventType)
}

// classify maps driver errors onto Temporal retry semantics. Request and
// goldstandard problems cannot succeed on retry; everything else (file
// system hiccups) is left retryable.
func classify(tag string, err error) error {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return temporal.NewNonRetryableApplicationError("invalid stage request", tag, err)
	}
	if errors.Is(err, domain.ErrGoldstandardLookup) {
		return temporal.NewNonRetryableApplicationError("goldstandard lookup failed", tag, err)
	}
	return err
}
