// Package domain defines the core types for the two-stage challenge
// evaluation pipeline: submission records, stage statuses, the shared
// results contract, and the tagged error kinds used to classify bad
// submission data.
//
// Pipeline Architecture:
//   - Validation stage: structural/content conformance checks on a
//     predictions file against the goldstandard.
//   - Scoring stage: AUC-ROC and AUPRC computation, gated on the
//     validation status recorded by the prior stage.
//   - Coupling: the two stages share only the on-disk results record;
//     there is no in-process shared state.
package domain

import "math"

// ValidationStatus reports the outcome of the validation stage.
type ValidationStatus string

// ScoreStatus reports the outcome of the scoring stage.
type ScoreStatus string

const (
	// ValidationUnknown is the zero value written before validation has run.
	ValidationUnknown ValidationStatus = ""
	// ValidationPassed indicates the submission passed every check.
	ValidationPassed ValidationStatus = "VALIDATED"
	// ValidationFailed indicates at least one check produced an error.
	ValidationFailed ValidationStatus = "INVALID"

	// ScoreFailed indicates the submission was not (or could not be) scored.
	ScoreFailed ScoreStatus = "INVALID"
	// Scored indicates metrics were computed successfully.
	Scored ScoreStatus = "SCORED"
)

// Results record field names shared by both stages. The results file is a
// flat JSON object; these keys are the full contract between validation
// and scoring.
const (
	KeyValidationStatus = "validation_status"
	KeyValidationErrors = "validation_errors"
	KeyScoreStatus      = "score_status"
	KeyScoreErrors      = "score_errors"
)

// Metric names emitted by the scoring stage.
const (
	MetricAUCROC = "auc_roc"
	MetricAUPRC  = "auprc"
)

// GoldRecord is one row of the goldstandard file. Goldstandard data is
// trusted ground truth and is never mutated by either stage.
type GoldRecord struct {
	ID      string
	Disease int
}

// PredictionRecord is one row of an externally-submitted predictions file.
// The probability is NaN when the source cell was empty; untrusted values
// are range-checked during validation, not at load time.
type PredictionRecord struct {
	ID          string
	Probability float64
}

// IsNull reports whether the prediction carries no usable probability.
func (p PredictionRecord) IsNull() bool {
	return math.IsNaN(p.Probability)
}

// StageOutcome is the in-memory result of running one stage. It mirrors
// the fields the stage wrote to the results file so orchestrated callers
// (the Temporal workflow) do not need to re-read the file.
type StageOutcome struct {
	// Status is the final status string for the stage, exactly as
	// recorded in the results file and echoed to stdout.
	Status string `json:"status"`

	// Errors is the recorded error text, empty when the stage succeeded.
	Errors string `json:"errors"`

	// Metrics holds computed metric values, present only after a
	// successful scoring stage.
	Metrics map[string]float64 `json:"metrics,omitempty"`
}
