// Package runner hosts the top-level drivers for the two pipeline stages.
// Each driver is a one-shot batch operation: read the inputs, decide a
// status, overwrite the shared results file, and hand the outcome back to
// the caller (CLI or Temporal activity) for its final status echo.
//
// Status propagation contract: validation writes validation_status and
// validation_errors; scoring reads validation_status, refuses to compute
// metrics when it is INVALID, and merges score_status, score_errors and
// metric fields into the existing record without disturbing the
// validation fields.
package runner

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ahrav/challenge-eval/internal/dataset"
	"github.com/ahrav/challenge-eval/internal/domain"
	"github.com/ahrav/challenge-eval/internal/results"
	"github.com/ahrav/challenge-eval/internal/scoring"
	"github.com/ahrav/challenge-eval/internal/validation"
)

// Fixed messages recorded by the scoring stage. The text is part of the
// submitter-facing contract; changing it breaks downstream notifications.
const (
	msgNotEvaluated = "Submission could not be evaluated due to validation errors."
	msgScoringError = "Error encountered during scoring; submission not evaluated."

	msgNoValidation = "Validation results not found. Proceeding with scoring but results may be inaccurate."
)

// invalidSentinel marks a predictions path whose file holds upstream
// error text instead of predictions.
const invalidSentinel = "INVALID"

// RunValidation executes the validation stage and overwrites the results
// file with a fresh {validation_status, validation_errors} record.
//
// A predictions path containing the INVALID sentinel means a prior stage
// already rejected the submission; its contents are used verbatim as the
// error text and no checks run. Goldstandard lookup or load failures are
// returned as errors and abort the stage.
func RunValidation(req domain.StageRequest) (*domain.StageOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var errs []string
	if strings.Contains(req.PredictionsFile, invalidSentinel) {
		data, err := os.ReadFile(req.PredictionsFile)
		if err != nil {
			return nil, fmt.Errorf("read sentinel predictions file: %w", err)
		}
		errs = []string{string(data)}
	} else {
		goldFile, err := dataset.FindGoldstandard(req.GoldstandardFolder)
		if err != nil {
			return nil, err
		}
		errs, err = validation.Validate(goldFile, req.PredictionsFile)
		if err != nil {
			return nil, err
		}
	}

	reasons := strings.Join(errs, "\n")
	status := domain.ValidationPassed
	if reasons != "" {
		status = domain.ValidationFailed
	}
	reasons = validation.TruncateErrors(reasons)

	rec := results.Record{
		domain.KeyValidationStatus: string(status),
		domain.KeyValidationErrors: reasons,
	}
	if err := rec.Write(req.OutputFile); err != nil {
		return nil, err
	}

	slog.Info("validation complete",
		"status", status,
		"error_count", len(errs),
		"output_file", req.OutputFile)

	return &domain.StageOutcome{Status: string(status), Errors: reasons}, nil
}

// RunScoring executes the scoring stage against the record the validator
// left behind, then merges its own fields into that record and rewrites
// the file.
//
// The SCORED status is only ever assigned on the exact path where metric
// computation returned without error; every other path records INVALID.
func RunScoring(req domain.StageRequest) (*domain.StageOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := results.Load(req.OutputFile)
	if rec.ValidationStatus() == "" {
		// Scoring without a validation record is allowed but suspect
		// (duplicate or missing predictions would skew the metrics).
		fmt.Println(msgNoValidation)
	}

	outcome := &domain.StageOutcome{}
	overlay := results.Record{}

	if rec.ValidationStatus() == string(domain.ValidationFailed) {
		outcome.Status = string(domain.ScoreFailed)
		outcome.Errors = msgNotEvaluated
	} else {
		goldFile, err := dataset.FindGoldstandard(req.GoldstandardFolder)
		if err != nil {
			return nil, err
		}

		metrics, err := scoring.Score(goldFile, req.PredictionsFile)
		switch {
		case err == nil:
			outcome.Status = string(domain.Scored)
			outcome.Metrics = metrics
			for name, value := range metrics {
				overlay[name] = value
			}
		default:
			de, ok := domain.IsDataError(err)
			if !ok {
				return nil, err
			}
			outcome.Status = string(domain.ScoreFailed)
			outcome.Errors = msgScoringError
			fmt.Printf("Error encountered: %v\n", de)
		}
	}

	overlay[domain.KeyScoreStatus] = outcome.Status
	overlay[domain.KeyScoreErrors] = outcome.Errors
	rec.Merge(overlay)
	if err := rec.Write(req.OutputFile); err != nil {
		return nil, err
	}

	slog.Info("scoring complete",
		"status", outcome.Status,
		"output_file", req.OutputFile)

	return outcome, nil
}
