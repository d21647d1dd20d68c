package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/challenge-eval/internal/domain"
	"github.com/ahrav/challenge-eval/internal/results"
)

// setup builds a goldstandard folder, a predictions file, and a results
// path, returning a ready-to-use stage request.
func setup(t *testing.T, goldCSV, predCSV string) domain.StageRequest {
	t.Helper()
	dir := t.TempDir()

	goldDir := filepath.Join(dir, "goldstandard")
	require.NoError(t, os.Mkdir(goldDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(goldDir, "goldstandard.csv"), []byte(goldCSV), 0o644))

	predFile := filepath.Join(dir, "predictions.csv")
	require.NoError(t, os.WriteFile(predFile, []byte(predCSV), 0o644))

	return domain.StageRequest{
		PredictionsFile:    predFile,
		GoldstandardFolder: goldDir,
		OutputFile:         filepath.Join(dir, "results.json"),
	}
}

// TestPipelineEndToEnd runs both stages over a conformant submission and
// checks the full record: VALIDATED then SCORED with perfect metrics.
func TestPipelineEndToEnd(t *testing.T) {
	req := setup(t,
		"id,disease\na,0\nb,1\n",
		"id,probability\na,0.2\nb,0.8\n")

	vOut, err := RunValidation(req)
	require.NoError(t, err)
	assert.Equal(t, "VALIDATED", vOut.Status)
	assert.Equal(t, "", vOut.Errors)

	sOut, err := RunScoring(req)
	require.NoError(t, err)
	assert.Equal(t, "SCORED", sOut.Status)
	assert.InDelta(t, 1.0, sOut.Metrics[domain.MetricAUCROC], 1e-12)
	assert.InDelta(t, 1.0, sOut.Metrics[domain.MetricAUPRC], 1e-12)

	rec := results.Load(req.OutputFile)
	assert.Equal(t, "VALIDATED", rec[domain.KeyValidationStatus])
	assert.Equal(t, "", rec[domain.KeyValidationErrors])
	assert.Equal(t, "SCORED", rec[domain.KeyScoreStatus])
	assert.Equal(t, "", rec[domain.KeyScoreErrors])
	assert.InDelta(t, 1.0, rec[domain.MetricAUCROC].(float64), 1e-12)
	assert.InDelta(t, 1.0, rec[domain.MetricAUPRC].(float64), 1e-12)
}

// TestScoringSkippedAfterInvalidValidation verifies the core invariant:
// an INVALID validation status blocks metric computation entirely and the
// validation fields survive the scoring stage's rewrite untouched.
func TestScoringSkippedAfterInvalidValidation(t *testing.T) {
	req := setup(t,
		"id,disease\na,0\nb,1\n",
		"id,probability\na,0.2\nb,1.5\n") // out of range

	vOut, err := RunValidation(req)
	require.NoError(t, err)
	assert.Equal(t, "INVALID", vOut.Status)
	assert.NotEmpty(t, vOut.Errors)

	sOut, err := RunScoring(req)
	require.NoError(t, err)
	assert.Equal(t, "INVALID", sOut.Status)
	assert.Equal(t, msgNotEvaluated, sOut.Errors)
	assert.Nil(t, sOut.Metrics)

	rec := results.Load(req.OutputFile)
	assert.Equal(t, "INVALID", rec[domain.KeyValidationStatus])
	assert.Equal(t, vOut.Errors, rec[domain.KeyValidationErrors])
	assert.Equal(t, "INVALID", rec[domain.KeyScoreStatus])
	assert.Equal(t, msgNotEvaluated, rec[domain.KeyScoreErrors])
	assert.NotContains(t, rec, domain.MetricAUCROC)
	assert.NotContains(t, rec, domain.MetricAUPRC)
}

// TestValidationSentinelFile verifies the upstream-failure convention: a
// predictions path containing INVALID short-circuits the checks and its
// contents become the error text verbatim.
func TestValidationSentinelFile(t *testing.T) {
	req := setup(t, "id,disease\na,0\nb,1\n", "unused")

	sentinel := filepath.Join(t.TempDir(), "INVALID_submission.txt")
	require.NoError(t, os.WriteFile(sentinel, []byte("docker image pull failed"), 0o644))
	req.PredictionsFile = sentinel

	out, err := RunValidation(req)
	require.NoError(t, err)
	assert.Equal(t, "INVALID", out.Status)
	assert.Equal(t, "docker image pull failed", out.Errors)
}

// TestValidationErrorTruncation verifies the recorded error text honors
// the 500-character limit with the 496+ellipsis rule.
func TestValidationErrorTruncation(t *testing.T) {
	req := setup(t, "id,disease\na,0\nb,1\n", "unused")

	long := strings.Repeat("e", 600)
	sentinel := filepath.Join(t.TempDir(), "INVALID_submission.txt")
	require.NoError(t, os.WriteFile(sentinel, []byte(long), 0o644))
	req.PredictionsFile = sentinel

	out, err := RunValidation(req)
	require.NoError(t, err)
	assert.Len(t, out.Errors, 499)
	assert.True(t, strings.HasSuffix(out.Errors, "..."))

	rec := results.Load(req.OutputFile)
	assert.Len(t, rec[domain.KeyValidationErrors], 499)
}

// TestScoringWithoutValidationRecord verifies the scorer proceeds (with a
// warning) when no validation record exists, matching the tolerant-load
// contract.
func TestScoringWithoutValidationRecord(t *testing.T) {
	req := setup(t,
		"id,disease\na,0\nb,1\n",
		"id,probability\na,0.2\nb,0.8\n")

	out, err := RunScoring(req)
	require.NoError(t, err)
	assert.Equal(t, "SCORED", out.Status)
}

// TestScoringDataErrorRecorded verifies a submission-caused scoring
// failure is recorded as INVALID with the fixed message instead of
// failing the stage.
func TestScoringDataErrorRecorded(t *testing.T) {
	// Missing prediction for "b"; with no prior validation record the
	// scorer attempts the computation and hits the null after the join.
	req := setup(t,
		"id,disease\na,0\nb,1\n",
		"id,probability\na,0.2\n")

	out, err := RunScoring(req)
	require.NoError(t, err)
	assert.Equal(t, "INVALID", out.Status)
	assert.Equal(t, msgScoringError, out.Errors)

	rec := results.Load(req.OutputFile)
	assert.Equal(t, "INVALID", rec[domain.KeyScoreStatus])
	assert.Equal(t, msgScoringError, rec[domain.KeyScoreErrors])
	assert.NotContains(t, rec, domain.MetricAUCROC)
}

// TestScoringPreservesUnrelatedKeys verifies merge-not-replace semantics
// for fields other stages or tooling may have written.
func TestScoringPreservesUnrelatedKeys(t *testing.T) {
	req := setup(t,
		"id,disease\na,0\nb,1\n",
		"id,probability\na,0.2\nb,0.8\n")

	seeded := results.Record{
		domain.KeyValidationStatus: "VALIDATED",
		domain.KeyValidationErrors: "",
		"submission_id":            "s-123",
	}
	require.NoError(t, seeded.Write(req.OutputFile))

	_, err := RunScoring(req)
	require.NoError(t, err)

	rec := results.Load(req.OutputFile)
	assert.Equal(t, "s-123", rec["submission_id"])
	assert.Equal(t, "VALIDATED", rec[domain.KeyValidationStatus])
	assert.Equal(t, "SCORED", rec[domain.KeyScoreStatus])
}

// TestGoldstandardLookupIsFatal verifies folder-lookup failures abort
// both stages instead of being recorded against the submission.
func TestGoldstandardLookupIsFatal(t *testing.T) {
	req := setup(t,
		"id,disease\na,0\nb,1\n",
		"id,probability\na,0.2\nb,0.8\n")
	require.NoError(t, os.WriteFile(
		filepath.Join(req.GoldstandardFolder, "extra.csv"), []byte("id,disease\n"), 0o644))

	_, err := RunValidation(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGoldstandardLookup)

	_, err = RunScoring(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGoldstandardLookup)
}

// TestInvalidRequestRejected verifies required-field enforcement at the
// driver boundary.
func TestInvalidRequestRejected(t *testing.T) {
	_, err := RunValidation(domain.StageRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = RunScoring(domain.StageRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
