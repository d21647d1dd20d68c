// Package validation implements the structural and content checks a
// predictions file must pass before it can be scored. The checks run in a
// fixed order and each contributes at most one error string; the exact
// text and ordering are part of the contract, since downstream tooling
// emails the aggregated message to submitters.
package validation

import (
	"fmt"
	"strings"

	"github.com/ahrav/challenge-eval/internal/dataset"
	"github.com/ahrav/challenge-eval/internal/domain"
)

// MaxErrorChars caps the aggregated error text; downstream notification
// delivery rejects longer messages. Text over the cap is cut to
// MaxErrorChars-4 characters with an appended ellipsis.
const MaxErrorChars = 500

// Validate runs the full check sequence for a submission and returns the
// collected error strings. An empty slice means the submission is valid.
//
// Check order, each appending zero or one error:
//  1. predictions load with the expected schema (failure short-circuits)
//  2. duplicate prediction ids
//  3. goldstandard ids with no prediction
//  4. prediction ids unknown to the goldstandard
//  5. null probabilities
//  6. probabilities outside [0, 1]
//
// A goldstandard load failure is returned as a non-nil error: the
// goldstandard is trusted infrastructure, so a problem with it aborts the
// stage rather than being held against the submission.
func Validate(goldFile, predFile string) ([]string, error) {
	gold, err := dataset.LoadGoldstandard(goldFile)
	if err != nil {
		return nil, fmt.Errorf("load goldstandard: %w", err)
	}

	preds, err := dataset.LoadPredictions(predFile)
	if err != nil {
		if de, ok := domain.IsDataError(err); ok {
			return []string{fmt.Sprintf("Invalid column names and/or types: %s.", de.Msg)}, nil
		}
		return nil, fmt.Errorf("load predictions: %w", err)
	}

	checks := []string{
		checkDuplicateKeys(preds),
		checkMissingKeys(gold, preds),
		checkUnknownKeys(gold, preds),
		checkNullValues(preds),
		checkValuesRange(preds),
	}

	var errs []string
	for _, msg := range checks {
		if msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs, nil
}

// TruncateErrors enforces the downstream message-size limit on joined
// error text. The limit counts characters, not bytes, so non-ASCII ids
// echoed in check messages neither shrink the budget nor get split
// mid-rune. Returns the input unchanged when it fits.
func TruncateErrors(reasons string) string {
	r := []rune(reasons)
	if len(r) > MaxErrorChars {
		return string(r[:MaxErrorChars-4]) + "..."
	}
	return reasons
}

// checkDuplicateKeys flags prediction ids that appear more than once.
func checkDuplicateKeys(preds []domain.PredictionRecord) string {
	seen := make(map[string]int, len(preds))
	var dups []string
	for _, p := range preds {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			dups = append(dups, p.ID)
		}
	}
	if len(dups) == 0 {
		return ""
	}
	return fmt.Sprintf("Found %d duplicate ID(s): %s", len(dups), strings.Join(dups, ", "))
}

// checkMissingKeys flags goldstandard ids that have no prediction.
func checkMissingKeys(gold []domain.GoldRecord, preds []domain.PredictionRecord) string {
	predIDs := make(map[string]struct{}, len(preds))
	for _, p := range preds {
		predIDs[p.ID] = struct{}{}
	}
	var missing []string
	for _, g := range gold {
		if _, ok := predIDs[g.ID]; !ok {
			missing = append(missing, g.ID)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return fmt.Sprintf("Found %d missing ID(s): %s", len(missing), strings.Join(missing, ", "))
}

// checkUnknownKeys flags prediction ids absent from the goldstandard.
func checkUnknownKeys(gold []domain.GoldRecord, preds []domain.PredictionRecord) string {
	goldIDs := make(map[string]struct{}, len(gold))
	for _, g := range gold {
		goldIDs[g.ID] = struct{}{}
	}
	var unknown []string
	seen := make(map[string]struct{}, len(preds))
	for _, p := range preds {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if _, ok := goldIDs[p.ID]; !ok {
			unknown = append(unknown, p.ID)
		}
	}
	if len(unknown) == 0 {
		return ""
	}
	return fmt.Sprintf("Found %d unknown ID(s): %s", len(unknown), strings.Join(unknown, ", "))
}

// checkNullValues flags predictions with no usable probability.
func checkNullValues(preds []domain.PredictionRecord) string {
	count := 0
	for _, p := range preds {
		if p.IsNull() {
			count++
		}
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("'probability' column contains %d NaN value(s)", count)
}

// checkValuesRange flags probabilities outside [0, 1] inclusive. Null
// values are skipped here; the null check already reported them.
func checkValuesRange(preds []domain.PredictionRecord) string {
	count := 0
	for _, p := range preds {
		if p.IsNull() {
			continue
		}
		if p.Probability < 0 || p.Probability > 1 {
			count++
		}
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("'probability' values must be between [0, 1] inclusive; found %d value(s) out of range", count)
}
