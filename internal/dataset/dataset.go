// Package dataset loads the tabular inputs for the evaluation pipeline.
// It enforces the strict column/dtype discipline both stages share: the
// goldstandard file carries (id string, disease int) and a predictions
// file carries (id string, probability float64). Extra columns are
// ignored; missing or untypeable required columns are schema errors.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ahrav/challenge-eval/internal/domain"
)

// predictionSchema is the human-readable schema included in schema-error
// messages so submitters can fix their file without reading docs.
const predictionSchema = "{'id': str, 'probability': float}"

// FindGoldstandard returns the single file inside folder. Anything other
// than exactly one entry is a process-level error: the goldstandard is
// operator-supplied, so a malformed folder means the evaluation harness
// itself is misconfigured, not the submission.
func FindGoldstandard(folder string) (string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGoldstandardLookup, err)
	}
	if len(entries) != 1 {
		return "", fmt.Errorf(
			"%w: expected exactly one goldstandard file in %q, got %d",
			domain.ErrGoldstandardLookup, folder, len(entries),
		)
	}
	return filepath.Join(folder, entries[0].Name()), nil
}

// LoadGoldstandard reads the goldstandard CSV. Failures here are not
// submission errors; the caller decides whether they abort the process
// (validation) or are recorded against the run (scoring).
func LoadGoldstandard(path string) ([]domain.GoldRecord, error) {
	rows, idx, err := readCSV(path, "id", "disease")
	if err != nil {
		return nil, err
	}

	records := make([]domain.GoldRecord, 0, len(rows))
	for i, row := range rows {
		disease, err := strconv.Atoi(strings.TrimSpace(row[idx[1]]))
		if err != nil {
			return nil, domain.NewDataError(
				domain.KindSchemaMismatch,
				fmt.Sprintf("goldstandard row %d: disease %q is not an integer", i+1, row[idx[1]]),
				err,
			)
		}
		records = append(records, domain.GoldRecord{ID: row[idx[0]], Disease: disease})
	}
	return records, nil
}

// LoadPredictions reads a predictions CSV with round-trip float precision
// (strconv.ParseFloat, never a lossy reparse). An empty probability cell
// loads as NaN so the null check can flag it; any other unparseable value
// is a schema error naming the expected schema.
func LoadPredictions(path string) ([]domain.PredictionRecord, error) {
	rows, idx, err := readCSV(path, "id", "probability")
	if err != nil {
		return nil, err
	}

	records := make([]domain.PredictionRecord, 0, len(rows))
	for i, row := range rows {
		cell := strings.TrimSpace(row[idx[1]])
		prob := math.NaN()
		if cell != "" {
			prob, err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, domain.NewDataError(
					domain.KindSchemaMismatch,
					fmt.Sprintf("row %d: probability %q is not a float. Expecting: %s", i+1, cell, predictionSchema),
					err,
				)
			}
		}
		records = append(records, domain.PredictionRecord{ID: row[idx[0]], Probability: prob})
	}
	return records, nil
}

// LeftJoin aligns predictions to the goldstandard's row order, mirroring
// a left join on id. Predictions for unknown ids are dropped; goldstandard
// ids with no prediction get a NaN probability. When an id appears more
// than once in preds, the first occurrence wins: duplicates never pass
// validation, so by the time a scored join sees them only one row per
// goldstandard id is wanted. Row order is fixed by the goldstandard so
// metric inputs are deterministic.
func LeftJoin(gold []domain.GoldRecord, preds []domain.PredictionRecord) []domain.PredictionRecord {
	byID := make(map[string]float64, len(preds))
	for _, p := range preds {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p.Probability
		}
	}

	joined := make([]domain.PredictionRecord, len(gold))
	for i, g := range gold {
		prob, ok := byID[g.ID]
		if !ok {
			prob = math.NaN()
		}
		joined[i] = domain.PredictionRecord{ID: g.ID, Probability: prob}
	}
	return joined
}

// readCSV loads all rows of a CSV and resolves the positions of the two
// required columns. The returned idx holds the column indexes of col1 and
// col2 in that order. A missing header or missing required column is a
// schema error; unreadable files are plain I/O errors.
func readCSV(path string, col1, col2 string) (rows [][]string, idx [2]int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, idx, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, idx, domain.NewDataError(
			domain.KindSchemaMismatch,
			fmt.Sprintf("missing header row. Expecting columns %q and %q", col1, col2),
			err,
		)
	}

	idx = [2]int{-1, -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case col1:
			idx[0] = i
		case col2:
			idx[1] = i
		}
	}
	if idx[0] < 0 || idx[1] < 0 {
		return nil, idx, domain.NewDataError(
			domain.KindSchemaMismatch,
			fmt.Sprintf("invalid column names %v. Expecting columns %q and %q", header, col1, col2),
			nil,
		)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, idx, domain.NewDataError(
				domain.KindSchemaMismatch,
				fmt.Sprintf("malformed CSV row in %s", filepath.Base(path)),
				err,
			)
		}
		rows = append(rows, row)
	}
	return rows, idx, nil
}
