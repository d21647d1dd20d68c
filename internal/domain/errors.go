package domain

import (
	"errors"
	"fmt"
)

// ErrGoldstandardLookup indicates the goldstandard folder did not contain
// exactly one file. This is a process-level failure: it aborts the stage
// rather than being recorded against the submission.
var ErrGoldstandardLookup = errors.New("goldstandard folder lookup failed")

// ErrInvalidRequest indicates that a stage request contains invalid data.
var ErrInvalidRequest = errors.New("invalid stage request")

// DataErrorKind classifies submission-data failures so callers can react
// by category instead of string matching. This replaces the original
// template's habit of treating one broad value-error class as "any
// malformed data".
type DataErrorKind string

const (
	// KindSchemaMismatch covers missing columns and untypeable cells.
	KindSchemaMismatch DataErrorKind = "schema_mismatch"
	// KindMissingData covers null probabilities surfacing where a value
	// was required, typically after a left join against the goldstandard.
	KindMissingData DataErrorKind = "missing_data"
	// KindOutOfRange covers probabilities outside [0, 1].
	KindOutOfRange DataErrorKind = "out_of_range"
	// KindDegenerateLabels covers goldstandard label sets with a single
	// class, for which ranking metrics are undefined.
	KindDegenerateLabels DataErrorKind = "degenerate_labels"
)

// DataError is a recoverable, submission-level failure. Stages record it
// in the results file and exit cleanly; it never aborts the process.
type DataError struct {
	Kind DataErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *DataError) Unwrap() error { return e.Err }

// NewDataError builds a tagged submission-data error.
func NewDataError(kind DataErrorKind, msg string, cause error) *DataError {
	return &DataError{Kind: kind, Msg: msg, Err: cause}
}

// IsDataError reports whether err is a submission-level data error and
// returns it when so.
func IsDataError(err error) (*DataError, bool) {
	var de *DataError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
