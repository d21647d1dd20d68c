// Package results manages the JSON results file that couples the two
// pipeline stages. The file is a flat JSON object; each stage reads the
// current record, overlays its own fields, and rewrites the whole file.
// The read-merge-write is deliberately non-atomic: the orchestrator runs
// the stages sequentially and nothing else writes the file.
package results

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"

	"github.com/ahrav/challenge-eval/internal/domain"
)

// Record is the mutable key-value form of the results file. Keys a stage
// does not touch survive the merge, so validation fields written by the
// first stage remain intact after scoring rewrites the file.
type Record map[string]any

// Blank returns a fresh record with empty validation fields, the starting
// point when the results file is absent or unparseable.
func Blank() Record {
	return Record{
		domain.KeyValidationStatus: "",
		domain.KeyValidationErrors: "",
	}
}

// Load reads the record at path. Absence and corrupt JSON are tolerated
// by design (the scorer may legitimately run before the validator) and
// yield a blank record instead of an error.
func Load(path string) Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blank()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Blank()
	}
	return rec
}

// Merge overlays the given fields onto the record. Same-name keys are
// overwritten; everything else is retained.
func (r Record) Merge(overlay Record) {
	maps.Copy(r, overlay)
}

// Write serializes the record and overwrites path.
func (r Record) Write(path string) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal results record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results file: %w", err)
	}
	return nil
}

// ValidationStatus returns the recorded validation status, or the empty
// string when the field is absent or not a string.
func (r Record) ValidationStatus() string {
	s, _ := r[domain.KeyValidationStatus].(string)
	return s
}
