package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultOutputFile is the results file path used when none is supplied.
const DefaultOutputFile = "results.json"

// StageRequest carries the inputs common to both pipeline stages. The
// same request shape is bound from CLI flags and passed through the
// Temporal workflow to the stage activities.
type StageRequest struct {
	// PredictionsFile is the path to the submitted predictions CSV. A
	// path containing "INVALID" is the orchestrator's sentinel for a
	// submission that already failed upstream; its contents are treated
	// verbatim as the validation error text.
	PredictionsFile string `json:"predictions_file" validate:"required"`

	// GoldstandardFolder is the directory holding exactly one
	// goldstandard CSV.
	GoldstandardFolder string `json:"goldstandard_folder" validate:"required"`

	// OutputFile is the shared results JSON file. Defaults to
	// DefaultOutputFile when empty.
	OutputFile string `json:"output_file"`
}

// BindFlags registers the stage flags shared by the validate and score
// binaries onto fs, storing values into the receiver.
func (r *StageRequest) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&r.PredictionsFile, "predictions_file", "p", "",
		"Path to the prediction file.")
	fs.StringVarP(&r.GoldstandardFolder, "goldstandard_folder", "g", "",
		"Path to the folder containing the goldstandard file.")
	fs.StringVarP(&r.OutputFile, "output_file", "o", DefaultOutputFile,
		"Path to save the results JSON file.")
}

// Validate checks required fields and applies the default output path.
// Mutating the receiver keeps the defaulting in one place for CLI and
// workflow callers alike.
func (r *StageRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if r.OutputFile == "" {
		r.OutputFile = DefaultOutputFile
	}
	return nil
}
