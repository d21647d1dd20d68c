package scoring

import (
	"fmt"

	"github.com/ahrav/challenge-eval/internal/dataset"
	"github.com/ahrav/challenge-eval/internal/domain"
)

// Score loads the goldstandard and predictions with the same strict
// schema discipline as validation, aligns them by a left join on id, and
// returns the metric map {auc_roc, auprc}.
//
// Errors are tagged domain.DataError values for every condition caused by
// the submission or by skipped validation (schema mismatch, null
// probabilities after the join, single-class labels). Callers record
// those against the run; any other error is an infrastructure failure.
func Score(goldFile, predFile string) (map[string]float64, error) {
	preds, err := dataset.LoadPredictions(predFile)
	if err != nil {
		return nil, err
	}
	gold, err := dataset.LoadGoldstandard(goldFile)
	if err != nil {
		return nil, err
	}
	if len(gold) == 0 {
		return nil, domain.NewDataError(domain.KindMissingData, "goldstandard has no rows", nil)
	}

	joined := dataset.LeftJoin(gold, preds)

	labels := make([]bool, len(gold))
	scores := make([]float64, len(gold))
	pos := 0
	for i, g := range gold {
		if joined[i].IsNull() {
			// Validation would have caught this; hitting it here means the
			// scorer ran against an unvalidated or mismatched submission.
			return nil, domain.NewDataError(
				domain.KindMissingData,
				fmt.Sprintf("no probability for goldstandard ID %q", g.ID),
				nil,
			)
		}
		labels[i] = g.Disease != 0
		if labels[i] {
			pos++
		}
		scores[i] = joined[i].Probability
	}

	if pos == 0 || pos == len(labels) {
		return nil, domain.NewDataError(
			domain.KindDegenerateLabels,
			"goldstandard labels contain a single class; AUC is undefined",
			nil,
		)
	}

	return map[string]float64{
		domain.MetricAUCROC: AUCROC(labels, scores),
		domain.MetricAUPRC:  AUPRC(labels, scores),
	}, nil
}
