// Package scoring computes classification metrics for validated
// submissions. Rows are aligned to the goldstandard by a left join on id
// before any metric runs, so row order never influences the result.
package scoring

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// AUCROC returns the area under the receiver-operating-characteristic
// curve for binary labels ranked by the given scores. Ties in scores are
// handled by the curve's threshold binning.
func AUCROC(labels []bool, scores []float64) float64 {
	// stat.ROC wants y ascending with classes in parallel.
	ys := make([]float64, len(scores))
	classes := make([]bool, len(labels))
	order := sortedIndexes(scores)
	for i, j := range order {
		ys[i] = scores[j]
		classes[i] = labels[j]
	}

	tpr, fpr, _ := stat.ROC(nil, ys, classes, nil)
	if len(fpr) > 1 && fpr[0] > fpr[len(fpr)-1] {
		slices.Reverse(fpr)
		slices.Reverse(tpr)
	}
	return integrate.Trapezoidal(fpr, tpr)
}

// PRCurve returns the precision-recall curve sampled at the distinct
// score values, ordered by increasing recall. The terminal point
// (recall 0, precision 1) leads the curve so it always spans recall 0.
func PRCurve(labels []bool, scores []float64) (precision, recall []float64) {
	order := sortedIndexes(scores)
	slices.Reverse(order) // highest score first

	npos := 0
	for _, l := range labels {
		if l {
			npos++
		}
	}

	precision = []float64{1}
	recall = []float64{0}

	tp, fp := 0, 0
	for i, j := range order {
		if labels[j] {
			tp++
		} else {
			fp++
		}
		// Emit a point only at threshold boundaries, i.e. where the next
		// score differs, so tied scores share one cutoff.
		if i+1 < len(order) && scores[order[i+1]] == scores[j] {
			continue
		}
		precision = append(precision, float64(tp)/float64(tp+fp))
		recall = append(recall, float64(tp)/float64(npos))
	}
	return precision, recall
}

// AUPRC returns the area under the precision-recall curve via trapezoidal
// integration over (recall, precision) pairs.
func AUPRC(labels []bool, scores []float64) float64 {
	precision, recall := PRCurve(labels, scores)
	return integrate.Trapezoidal(recall, precision)
}

// sortedIndexes returns the index permutation that orders scores ascending.
func sortedIndexes(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })
	return idx
}
