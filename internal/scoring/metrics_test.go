package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAUCROC covers the ranking metric directly: perfect, inverted, and
// tied orderings.
func TestAUCROC(t *testing.T) {
	t.Run("perfect ranking", func(t *testing.T) {
		got := AUCROC([]bool{false, true}, []float64{0.1, 0.9})
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("inverted ranking", func(t *testing.T) {
		got := AUCROC([]bool{true, false}, []float64{0.1, 0.9})
		assert.InDelta(t, 0.0, got, 1e-12)
	})

	t.Run("all scores tied is chance level", func(t *testing.T) {
		got := AUCROC([]bool{true, false, true, false}, []float64{0.5, 0.5, 0.5, 0.5})
		assert.InDelta(t, 0.5, got, 1e-12)
	})

	t.Run("known mixed case", func(t *testing.T) {
		// One of four positive/negative pairs ranked correctly.
		got := AUCROC([]bool{true, false, true, false}, []float64{0.1, 0.35, 0.4, 0.8})
		assert.InDelta(t, 0.25, got, 1e-12)
	})
}

// TestPRCurve pins the curve's shape: the terminal (recall 0, precision 1)
// point leads, recall is non-decreasing, and tied scores share a cutoff.
func TestPRCurve(t *testing.T) {
	t.Run("starts at recall zero precision one", func(t *testing.T) {
		precision, recall := PRCurve([]bool{false, true}, []float64{0.2, 0.8})
		require.NotEmpty(t, precision)
		require.Equal(t, len(precision), len(recall))
		assert.Equal(t, 1.0, precision[0])
		assert.Equal(t, 0.0, recall[0])
	})

	t.Run("recall is non-decreasing", func(t *testing.T) {
		_, recall := PRCurve(
			[]bool{true, false, true, false, true},
			[]float64{0.9, 0.8, 0.7, 0.6, 0.5},
		)
		for i := 1; i < len(recall); i++ {
			assert.GreaterOrEqual(t, recall[i], recall[i-1])
		}
	})

	t.Run("tied scores collapse to one cutoff", func(t *testing.T) {
		precision, recall := PRCurve([]bool{true, false}, []float64{0.5, 0.5})
		// Leading terminal point plus a single sampled threshold.
		require.Len(t, precision, 2)
		assert.Equal(t, []float64{0, 1}, recall)
		assert.Equal(t, []float64{1, 0.5}, precision)
	})
}

// TestAUPRC covers the integrated area for simple separable cases.
func TestAUPRC(t *testing.T) {
	t.Run("perfect ranking", func(t *testing.T) {
		got := AUPRC([]bool{false, true}, []float64{0.1, 0.9})
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("known mixed case", func(t *testing.T) {
		got := AUPRC([]bool{true, false, true, false}, []float64{0.1, 0.35, 0.4, 0.8})
		assert.InDelta(t, 1.0/3.0, got, 1e-12)
	})
}
