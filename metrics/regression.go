// Package metrics provides the fit metrics consumed by the regression
// fitters and the selection criteria.
//
// Regression metrics:
//
//   - MSE: mean squared error
//   - R2Score: coefficient of determination
//   - AdjustedR2: R² penalized for model size
//
// Classification metrics:
//
//   - LogLoss: binomial negative log-likelihood per sample
//
// All functions validate input shapes and return typed errors from
// pkg/errors rather than panicking.
package metrics

import (
	"math"

	sterrors "github.com/sthascelik/stepwise/pkg/errors"
)

// MSE calculates the mean squared error between true and predicted values.
func MSE(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, sterrors.NewModelError("metrics.MSE", "empty input", sterrors.ErrEmptyData)
	}
	if len(yTrue) != len(yPred) {
		return 0, sterrors.NewDimensionError("metrics.MSE", len(yTrue), len(yPred), 0)
	}
	var sum float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

// R2Score calculates the coefficient of determination, 1 - RSS/TSS.
// A constant response (zero total sum of squares) yields a ValueError.
func R2Score(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, sterrors.NewModelError("metrics.R2Score", "empty input", sterrors.ErrEmptyData)
	}
	if len(yTrue) != len(yPred) {
		return 0, sterrors.NewDimensionError("metrics.R2Score", len(yTrue), len(yPred), 0)
	}

	var mean float64
	for _, v := range yTrue {
		mean += v
	}
	mean /= float64(len(yTrue))

	var rss, tss float64
	for i := range yTrue {
		r := yTrue[i] - yPred[i]
		rss += r * r
		d := yTrue[i] - mean
		tss += d * d
	}
	if tss == 0 {
		return 0, sterrors.NewValueError("metrics.R2Score", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// AdjustedR2 penalizes R² for the number of fitted parameters k
// (intercept included) on n samples.
func AdjustedR2(r2 float64, n, k int) float64 {
	if n <= k {
		return math.NaN()
	}
	return 1 - (1-r2)*float64(n-1)/float64(n-k)
}
