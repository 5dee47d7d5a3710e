package metrics

import (
	"math"

	sterrors "github.com/sthascelik/stepwise/pkg/errors"
)

const logLossEps = 1e-15

// LogLoss calculates the mean binomial negative log-likelihood of
// predicted probabilities against binary targets. Probabilities are
// clamped away from 0 and 1 to keep the logarithm finite.
func LogLoss(yTrue, yProb []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, sterrors.NewModelError("metrics.LogLoss", "empty input", sterrors.ErrEmptyData)
	}
	if len(yTrue) != len(yProb) {
		return 0, sterrors.NewDimensionError("metrics.LogLoss", len(yTrue), len(yProb), 0)
	}
	var sum float64
	for i := range yTrue {
		p := yProb[i]
		if p < logLossEps {
			p = logLossEps
		} else if p > 1-logLossEps {
			p = 1 - logLossEps
		}
		sum += yTrue[i]*math.Log(p) + (1-yTrue[i])*math.Log(1-p)
	}
	return -sum / float64(len(yTrue)), nil
}

// Accuracy calculates the fraction of binary predictions matching the
// targets, thresholding probabilities at 0.5.
func Accuracy(yTrue, yProb []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, sterrors.NewModelError("metrics.Accuracy", "empty input", sterrors.ErrEmptyData)
	}
	if len(yTrue) != len(yProb) {
		return 0, sterrors.NewDimensionError("metrics.Accuracy", len(yTrue), len(yProb), 0)
	}
	var hits int
	for i := range yTrue {
		pred := 0.0
		if yProb[i] >= 0.5 {
			pred = 1.0
		}
		if pred == yTrue[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(yTrue)), nil
}
