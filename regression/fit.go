package regression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sthascelik/stepwise/pkg/log"
)

// Kind identifies the regression model family.
type Kind string

const (
	// Linear fits ordinary least squares.
	Linear Kind = "linear"
	// Logistic fits binary logistic regression.
	Logistic Kind = "logistic"
)

// ParseKind maps a free-form string onto a Kind. Unrecognized values fall
// back to Linear with a warning, preserving the lenient string surface.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case Linear, Logistic:
		return Kind(s)
	}
	log.GetLoggerWithName("regression").Warn("Unrecognized model kind, using linear",
		log.ModelNameKey, s,
	)
	return Linear
}

// FitModel fits a model of the given kind on the design matrix X (columns
// labeled by names) against y, and returns its statistics. An
// unrecognized kind logs a warning and fits linear.
func FitModel(kind Kind, X mat.Matrix, names []string, y []float64) (*Fit, error) {
	switch kind {
	case Logistic:
		m := NewLogit()
		if err := m.Fit(X, names, y); err != nil {
			return nil, err
		}
		return m.Result()
	case Linear:
	default:
		log.GetLoggerWithName("regression").Warn("Unrecognized model kind, using linear",
			log.ModelNameKey, string(kind),
		)
	}
	m := NewOLS()
	if err := m.Fit(X, names, y); err != nil {
		return nil, err
	}
	return m.Result()
}
