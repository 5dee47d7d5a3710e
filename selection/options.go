// Package selection implements forward and backward stepwise feature
// selection for regression models.
//
// Both entry points take a raw predictor frame (numeric and categorical
// columns) and a response vector, encode the categorical columns, then
// repeatedly fit candidate models through the regression package while a
// significance filter and an optional fit criterion decide which variable
// enters or leaves. The result is the selected column names plus a
// structured iteration log:
//
//	result, err := selection.Forward(X, y,
//		selection.WithModelKind(regression.Linear),
//		selection.WithCriterion(selection.CriterionAIC),
//	)
//	if err != nil {
//		...
//	}
//	fmt.Println(result.Columns)
//	fmt.Println(result.Log)
//
// Fitting failures (collinear columns, logistic non-convergence) abort the
// run and surface as errors; stopping because no candidate passes the
// significance filter is a normal terminal state and still returns a valid
// result.
package selection

import (
	"github.com/sthascelik/stepwise/pkg/log"
	"github.com/sthascelik/stepwise/preprocessing"
	"github.com/sthascelik/stepwise/regression"
)

// Criterion selects the model-fit statistic that gates acceptance of a
// step, on top of the significance filter.
type Criterion string

const (
	// CriterionNone disables criterion gating: steps are accepted on
	// significance alone.
	CriterionNone Criterion = ""
	// CriterionAIC gates on the Akaike information criterion; lower is
	// better.
	CriterionAIC Criterion = "aic"
	// CriterionBIC gates on the Bayesian information criterion; lower is
	// better.
	CriterionBIC Criterion = "bic"
	// CriterionR2 gates on R²; higher is better. Linear models only.
	CriterionR2 Criterion = "r2"
	// CriterionAdjR2 gates on adjusted R²; higher is better. Linear
	// models only.
	CriterionAdjR2 Criterion = "adjr2"
)

// ParseCriterion maps a free-form string onto a Criterion. Any
// unrecognized value disables gating, which is the documented behavior
// for out-of-set criterion strings.
func ParseCriterion(s string) Criterion {
	switch Criterion(s) {
	case CriterionAIC, CriterionBIC, CriterionR2, CriterionAdjR2:
		return Criterion(s)
	}
	return CriterionNone
}

// value extracts the criterion statistic from a fit. ok is false when the
// criterion does not gate fits of this kind: CriterionNone never gates,
// and the R² family gates linear models only.
func (c Criterion) value(f *regression.Fit, kind regression.Kind) (float64, bool) {
	switch c {
	case CriterionAIC:
		return f.AIC, true
	case CriterionBIC:
		return f.BIC, true
	case CriterionR2:
		if kind == regression.Linear {
			return f.R2, true
		}
	case CriterionAdjR2:
		if kind == regression.Linear {
			return f.AdjR2, true
		}
	}
	return 0, false
}

// better reports whether candidate strictly improves on incumbent in this
// criterion's direction.
func (c Criterion) better(candidate, incumbent float64) bool {
	switch c {
	case CriterionAIC, CriterionBIC:
		return candidate < incumbent
	case CriterionR2, CriterionAdjR2:
		return candidate > incumbent
	}
	return true
}

// DefaultSignificanceLevel is the p-value threshold used when none is
// configured.
const DefaultSignificanceLevel = 0.05

// Options holds the configuration of one selection run. The zero value is
// not usable; use the functional options with Forward/Backward, which
// start from defaults matching the classic stepwise signature (linear
// model, AIC gating, dummy_dropfirst encoding, sl = 0.05).
type Options struct {
	Model             regression.Kind
	Criterion         Criterion
	Varchar           preprocessing.VarcharPolicy
	SignificanceLevel float64
	Logger            log.Logger
}

// Option is a functional option for Forward and Backward.
type Option func(*Options)

// WithModelKind sets the regression model family.
func WithModelKind(kind regression.Kind) Option {
	return func(o *Options) {
		o.Model = kind
	}
}

// WithCriterion sets the fit-criterion gate.
func WithCriterion(c Criterion) Option {
	return func(o *Options) {
		o.Criterion = c
	}
}

// WithVarcharPolicy sets the categorical encoding policy.
func WithVarcharPolicy(p preprocessing.VarcharPolicy) Option {
	return func(o *Options) {
		o.Varchar = p
	}
}

// WithSignificanceLevel sets the p-value threshold, a probability in
// (0, 1).
func WithSignificanceLevel(sl float64) Option {
	return func(o *Options) {
		o.SignificanceLevel = sl
	}
}

// WithLogger overrides the logger used for selection progress.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Model:             regression.Linear,
		Criterion:         CriterionAIC,
		Varchar:           preprocessing.VarcharDummyDropFirst,
		SignificanceLevel: DefaultSignificanceLevel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = log.GetLoggerWithName("selection")
	}
	return o
}

// Result is the outcome of a selection run: the selected column names in
// order (intercept always first) and the iteration log.
type Result struct {
	Columns []string
	Log     *IterationLog
}
