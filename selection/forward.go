package selection

import (
	"math"

	"github.com/sthascelik/stepwise/core/frame"
	sterrors "github.com/sthascelik/stepwise/pkg/errors"
	"github.com/sthascelik/stepwise/pkg/log"
	"github.com/sthascelik/stepwise/preprocessing"
	"github.com/sthascelik/stepwise/regression"
)

// Forward performs forward stepwise selection: starting from the
// intercept-only model, each round fits every remaining candidate on top
// of the current set and enters the one with the lowest p-value, provided
// that p-value is at or below the significance level and, when a
// criterion gates the run, the refit strictly improves the criterion.
//
// X may contain categorical columns; they are encoded according to the
// configured varchar policy before selection starts. Returns the selected
// column names (intercept always included) and the iteration log. A fit
// failure aborts the run with an error.
func Forward(X *frame.Frame, y []float64, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	if err := validateInputs(X, y, o); err != nil {
		return nil, err
	}
	enc, err := preprocessing.EncodeVarchar(X, o.Varchar)
	if err != nil {
		return nil, err
	}
	return forwardEncoded(enc, y, o)
}

func forwardEncoded(enc *frame.Frame, y []float64, o Options) (*Result, error) {
	logger := o.Logger.With(log.ComponentKey, "forward")
	iterLog := &IterationLog{}

	selected := []string{frame.InterceptColumn}
	var candidates []string
	for _, name := range enc.Columns() {
		if name != frame.InterceptColumn {
			candidates = append(candidates, name)
		}
	}

	baseFit, err := fitSubset(enc, selected, y, o.Model)
	if err != nil {
		return nil, err
	}
	incumbent, gated := o.Criterion.value(baseFit, o.Model)

	maxRounds := enc.NumCols()
	for round := 0; round < maxRounds; round++ {
		bestName := ""
		bestP := math.Inf(1)
		for _, cand := range candidates {
			f, err := fitSubset(enc, append(append([]string(nil), selected...), cand), y, o.Model)
			if err != nil {
				return nil, err
			}
			p, ok := f.PValue(cand)
			if ok && p < bestP {
				bestName = cand
				bestP = p
			}
		}

		if bestName == "" || bestP > o.SignificanceLevel {
			iterLog.append(Record{Round: round, Kind: RecordStopped, Reason: StopNoCandidate})
			logger.Info("No candidate below significance level, stopping",
				log.OperationKey, log.OperationSelect,
				log.RoundKey, round,
			)
			break
		}

		trial := append(append([]string(nil), selected...), bestName)
		f, err := fitSubset(enc, trial, y, o.Model)
		if err != nil {
			return nil, err
		}
		candValue, _ := o.Criterion.value(f, o.Model)
		if !gated {
			candValue = math.NaN()
		}

		// The entry announcement and summary are logged before the
		// criterion verdict, so a rejected candidate still leaves its
		// trace, as the classic implementation does.
		iterLog.append(Record{
			Round:    round,
			Kind:     RecordEntered,
			Variable: bestName,
			PValue:   bestP,
		})
		iterLog.append(Record{
			Round:     round,
			Kind:      RecordSummary,
			Criterion: candValue,
			AIC:       f.AIC,
			BIC:       f.BIC,
			Summary:   f.Summary(),
		})

		if gated && !o.Criterion.better(candValue, incumbent) {
			iterLog.append(Record{Round: round, Kind: RecordStopped, Reason: StopCriterion})
			logger.Info("Criterion did not improve, stopping",
				log.OperationKey, log.OperationSelect,
				log.RoundKey, round,
				log.VariableKey, bestName,
				log.CriterionKey, candValue,
			)
			break
		}

		selected = trial
		candidates = remove(candidates, bestName)
		if gated {
			incumbent = candValue
		}
		logger.Info("Variable entered",
			log.OperationKey, log.OperationSelect,
			log.RoundKey, round,
			log.VariableKey, bestName,
			log.PValueKey, bestP,
			log.CriterionKey, candValue,
		)
	}

	final, err := fitSubset(enc, selected, y, o.Model)
	if err != nil {
		return nil, err
	}
	finalValue, _ := o.Criterion.value(final, o.Model)
	if !gated {
		finalValue = math.NaN()
	}
	iterLog.append(Record{
		Round:     -1,
		Kind:      RecordSummary,
		Criterion: finalValue,
		AIC:       final.AIC,
		BIC:       final.BIC,
		Summary:   final.Summary(),
	})
	logger.Info("Selection finished",
		log.OperationKey, log.OperationSelect,
		log.FeaturesKey, len(selected),
	)
	return &Result{Columns: selected, Log: iterLog}, nil
}

func fitSubset(f *frame.Frame, names []string, y []float64, kind regression.Kind) (*regression.Fit, error) {
	X, err := f.Matrix(names)
	if err != nil {
		return nil, err
	}
	return regression.FitModel(kind, X, names, y)
}

func validateInputs(X *frame.Frame, y []float64, o Options) error {
	if X == nil || X.NumCols() == 0 || len(y) == 0 {
		return sterrors.NewModelError("selection", "empty input", sterrors.ErrEmptyData)
	}
	if X.NumRows() != len(y) {
		return sterrors.NewDimensionError("selection", X.NumRows(), len(y), 0)
	}
	if o.SignificanceLevel <= 0 || o.SignificanceLevel >= 1 {
		return sterrors.NewValueError("selection", "significance level must be in (0, 1)")
	}
	return nil
}

func remove(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
