package selection

import (
	"math"

	"github.com/sthascelik/stepwise/core/frame"
	"github.com/sthascelik/stepwise/pkg/log"
	"github.com/sthascelik/stepwise/preprocessing"
	"github.com/sthascelik/stepwise/regression"
)

// Backward performs backward stepwise elimination: starting from the full
// model, each round removes the least significant variable (highest
// p-value above the significance level) and refits. When a criterion
// gates the run, a refit that is strictly worse than the pre-elimination
// model regains the just-eliminated variable: the elimination is reverted
// and the pre-elimination column set is returned.
//
// The intercept is never a candidate for elimination. X may contain
// categorical columns; they are encoded before elimination starts. A fit
// failure aborts the run with an error.
func Backward(X *frame.Frame, y []float64, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	if err := validateInputs(X, y, o); err != nil {
		return nil, err
	}
	enc, err := preprocessing.EncodeVarchar(X, o.Varchar)
	if err != nil {
		return nil, err
	}
	return backwardEncoded(enc, y, o)
}

func backwardEncoded(enc *frame.Frame, y []float64, o Options) (*Result, error) {
	logger := o.Logger.With(log.ComponentKey, "backward")
	iterLog := &IterationLog{}

	work := enc.Clone()
	lastEliminated := ""
	var prevColumns []string // column set before the last elimination

	cur, err := fitSubset(work, work.Columns(), y, o.Model)
	if err != nil {
		return nil, err
	}
	incumbent, gated := o.Criterion.value(cur, o.Model)
	appendSummary(iterLog, 0, cur, incumbent, gated)

	maxRounds := enc.NumCols()
	for round := 0; round < maxRounds; round++ {
		if round > 0 {
			reduced, err := fitSubset(work, work.Columns(), y, o.Model)
			if err != nil {
				return nil, err
			}
			reducedValue, _ := o.Criterion.value(reduced, o.Model)
			if gated && o.Criterion.better(incumbent, reducedValue) {
				// Removing lastEliminated made the fit worse: revert the
				// elimination and stop with the pre-elimination model.
				appendSummary(iterLog, round, reduced, reducedValue, gated)
				iterLog.append(Record{
					Round:    round,
					Kind:     RecordRegained,
					Variable: lastEliminated,
				})
				appendSummary(iterLog, round, cur, incumbent, gated)
				logger.Info("Variable regained, stopping",
					log.OperationKey, log.OperationSelect,
					log.RoundKey, round,
					log.VariableKey, lastEliminated,
					log.CriterionKey, reducedValue,
				)
				return &Result{Columns: prevColumns, Log: iterLog}, nil
			}
			cur = reduced
			if gated {
				incumbent = reducedValue
			}
			appendSummary(iterLog, round, cur, reducedValue, gated)
		}

		// Least significant retained variable; the intercept is exempt.
		maxName := ""
		maxP := math.Inf(-1)
		for _, name := range work.Columns() {
			if name == frame.InterceptColumn {
				continue
			}
			if p, ok := cur.PValue(name); ok && p > maxP {
				maxName = name
				maxP = p
			}
		}

		if maxName == "" || maxP <= o.SignificanceLevel {
			iterLog.append(Record{Round: round, Kind: RecordStopped, Reason: StopAllSignificant})
			logger.Info("All remaining variables significant, stopping",
				log.OperationKey, log.OperationSelect,
				log.RoundKey, round,
			)
			break
		}

		prevColumns = work.Columns()
		work.Drop(maxName)
		lastEliminated = maxName
		iterLog.append(Record{
			Round:    round,
			Kind:     RecordEliminated,
			Variable: maxName,
			PValue:   maxP,
		})
		logger.Info("Variable eliminated",
			log.OperationKey, log.OperationSelect,
			log.RoundKey, round,
			log.VariableKey, maxName,
			log.PValueKey, maxP,
		)
	}

	finalValue, _ := o.Criterion.value(cur, o.Model)
	appendSummary(iterLog, -1, cur, finalValue, gated)
	logger.Info("Selection finished",
		log.OperationKey, log.OperationSelect,
		log.FeaturesKey, work.NumCols(),
	)
	return &Result{Columns: work.Columns(), Log: iterLog}, nil
}

func appendSummary(l *IterationLog, round int, f *regression.Fit, value float64, gated bool) {
	if !gated {
		value = math.NaN()
	}
	l.append(Record{
		Round:     round,
		Kind:      RecordSummary,
		Criterion: value,
		AIC:       f.AIC,
		BIC:       f.BIC,
		Summary:   f.Summary(),
	})
}
