// Package regression provides the model fitters behind stepwise
// selection: ordinary least squares and binary logistic regression.
//
// Both fitters consume a fully numeric design matrix (intercept column
// included, see preprocessing.EncodeVarchar) together with the column
// names, and produce an immutable Fit carrying coefficients, standard
// errors, per-variable p-values and the information criteria the
// selectors compare.
//
// Fitting failures are fatal to the caller by contract: a singular
// design matrix or a non-converging logistic fit is returned as an error
// and aborts the surrounding selection run.
package regression

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sthascelik/stepwise/core/model"
	"github.com/sthascelik/stepwise/core/parallel"
	"github.com/sthascelik/stepwise/metrics"
	sterrors "github.com/sthascelik/stepwise/pkg/errors"
	"github.com/sthascelik/stepwise/pkg/log"
)

// Row counts below this are processed sequentially when assembling
// fitted values and residuals.
const parallelThreshold = 1000

// OLS fits ordinary least squares regression via the normal equations.
type OLS struct {
	state  *model.StateManager
	logger log.Logger
	result *Fit
	coef   *mat.VecDense
}

// NewOLS creates an untrained OLS model.
func NewOLS() *OLS {
	return &OLS{
		state: model.NewStateManager(),
		logger: log.GetLoggerWithName("regression").With(
			log.ModelNameKey, "OLS",
		),
	}
}

// Fit solves (XᵀX)β = Xᵀy and derives the inference statistics: standard
// errors from the coefficient covariance σ²(XᵀX)⁻¹, two-sided p-values
// from Student's t with n−k degrees of freedom, and the Gaussian
// log-likelihood feeding AIC and BIC.
//
// Errors:
//   - ErrEmptyData: X or y is empty
//   - DimensionError: row counts of X and y differ
//   - ErrSingularMatrix: XᵀX is not invertible (collinear columns)
//   - ValueError: fewer observations than coefficients
func (m *OLS) Fit(X mat.Matrix, names []string, y []float64) (err error) {
	defer sterrors.Recover(&err, "OLS.Fit")

	start := time.Now()
	n, k := X.Dims()
	if n == 0 || k == 0 {
		return sterrors.NewModelError("OLS.Fit", "empty data", sterrors.ErrEmptyData)
	}
	if len(y) != n {
		return sterrors.NewDimensionError("OLS.Fit", n, len(y), 0)
	}
	if len(names) != k {
		return sterrors.NewDimensionError("OLS.Fit", k, len(names), 1)
	}
	if n <= k {
		return sterrors.NewValueError("OLS.Fit", "need more observations than coefficients")
	}

	m.logger.Debug("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, k,
	)

	var XT mat.Dense
	XT.CloneFrom(X.T())

	var XTX mat.Dense
	XTX.Mul(&XT, X)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return sterrors.NewModelError("OLS.Fit", "singular design matrix", sterrors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yVec.SetVec(i, y[i])
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	coef := mat.NewVecDense(k, nil)
	coef.MulVec(&XTXInv, &XTy)

	// Fitted values and residual sum of squares.
	fitted := make([]float64, n)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(startRow, endRow int) {
		for i := startRow; i < endRow; i++ {
			var pred float64
			for j := 0; j < k; j++ {
				pred += X.At(i, j) * coef.AtVec(j)
			}
			fitted[i] = pred
		}
	})
	var rss float64
	for i := 0; i < n; i++ {
		r := y[i] - fitted[i]
		rss += r * r
	}

	df := n - k
	sigma2 := rss / float64(df)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}

	stdErr := make([]float64, k)
	tStat := make([]float64, k)
	pVal := make([]float64, k)
	coefs := make([]float64, k)
	for j := 0; j < k; j++ {
		coefs[j] = coef.AtVec(j)
		stdErr[j] = math.Sqrt(sigma2 * XTXInv.At(j, j))
		if stdErr[j] == 0 {
			// Exact fit on this coefficient. Keep p consistent with the
			// limit of the t test.
			if coefs[j] == 0 {
				tStat[j] = 0
				pVal[j] = 1
			} else {
				tStat[j] = math.Inf(sign(coefs[j]))
				pVal[j] = 0
			}
			continue
		}
		tStat[j] = coefs[j] / stdErr[j]
		pVal[j] = 2 * (1 - tDist.CDF(math.Abs(tStat[j])))
	}

	// Gaussian log-likelihood with the ML variance estimate rss/n, as
	// statsmodels reports it.
	llf := -float64(n) / 2 * (math.Log(2*math.Pi) + math.Log(rss/float64(n)) + 1)
	aic := 2*float64(k) - 2*llf
	bic := float64(k)*math.Log(float64(n)) - 2*llf

	r2, r2Err := metrics.R2Score(y, fitted)
	if r2Err != nil {
		// Constant response: R² is undefined but the fit itself stands.
		r2 = math.NaN()
	}

	m.coef = coef
	m.result = &Fit{
		Kind:     Linear,
		Names:    append([]string(nil), names...),
		Coef:     coefs,
		StdErr:   stdErr,
		Stat:     tStat,
		PVal:     pVal,
		NObs:     n,
		NParams:  k,
		LogLik:   llf,
		AIC:      aic,
		BIC:      bic,
		R2:       r2,
		AdjR2:    metrics.AdjustedR2(r2, n, k),
		PseudoR2: math.NaN(),
	}
	m.state.SetFitted()
	m.state.SetDimensions(k, n)

	m.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, k,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Result returns the statistics of the last fit.
func (m *OLS) Result() (*Fit, error) {
	if !m.state.IsFitted() {
		return nil, sterrors.NewNotFittedError("OLS", "Result")
	}
	return m.result, nil
}

// Predict returns Xβ for a design matrix with the training column count.
func (m *OLS) Predict(X mat.Matrix) ([]float64, error) {
	if !m.state.IsFitted() {
		return nil, sterrors.NewNotFittedError("OLS", "Predict")
	}
	n, k := X.Dims()
	if wantK, _ := m.state.Dimensions(); k != wantK {
		return nil, sterrors.NewDimensionError("OLS.Predict", wantK, k, 1)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var pred float64
		for j := 0; j < k; j++ {
			pred += X.At(i, j) * m.coef.AtVec(j)
		}
		out[i] = pred
	}
	return out, nil
}

// IsFitted reports whether Fit has succeeded.
func (m *OLS) IsFitted() bool { return m.state.IsFitted() }

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
