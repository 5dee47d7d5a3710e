package regression

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sthascelik/stepwise/core/model"
	"github.com/sthascelik/stepwise/metrics"
	sterrors "github.com/sthascelik/stepwise/pkg/errors"
	"github.com/sthascelik/stepwise/pkg/log"
)

const (
	defaultLogitMaxIter = 100
	defaultLogitTol     = 1e-8
	epsilonSmall        = 1e-15
	minIRLSWeight       = 1e-10
)

// Logit fits binary logistic regression by iteratively reweighted least
// squares (Newton-Raphson on the log-likelihood).
type Logit struct {
	state  *model.StateManager
	logger log.Logger
	result *Fit
	coef   *mat.VecDense

	maxIter int
	tol     float64
}

// LogitOption is a functional option for Logit.
type LogitOption func(*Logit)

// WithLogitMaxIter sets the maximum number of IRLS iterations.
func WithLogitMaxIter(maxIter int) LogitOption {
	return func(m *Logit) {
		m.maxIter = maxIter
	}
}

// WithLogitTol sets the coefficient-change tolerance used to declare
// convergence.
func WithLogitTol(tol float64) LogitOption {
	return func(m *Logit) {
		m.tol = tol
	}
}

// NewLogit creates an untrained logistic regression model.
func NewLogit(opts ...LogitOption) *Logit {
	m := &Logit{
		state: model.NewStateManager(),
		logger: log.GetLoggerWithName("regression").With(
			log.ModelNameKey, "Logit",
		),
		maxIter: defaultLogitMaxIter,
		tol:     defaultLogitTol,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// stableSigmoid computes sigmoid(z) without overflow for large |z|.
func stableSigmoid(z float64) float64 {
	if z >= 0 {
		ez := math.Exp(-z)
		return 1.0 / (1.0 + ez)
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// clampProbability keeps p inside (0, 1) so log and 1/p stay finite.
func clampProbability(p float64) float64 {
	if p < epsilonSmall {
		return epsilonSmall
	}
	if p > 1-epsilonSmall {
		return 1 - epsilonSmall
	}
	return p
}

// Fit estimates coefficients by IRLS and derives Wald statistics: the
// coefficient covariance (XᵀWX)⁻¹ at the optimum gives standard errors,
// z statistics and normal p-values. AIC and BIC come from the binomial
// log-likelihood; PseudoR2 is McFadden's 1 − ll/ll₀.
//
// Errors:
//   - ErrEmptyData, DimensionError: as for OLS.Fit
//   - ValueError: y contains values other than 0 and 1
//   - ErrSingularMatrix: XᵀWX is not invertible
//   - ConvergenceError: iteration budget exhausted
func (m *Logit) Fit(X mat.Matrix, names []string, y []float64) (err error) {
	defer sterrors.Recover(&err, "Logit.Fit")

	start := time.Now()
	n, k := X.Dims()
	if n == 0 || k == 0 {
		return sterrors.NewModelError("Logit.Fit", "empty data", sterrors.ErrEmptyData)
	}
	if len(y) != n {
		return sterrors.NewDimensionError("Logit.Fit", n, len(y), 0)
	}
	if len(names) != k {
		return sterrors.NewDimensionError("Logit.Fit", k, len(names), 1)
	}
	for _, v := range y {
		if v != 0 && v != 1 {
			return sterrors.NewValueError("Logit.Fit", "response must be binary (0/1)")
		}
	}

	m.logger.Debug("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, k,
	)

	coef := mat.NewVecDense(k, nil)
	mu := make([]float64, n)
	eta := make([]float64, n)

	var cov mat.Dense
	converged := false

	for iter := 0; iter < m.maxIter; iter++ {
		// eta = Xβ, mu = sigmoid(eta)
		for i := 0; i < n; i++ {
			var e float64
			for j := 0; j < k; j++ {
				e += X.At(i, j) * coef.AtVec(j)
			}
			eta[i] = e
			mu[i] = clampProbability(stableSigmoid(e))
		}

		// XᵀWX with W = diag(mu(1-mu)), and the score Xᵀ(y - mu).
		xtwx := mat.NewDense(k, k, nil)
		score := mat.NewVecDense(k, nil)
		for i := 0; i < n; i++ {
			w := mu[i] * (1 - mu[i])
			if w < minIRLSWeight {
				w = minIRLSWeight
			}
			r := y[i] - mu[i]
			for a := 0; a < k; a++ {
				xa := X.At(i, a)
				score.SetVec(a, score.AtVec(a)+xa*r)
				for b := a; b < k; b++ {
					v := xtwx.At(a, b) + w*xa*X.At(i, b)
					xtwx.Set(a, b, v)
					if b != a {
						xtwx.Set(b, a, v)
					}
				}
			}
		}

		if err := cov.Inverse(xtwx); err != nil {
			return sterrors.NewModelError("Logit.Fit", "singular weighted design matrix", sterrors.ErrSingularMatrix)
		}

		var delta mat.VecDense
		delta.MulVec(&cov, score)

		var maxStep float64
		for j := 0; j < k; j++ {
			coef.SetVec(j, coef.AtVec(j)+delta.AtVec(j))
			if s := math.Abs(delta.AtVec(j)); s > maxStep {
				maxStep = s
			}
		}
		if maxStep < m.tol {
			converged = true
			break
		}
	}
	if !converged {
		return sterrors.NewConvergenceError("Logit.Fit", m.maxIter)
	}

	// Recompute probabilities at the optimum.
	for i := 0; i < n; i++ {
		var e float64
		for j := 0; j < k; j++ {
			e += X.At(i, j) * coef.AtVec(j)
		}
		mu[i] = clampProbability(stableSigmoid(e))
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	coefs := make([]float64, k)
	stdErr := make([]float64, k)
	zStat := make([]float64, k)
	pVal := make([]float64, k)
	for j := 0; j < k; j++ {
		coefs[j] = coef.AtVec(j)
		stdErr[j] = math.Sqrt(cov.At(j, j))
		if stdErr[j] == 0 {
			zStat[j] = 0
			pVal[j] = 1
			continue
		}
		zStat[j] = coefs[j] / stdErr[j]
		pVal[j] = 2 * (1 - normal.CDF(math.Abs(zStat[j])))
	}

	meanLoss, lossErr := metrics.LogLoss(y, mu)
	if lossErr != nil {
		return lossErr
	}
	llf := -meanLoss * float64(n)
	aic := 2*float64(k) - 2*llf
	bic := float64(k)*math.Log(float64(n)) - 2*llf

	m.coef = coef
	m.result = &Fit{
		Kind:     Logistic,
		Names:    append([]string(nil), names...),
		Coef:     coefs,
		StdErr:   stdErr,
		Stat:     zStat,
		PVal:     pVal,
		NObs:     n,
		NParams:  k,
		LogLik:   llf,
		AIC:      aic,
		BIC:      bic,
		R2:       math.NaN(),
		AdjR2:    math.NaN(),
		PseudoR2: mcFadden(llf, y),
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
func (m *Logit) Result() (*Fit, error) {
	if !m.state.IsFitted() {
		return nil, sterrors.NewNotFittedError("Logit", "Result")
	}
	return m.result, nil
}

// PredictProba returns the fitted probabilities for a design matrix with
// the training column count.
func (m *Logit) PredictProba(X mat.Matrix) ([]float64, error) {
	if !m.state.IsFitted() {
		return nil, sterrors.NewNotFittedError("Logit", "PredictProba")
	}
	n, k := X.Dims()
	if wantK, _ := m.state.Dimensions(); k != wantK {
		return nil, sterrors.NewDimensionError("Logit.PredictProba", wantK, k, 1)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var e float64
		for j := 0; j < k; j++ {
			e += X.At(i, j) * m.coef.AtVec(j)
		}
		out[i] = stableSigmoid(e)
	}
	return out, nil
}

// IsFitted reports whether Fit has succeeded.
func (m *Logit) IsFitted() bool { return m.state.IsFitted() }

// mcFadden computes 1 - ll/ll0 against the intercept-only model.
func mcFadden(llf float64, y []float64) float64 {
	n := float64(len(y))
	var ones float64
	for _, v := range y {
		ones += v
	}
	p0 := clampProbability(ones / n)
	ll0 := ones*math.Log(p0) + (n-ones)*math.Log(1-p0)
	if ll0 == 0 {
		return math.NaN()
	}
	return 1 - llf/ll0
}
