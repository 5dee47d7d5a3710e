package regression

import (
	"fmt"
	"strings"
)

// Fit holds the statistics of a single fitted model. A Fit is immutable
// once returned: selectors read it for one criterion comparison and
// discard it.
type Fit struct {
	// Kind is the model kind that produced this fit.
	Kind Kind

	// Names holds the design matrix column names, in fit order.
	Names []string

	// Coef, StdErr, Stat and PVal are aligned with Names. Stat holds the
	// t statistic for linear fits and the z statistic for logistic fits.
	Coef   []float64
	StdErr []float64
	Stat   []float64
	PVal   []float64

	// NObs is the sample count, NParams the number of fitted
	// coefficients (intercept included).
	NObs    int
	NParams int

	LogLik float64
	AIC    float64
	BIC    float64

	// R2 and AdjR2 are NaN for logistic fits; PseudoR2 (McFadden) is NaN
	// for linear fits.
	R2       float64
	AdjR2    float64
	PseudoR2 float64
}

// PValue returns the p-value of the named variable.
func (f *Fit) PValue(name string) (float64, bool) {
	for i, n := range f.Names {
		if n == name {
			return f.PVal[i], true
		}
	}
	return 0, false
}

// PValues returns a name to p-value map covering every fitted variable.
func (f *Fit) PValues() map[string]float64 {
	m := make(map[string]float64, len(f.Names))
	for i, n := range f.Names {
		m[n] = f.PVal[i]
	}
	return m
}

func (f *Fit) statLabel() string {
	if f.Kind == Logistic {
		return "z"
	}
	return "t"
}

// Summary renders a fixed-width coefficient table with the scalar fit
// statistics, in the shape of a statsmodels results printout.
func (f *Fit) Summary() string {
	var b strings.Builder

	title := "OLS Regression Results"
	if f.Kind == Logistic {
		title = "Logit Regression Results"
	}
	rule := strings.Repeat("=", 64)
	thin := strings.Repeat("-", 64)

	fmt.Fprintf(&b, "%s\n%s\n", center(title, 64), rule)
	fmt.Fprintf(&b, "No. Observations: %8d    Log-Likelihood: %12.4f\n", f.NObs, f.LogLik)
	fmt.Fprintf(&b, "Df Residuals:     %8d    AIC:            %12.4f\n", f.NObs-f.NParams, f.AIC)
	fmt.Fprintf(&b, "Df Model:         %8d    BIC:            %12.4f\n", f.NParams-1, f.BIC)
	if f.Kind == Logistic {
		fmt.Fprintf(&b, "Pseudo R-squ.:    %8.4f\n", f.PseudoR2)
	} else {
		fmt.Fprintf(&b, "R-squared:        %8.4f    Adj. R-squared: %12.4f\n", f.R2, f.AdjR2)
	}
	fmt.Fprintf(&b, "%s\n", thin)

	s := f.statLabel()
	fmt.Fprintf(&b, "%-16s %10s %10s %10s %10s\n", "", "coef", "std err", s, "P>|"+s+"|")
	for i, name := range f.Names {
		fmt.Fprintf(&b, "%-16s %10.4f %10.4f %10.3f %10.3f\n",
			name, f.Coef[i], f.StdErr[i], f.Stat[i], f.PVal[i])
	}
	fmt.Fprintf(&b, "%s", rule)
	return b.String()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
