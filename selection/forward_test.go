package selection_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sthascelik/stepwise/core/frame"
	"github.com/sthascelik/stepwise/selection"
)

var (
	xLinear  = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	xShuffle = []float64{3, 17, 8, 12, 1, 19, 6, 14, 10, 2, 18, 5, 13, 9, 20, 4, 11, 16, 7, 15}
	// No trend, no relation to the predictors.
	yNoise = []float64{1.2, -0.7, 0.3, 2.1, -1.5, 0.8, -0.2, 1.9, -1.1, 0.5,
		-0.9, 1.4, 0.1, -1.8, 0.6, 1.1, -0.4, -1.3, 1.7, -0.6}
)

// signalData has y driven by both predictors with small deterministic
// noise, so both are overwhelmingly significant.
func signalData(t *testing.T) (*frame.Frame, []float64) {
	t.Helper()
	noise := []float64{0.4, -0.2, -0.2}
	y := make([]float64, len(xLinear))
	for i := range y {
		y[i] = 2*xLinear[i] + 3*xShuffle[i] + noise[i%3]
	}
	X := frame.New()
	require.NoError(t, X.AddNumeric("x1", xLinear))
	require.NoError(t, X.AddNumeric("x2", xShuffle))
	return X, y
}

func noiseData(t *testing.T) (*frame.Frame, []float64) {
	t.Helper()
	X := frame.New()
	require.NoError(t, X.AddNumeric("x1", xLinear))
	require.NoError(t, X.AddNumeric("x2", xShuffle))
	return X, append([]float64(nil), yNoise...)
}

func TestForward_EntersSignificantVariables(t *testing.T) {
	X, y := signalData(t)

	result, err := selection.Forward(X, y, selection.WithCriterion(selection.CriterionAIC))
	require.NoError(t, err)

	assert.Equal(t, "intercept", result.Columns[0], "intercept must lead the selected set")
	assert.Len(t, result.Columns, 3)
	assert.Contains(t, result.Columns, "x1")
	assert.Contains(t, result.Columns, "x2")

	// Every variable that entered did so below the significance level.
	for _, r := range result.Log.Records() {
		if r.Kind == selection.RecordEntered {
			assert.LessOrEqual(t, r.PValue, selection.DefaultSignificanceLevel)
		}
	}

	text := result.Log.String()
	assert.Contains(t, text, "Entered : ")
	assert.Contains(t, text, "AIC: ")
}

func TestForward_AICPathNonIncreasing(t *testing.T) {
	X, y := signalData(t)

	result, err := selection.Forward(X, y, selection.WithCriterion(selection.CriterionAIC))
	require.NoError(t, err)

	// Summary records immediately followed by a stop belong to a
	// rejected candidate; the rest trace accepted rounds.
	records := result.Log.Records()
	var accepted []float64
	for i, r := range records {
		if r.Kind != selection.RecordSummary {
			continue
		}
		if i+1 < len(records) && records[i+1].Kind == selection.RecordStopped {
			continue
		}
		accepted = append(accepted, r.Criterion)
	}
	require.NotEmpty(t, accepted)
	for i := 1; i < len(accepted); i++ {
		assert.LessOrEqual(t, accepted[i], accepted[i-1],
			"accepted AIC values must be non-increasing")
	}
}

func TestForward_NoCandidateBelowSignificance(t *testing.T) {
	X, y := noiseData(t)

	// A threshold this extreme rejects every noise predictor on round 1.
	result, err := selection.Forward(X, y,
		selection.WithCriterion(selection.CriterionNone),
		selection.WithSignificanceLevel(1e-12),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"intercept"}, result.Columns)

	var stopped bool
	for _, r := range result.Log.Records() {
		if r.Kind == selection.RecordStopped {
			stopped = true
			assert.Equal(t, selection.StopNoCandidate, r.Reason)
		}
		assert.NotEqual(t, selection.RecordEntered, r.Kind, "nothing may enter")
	}
	assert.True(t, stopped, "log must note that no variable entered")
	assert.Contains(t, result.Log.String(), "Break : "+selection.StopNoCandidate)
}

func TestForward_Idempotent(t *testing.T) {
	X, y := signalData(t)

	first, err := selection.Forward(X, y, selection.WithCriterion(selection.CriterionBIC))
	require.NoError(t, err)
	second, err := selection.Forward(X, y, selection.WithCriterion(selection.CriterionBIC))
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Log.String(), second.Log.String())
}

func TestForward_TerminationBound(t *testing.T) {
	X, y := signalData(t)

	result, err := selection.Forward(X, y, selection.WithCriterion(selection.CriterionAdjR2))
	require.NoError(t, err)

	var entered int
	for _, r := range result.Log.Records() {
		if r.Kind == selection.RecordEntered {
			entered++
		}
	}
	assert.LessOrEqual(t, entered, X.NumCols(), "cannot enter more variables than exist")
}

func TestForward_CategoricalInput(t *testing.T) {
	X := frame.New()
	require.NoError(t, X.AddNumeric("a", xLinear[:12]))
	require.NoError(t, X.AddString("c", []string{
		"m", "f", "m", "f", "m", "f", "m", "f", "m", "f", "m", "f",
	}))
	noise := []float64{0.3, -0.1, -0.2}
	y := make([]float64, 12)
	for i := range y {
		y[i] = 2*xLinear[i] + noise[i%3]
	}

	result, err := selection.Forward(X, y)
	require.NoError(t, err)

	assert.Equal(t, "intercept", result.Columns[0])
	assert.Contains(t, result.Columns, "a")
	for _, col := range result.Columns {
		assert.NotEqual(t, "c", col, "raw categorical column must not survive encoding")
	}
}

func TestForward_InvalidInputs(t *testing.T) {
	X, y := signalData(t)

	_, err := selection.Forward(X, y[:5])
	assert.Error(t, err, "row mismatch must fail")

	_, err = selection.Forward(X, y, selection.WithSignificanceLevel(1.5))
	assert.Error(t, err, "significance level outside (0,1) must fail")

	_, err = selection.Forward(frame.New(), nil)
	assert.Error(t, err, "empty input must fail")
}

func TestForward_LogisticRuns(t *testing.T) {
	X := frame.New()
	require.NoError(t, X.AddNumeric("x", []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2}))
	y := []float64{0, 0, 1, 0, 0, 1, 0, 1, 1}

	result, err := selection.Forward(X, y,
		selection.WithModelKind("logistic"),
		selection.WithCriterion(selection.CriterionNone),
	)
	require.NoError(t, err)
	assert.Equal(t, "intercept", result.Columns[0])
	assert.NotZero(t, result.Log.Len())

	again, err := selection.Forward(X, y,
		selection.WithModelKind("logistic"),
		selection.WithCriterion(selection.CriterionNone),
	)
	require.NoError(t, err)
	assert.Equal(t, result.Columns, again.Columns)
}

func TestForward_LogTextShape(t *testing.T) {
	X, y := signalData(t)

	result, err := selection.Forward(X, y)
	require.NoError(t, err)

	text := result.Log.String()
	assert.True(t, strings.Contains(text, "OLS Regression Results"),
		"log must carry full model summaries")
}
