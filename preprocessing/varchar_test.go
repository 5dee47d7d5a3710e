package preprocessing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sthascelik/stepwise/core/frame"
	"github.com/sthascelik/stepwise/preprocessing"
)

func mixedFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New()
	require.NoError(t, f.AddNumeric("a", []float64{1, 2, 3, 4}))
	require.NoError(t, f.AddNumeric("b", []float64{5, 6, 7, 8}))
	require.NoError(t, f.AddString("c", []string{"level1", "level2", "level1", "level2"}))
	return f
}

func TestEncodeVarchar_DummyDropFirst(t *testing.T) {
	enc, err := preprocessing.EncodeVarchar(mixedFrame(t), preprocessing.VarcharDummyDropFirst)
	require.NoError(t, err)

	// First sorted level of c is the reference level and gets no dummy.
	assert.Equal(t, []string{"intercept", "a", "b", "c_level2"}, enc.Columns())

	indicator, err := enc.Numeric("c_level2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 1}, indicator)

	ones, err := enc.Numeric("intercept")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, ones)
}

func TestEncodeVarchar_Dummy(t *testing.T) {
	enc, err := preprocessing.EncodeVarchar(mixedFrame(t), preprocessing.VarcharDummy)
	require.NoError(t, err)

	assert.Equal(t, []string{"intercept", "a", "b", "c_level1", "c_level2"}, enc.Columns())

	l1, err := enc.Numeric("c_level1")
	require.NoError(t, err)
	l2, err := enc.Numeric("c_level2")
	require.NoError(t, err)
	for i := range l1 {
		// Indicators for a single source column are mutually exclusive.
		assert.Equal(t, 1.0, l1[i]+l2[i])
	}
}

func TestEncodeVarchar_Drop(t *testing.T) {
	enc, err := preprocessing.EncodeVarchar(mixedFrame(t), preprocessing.VarcharDrop)
	require.NoError(t, err)
	assert.Equal(t, []string{"intercept", "a", "b"}, enc.Columns())
}

func TestEncodeVarchar_UnrecognizedPolicyFallsBack(t *testing.T) {
	enc, err := preprocessing.EncodeVarchar(mixedFrame(t), preprocessing.VarcharPolicy("one_hot"))
	require.NoError(t, err)
	assert.Equal(t, []string{"intercept", "a", "b", "c_level2"}, enc.Columns())
}

func TestEncodeVarchar_NumericOnly(t *testing.T) {
	f := frame.New()
	require.NoError(t, f.AddNumeric("a", []float64{1, 2, 3}))

	enc, err := preprocessing.EncodeVarchar(f, preprocessing.VarcharDummyDropFirst)
	require.NoError(t, err)
	assert.Equal(t, []string{"intercept", "a"}, enc.Columns())

	// The input frame is untouched.
	assert.Equal(t, []string{"a"}, f.Columns())
}

func TestParseVarcharPolicy(t *testing.T) {
	assert.Equal(t, preprocessing.VarcharDrop, preprocessing.ParseVarcharPolicy("drop"))
	assert.Equal(t, preprocessing.VarcharDummy, preprocessing.ParseVarcharPolicy("dummy"))
	assert.Equal(t, preprocessing.VarcharDummyDropFirst, preprocessing.ParseVarcharPolicy("dummy_dropfirst"))
	assert.Equal(t, preprocessing.VarcharDummyDropFirst, preprocessing.ParseVarcharPolicy("bogus"))
}
