// Package frame provides the named-column table the selection algorithms
// operate on.
//
// A Frame is an ordered sequence of equally sized columns, each either
// numeric or categorical (string valued). Categorical columns exist only
// between data loading and encoding; the regression fitters consume purely
// numeric frames via Matrix.
//
// Frames are cheap to copy column-wise: Select and Clone share no backing
// storage with the source, so a selector can narrow its working frame
// without mutating the caller's data.
package frame

import (
	"gonum.org/v1/gonum/mat"

	sterrors "github.com/sthascelik/stepwise/pkg/errors"
)

// InterceptColumn is the reserved name of the constant-1 column prepended
// by the categorical encoder and kept by every selector.
const InterceptColumn = "intercept"

type column struct {
	name   string
	floats []float64 // nil for categorical columns
	strs   []string  // nil for numeric columns
}

// Frame is an ordered collection of named, equally sized columns.
type Frame struct {
	cols  []column
	index map[string]int
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{index: make(map[string]int)}
}

// NumRows returns the row count, zero for an empty frame.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	c := f.cols[0]
	if c.floats != nil {
		return len(c.floats)
	}
	return len(c.strs)
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// IsCategorical reports whether the named column holds string values.
// Returns false for unknown columns.
func (f *Frame) IsCategorical(name string) bool {
	i, ok := f.index[name]
	return ok && f.cols[i].strs != nil
}

func (f *Frame) checkAdd(name string, n int) error {
	if _, ok := f.index[name]; ok {
		return sterrors.NewValueError("Frame.Add", "duplicate column "+name)
	}
	if len(f.cols) > 0 && n != f.NumRows() {
		return sterrors.NewDimensionError("Frame.Add", f.NumRows(), n, 0)
	}
	return nil
}

// AddNumeric appends a numeric column. The values slice is copied.
func (f *Frame) AddNumeric(name string, values []float64) error {
	if err := f.checkAdd(name, len(values)); err != nil {
		return err
	}
	v := make([]float64, len(values))
	copy(v, values)
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, column{name: name, floats: v})
	return nil
}

// AddString appends a categorical column. The values slice is copied.
func (f *Frame) AddString(name string, values []string) error {
	if err := f.checkAdd(name, len(values)); err != nil {
		return err
	}
	v := make([]string, len(values))
	copy(v, values)
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, column{name: name, strs: v})
	return nil
}

// Numeric returns a copy of the named numeric column's values.
func (f *Frame) Numeric(name string) ([]float64, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, sterrors.NewValueError("Frame.Numeric", "unknown column "+name)
	}
	if f.cols[i].floats == nil {
		return nil, sterrors.NewValueError("Frame.Numeric", "column "+name+" is categorical")
	}
	v := make([]float64, len(f.cols[i].floats))
	copy(v, f.cols[i].floats)
	return v, nil
}

// Strings returns a copy of the named categorical column's values.
func (f *Frame) Strings(name string) ([]string, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, sterrors.NewValueError("Frame.Strings", "unknown column "+name)
	}
	if f.cols[i].strs == nil {
		return nil, sterrors.NewValueError("Frame.Strings", "column "+name+" is numeric")
	}
	v := make([]string, len(f.cols[i].strs))
	copy(v, f.cols[i].strs)
	return v, nil
}

// Drop removes the named column. Dropping an unknown column is a no-op.
func (f *Frame) Drop(name string) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	f.rebuildIndex()
}

// MoveToFront makes the named column the first column.
func (f *Frame) MoveToFront(name string) error {
	i, ok := f.index[name]
	if !ok {
		return sterrors.NewValueError("Frame.MoveToFront", "unknown column "+name)
	}
	c := f.cols[i]
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	f.cols = append([]column{c}, f.cols...)
	f.rebuildIndex()
	return nil
}

func (f *Frame) rebuildIndex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c.name] = i
	}
}

// Select returns a new frame holding copies of the named columns, in the
// given order.
func (f *Frame) Select(names []string) (*Frame, error) {
	out := New()
	for _, name := range names {
		i, ok := f.index[name]
		if !ok {
			return nil, sterrors.NewValueError("Frame.Select", "unknown column "+name)
		}
		c := f.cols[i]
		var err error
		if c.floats != nil {
			err = out.AddNumeric(c.name, c.floats)
		} else {
			err = out.AddString(c.name, c.strs)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out, _ := f.Select(f.Columns())
	return out
}

// Matrix assembles the named numeric columns into a dense row-major
// matrix of shape (rows, len(names)). Every named column must be numeric.
func (f *Frame) Matrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, sterrors.NewModelError("Frame.Matrix", "no columns selected", sterrors.ErrEmptyData)
	}
	rows := f.NumRows()
	if rows == 0 {
		return nil, sterrors.NewModelError("Frame.Matrix", "empty frame", sterrors.ErrEmptyData)
	}
	cols := make([][]float64, len(names))
	for j, name := range names {
		i, ok := f.index[name]
		if !ok {
			return nil, sterrors.NewValueError("Frame.Matrix", "unknown column "+name)
		}
		if f.cols[i].floats == nil {
			return nil, sterrors.NewValueError("Frame.Matrix", "column "+name+" is categorical; encode it first")
		}
		cols[j] = f.cols[i].floats
	}
	m := mat.NewDense(rows, len(names), nil)
	for i := 0; i < rows; i++ {
		for j := range cols {
			m.Set(i, j, cols[j][i])
		}
	}
	return m, nil
}
