package dataset

import (
	"github.com/corpoml/demandml/pkg/errors"
)

// Cell is one column value of a row.
type Cell struct {
	Column string
	Value  any
}

// Row is an ordered mapping from column name to value.
type Row []Cell

// Get returns the value of column, if present.
func (r Row) Get(column string) (any, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

// View is a tabular data source that can show its first rows.
type View interface {
	Columns() []string
	Preview(maxRows int) []Row
}

// Frame is an in-memory View. Values may be of any type per column.
type Frame struct {
	columns []string
	rows    [][]any
}

// NewFrame creates an empty frame with the given columns.
func NewFrame(columns ...string) *Frame {
	return &Frame{columns: append([]string{}, columns...)}
}

// Append adds a row. values must match the column count.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return errors.NewDimensionError("Frame.Append", len(f.columns), len(values), 1)
	}
	f.rows = append(f.rows, append([]any{}, values...))
	return nil
}

// Columns implements View.
func (f *Frame) Columns() []string {
	return append([]string{}, f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Preview implements View. A non-positive maxRows returns every row.
func (f *Frame) Preview(maxRows int) []Row {
	n := len(f.rows)
	if maxRows > 0 && maxRows < n {
		n = maxRows
	}
	out := make([]Row, n)
	for i := 0; i < n; i++ {
		row := make(Row, len(f.columns))
		for j, col := range f.columns {
			row[j] = Cell{Column: col, Value: f.rows[i][j]}
		}
		out[i] = row
	}
	return out
}

// ProductView is the View over raw product rows. It keeps the typed rows so
// the featurisation pipeline can consume them without re-parsing.
type ProductView struct {
	*Frame
	Products []ProductData
}

// NewProductView wraps products in a View with the Schema columns.
func NewProductView(products []ProductData) *ProductView {
	f := NewFrame(Schema...)
	for _, p := range products {
		values := []any{p.ProductID}
		for _, v := range p.Numeric() {
			values = append(values, v)
		}
		values = append(values, p.Next)
		// Schema and values are built from the same column list.
		_ = f.Append(values...)
	}
	return &ProductView{Frame: f, Products: products}
}
