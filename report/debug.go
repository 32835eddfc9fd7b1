package report

import (
	"fmt"

	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/pkg/errors"
)

// PeekFrame fits pipeline on view and prints the first n transformed rows.
// It does nothing unless the console was created with WithDebug(true).
func (c *Console) PeekFrame(view dataset.View, pipeline ViewPipeline, n int) error {
	if !c.debug {
		return nil
	}
	n = previewRows(n)
	transformed, err := pipeline.FitTransformView(view)
	if err != nil {
		return errors.Wrap(err, "peek frame")
	}
	lines := DataViewLines(transformed, n)
	c.writeHeaded(fmt.Sprintf("Peek data in DataView: Showing %d rows with the columns", n), lines)
	return nil
}

// VectorColumnLines renders the vector column of the first n rows of view.
func VectorColumnLines(view dataset.View, column string, n int) ([]string, error) {
	rows := view.Preview(previewRows(n))
	lines := make([]string, 0, 3*len(rows))
	for i, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			return nil, errors.NewValueError("VectorColumnLines", fmt.Sprintf("no column %q", column))
		}
		vec, ok := v.([]float64)
		if !ok {
			return nil, errors.NewValueError("VectorColumnLines",
				fmt.Sprintf("column %q holds %T, not a vector", column, v))
		}
		lines = append(lines,
			"",
			fmt.Sprintf("**** Row %d with '%s' field value ****", i+1, column),
			joinVector(vec),
		)
	}
	return lines, nil
}

// PeekVectorColumn fits pipeline on view and prints only the named vector
// column of the first n transformed rows. Debug consoles only.
func (c *Console) PeekVectorColumn(view dataset.View, pipeline ViewPipeline, column string, n int) error {
	if !c.debug {
		return nil
	}
	n = previewRows(n)
	transformed, err := pipeline.FitTransformView(view)
	if err != nil {
		return errors.Wrap(err, "peek vector column")
	}
	lines, err := VectorColumnLines(transformed, column, n)
	if err != nil {
		return err
	}
	c.writeHeaded(fmt.Sprintf("Peek data in DataView: : Show %d rows with just the '%s' column", n, column), lines)
	return nil
}
