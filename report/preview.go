package report

import (
	"fmt"
	"strings"

	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/pkg/errors"
)

// DefaultPreviewRows is the number of rows shown when a caller passes a
// non-positive count.
const DefaultPreviewRows = 4

// ViewPipeline fits a transformation on a view and returns the transformed
// view. The featurizer in package preprocessing satisfies it.
type ViewPipeline interface {
	FitTransformView(view dataset.View) (dataset.View, error)
}

func previewRows(n int) int {
	if n <= 0 {
		return DefaultPreviewRows
	}
	return n
}

// textual renders a cell value for preview output.
func textual(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return plain(x)
	case float32:
		return plain(float64(x))
	case []float64:
		return "[" + joinVector(x) + "]"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func joinVector(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = plain(f)
	}
	return strings.Join(parts, " ")
}

// RowLine renders one preview row as "Row--> | key:value| key:value".
func RowLine(row dataset.Row) string {
	var sb strings.Builder
	sb.WriteString("Row--> ")
	for _, cell := range row {
		sb.WriteString("| ")
		sb.WriteString(cell.Column)
		sb.WriteString(":")
		sb.WriteString(textual(cell.Value))
	}
	return sb.String()
}

// DataViewLines renders the first n rows of view, each followed by an empty
// line.
func DataViewLines(view dataset.View, n int) []string {
	if view == nil {
		panic(errors.AssertionFailedf("data view must not be nil"))
	}
	rows := view.Preview(previewRows(n))
	lines := make([]string, 0, 2*len(rows))
	for _, row := range rows {
		lines = append(lines, RowLine(row), "")
	}
	return lines
}

// ShowDataView prints a header and the first n rows of view. n <= 0 uses
// DefaultPreviewRows.
func (c *Console) ShowDataView(view dataset.View, n int) {
	n = previewRows(n)
	lines := DataViewLines(view, n)
	c.writeHeaded(fmt.Sprintf("Show data in DataView: Showing %d rows with the columns", n), lines)
}
