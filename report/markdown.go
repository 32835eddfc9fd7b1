package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/corpoml/demandml/pkg/errors"
)

// WriteFoldsMarkdown writes the fold-averaged summaries as a Markdown
// document: one table with the aggregates and one with the raw fold values.
func WriteFoldsMarkdown(w io.Writer, algorithm string, summaries []FieldSummary) error {
	if len(summaries) == 0 {
		return errors.NewValueError("WriteFoldsMarkdown", "no summaries to export")
	}
	md := markdown.NewMarkdown(w)

	md.H1(fmt.Sprintf("Metrics for %s", algorithm))
	md.PlainText("")
	md.Note(fmt.Sprintf("Aggregated over %d folds. The 95%% confidence interval is 1.96 * sd / sqrt(n-1).",
		summaries[0].Aggregate.N))
	md.PlainText("")

	md.H2("Averages")
	md.PlainText("")
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Label,
			fixed(s.Aggregate.Mean, 3),
			fixed(s.Aggregate.StdDev, 3),
			fixed(s.Aggregate.CI95, 3),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Mean", "Standard deviation", "Confidence Interval 95%"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Per fold")
	md.PlainText("")
	header := []string{"Fold"}
	for _, s := range summaries {
		header = append(header, s.Label)
	}
	folds := make([][]string, 0, len(summaries[0].Values))
	for i := range summaries[0].Values {
		row := []string{strconv.Itoa(i + 1)}
		for _, s := range summaries {
			row = append(row, fixed(s.Values[i], 3))
		}
		folds = append(folds, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: folds})

	return md.Build()
}

// SaveFoldsMarkdown writes WriteFoldsMarkdown output to path.
func SaveFoldsMarkdown(path, algorithm string, summaries []FieldSummary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return WriteFoldsMarkdown(f, algorithm, summaries)
}
