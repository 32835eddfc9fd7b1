package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/corpoml/demandml/pkg/errors"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// FoldChart builds a bar chart of one metric field per fold, with a dashed
// line at the mean.
func FoldChart(algorithm string, s FieldSummary) (*plot.Plot, error) {
	if len(s.Values) == 0 {
		return nil, errors.NewValueError("FoldChart", "no fold values for "+s.Key)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s per fold", algorithm, s.Label)
	p.X.Label.Text = "Fold"
	p.Y.Label.Text = s.Label

	bars, err := plotter.NewBarChart(plotter.Values(s.Values), vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "bar chart")
	}
	p.Add(bars)

	mean, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: s.Aggregate.Mean},
		{X: float64(len(s.Values)) - 0.5, Y: s.Aggregate.Mean},
	})
	if err != nil {
		return nil, errors.Wrap(err, "mean line")
	}
	mean.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(mean)
	p.Legend.Add("mean "+fixed(s.Aggregate.Mean, 3), mean)

	names := make([]string, len(s.Values))
	for i := range names {
		names[i] = fmt.Sprintf("%d", i+1)
	}
	p.NominalX(names...)
	return p, nil
}

// WriteFoldChart renders FoldChart in format ("png", "svg", "pdf", ...) to w.
func WriteFoldChart(w io.Writer, format, algorithm string, s FieldSummary) error {
	p, err := FoldChart(algorithm, s)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, format)
	if err != nil {
		return errors.Wrapf(err, "render %s chart", format)
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "write chart")
}

// SaveFoldChart saves FoldChart to path; the extension picks the format.
func SaveFoldChart(path, algorithm string, s FieldSummary) error {
	if strings.TrimPrefix(filepath.Ext(path), ".") == "" {
		return errors.NewValueError("SaveFoldChart", "chart path needs an extension: "+path)
	}
	p, err := FoldChart(algorithm, s)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(chartWidth, chartHeight, path), "save %s", path)
}
