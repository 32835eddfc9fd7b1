package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpoml/demandml/history"
	"github.com/corpoml/demandml/pkg/errors"
)

// writeProducts writes a product history where next-month units grow
// linearly with the current month's units.
func writeProducts(t *testing.T) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("productId,year,month,units,avg,count,max,min,prev,next\n")
	for i, id := range []string{"263", "988", "1", "2"} {
		for month := 1; month <= 10; month++ {
			units := float64(100*(i+1) + 15*month)
			fmt.Fprintf(&b, "%s,2017,%d,%g,%g,%d,%g,%g,%g,%g\n",
				id, month, units, units/10, 10+month, units/2, float64(i+1), units-15, units*1.1+5)
		}
	}

	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestTrainAndPredict(t *testing.T) {
	dir := t.TempDir()
	data := writeProducts(t)
	model := filepath.Join(dir, "demand.gob")
	md := filepath.Join(dir, "report.md")
	chart := filepath.Join(dir, "mae.svg")
	db := filepath.Join(dir, "runs.db")

	out, _, err := execute(t, "train",
		"--data", data, "--model", model, "--seed", "7",
		"--markdown", md, "--chart", chart, "--history", db)
	require.NoError(t, err)

	assert.Contains(t, out, "Show data in DataView: Showing 4 rows with the columns")
	assert.Contains(t, out, "Row--> | productId:263| year:2017")
	assert.Contains(t, out, "*       Metrics for Ridge(alpha=1) Regression model")
	assert.Contains(t, out, "Average L1 Loss:")
	assert.Contains(t, out, "The model is saved to "+model)
	assert.NotContains(t, out, "Peek data in DataView", "peek output needs --debug")

	assert.FileExists(t, model)
	mdContent, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Contains(t, string(mdContent), "# Metrics for Ridge(alpha=1)")
	svg, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	store, err := history.Open(db)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.ListRuns(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Ridge(alpha=1)", runs[0].Trainer)
	assert.Equal(t, 6, runs[0].Folds)

	out, _, err = execute(t, "predict", "--model", model)
	require.NoError(t, err)
	assert.Contains(t, out, "** Testing Product **")
	assert.Contains(t, out, "Product: 263, month: 11, year: 2017 - Real value (units): 871, Forecast Prediction (units): ")
	assert.Contains(t, out, "Product: 988, month: 12, year: 2017 - Forecast Prediction (units): ")
	assert.Contains(t, out, "Actual:     871")
}

func TestTrainDebugPeeks(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "--debug", "train",
		"--data", writeProducts(t), "--model", filepath.Join(dir, "m.gob"), "--folds", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Peek data in DataView: Showing 4 rows with the columns")
	assert.Contains(t, out, "Peek data in DataView: : Show 4 rows with just the 'Features' column")
	assert.Contains(t, out, "**** Row 1 with 'Features' field value ****")
}

func TestTrainErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		args  []string
		block string
	}{
		{"missing data", []string{"train", "--model", filepath.Join(dir, "m.gob")}, "WARNING"},
		{"missing file", []string{"train", "--data", filepath.Join(dir, "none.csv")}, "EXCEPTION"},
		{"single fold", []string{"train", "--data", "x.csv", "--folds", "1"}, "WARNING"},
		{"negative alpha", []string{"train", "--data", "x.csv", "--alpha", "-1"}, "WARNING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			assert.Error(t, err)
			assert.Contains(t, out, "\n"+tt.block+"\n")
		})
	}
}

func TestPredictMissingModel(t *testing.T) {
	_, _, err := execute(t, "predict", "--model", filepath.Join(t.TempDir(), "none.gob"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatsCmd(t *testing.T) {
	out, _, err := execute(t, "stats", "10", "12", "11", "9", "13", "10.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Mean:                          10.917")
	assert.Contains(t, out, "Standard deviation:            1.429")
	assert.Contains(t, out, "Confidence Interval 95%:       1.252")

	out, stderr, err := execute(t, "stats", "5")
	assert.ErrorIs(t, err, errors.ErrInsufficientSamples)
	assert.True(t, strings.HasPrefix(out, "\nEXCEPTION\n"), out)
	assert.Contains(t, out, "insufficient samples")
	assert.NotContains(t, stderr, "EXCEPTION")

	_, _, err = execute(t, "stats", "10", "ten")
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestHistoryCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, _, err := execute(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")

	store, err := history.Open(db)
	require.NoError(t, err)
	id, err := store.SaveRun(t.Context(), &history.Run{
		Trainer: "Ridge(alpha=1)",
		Folds:   2,
		Metrics: []history.MetricSummary{{Key: "r_squared", Label: "R-squared", Mean: 0.9, StdDev: 0.1, CI95: 0.2, Values: []float64{0.8, 1.0}}},
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, _, err = execute(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+id)
	assert.Contains(t, out, "R-squared")

	out, _, err = execute(t, "history", "--history", db, id)
	require.NoError(t, err)
	assert.Contains(t, out, "fold 2: 1.000")

	_, _, err = execute(t, "history", "--history", db, "unknown")
	assert.ErrorIs(t, err, history.ErrRunNotFound)

	_, _, err = execute(t, "history")
	assert.Error(t, err)
}
