package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpoml/demandml/pkg/errors"
)

const sampleCSV = `productId,year,month,units,avg,count,max,min,prev,next
263,2017,10,910,91,10,370,1,1675,871
988,2017,11,1076,41,26,225,4,1094,1100
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "263", rows[0].ProductID)
	assert.Equal(t, 2017.0, rows[0].Year)
	assert.Equal(t, 871.0, rows[0].Next)
	assert.Equal(t, []float64{2017, 11, 1076, 41, 26, 225, 4, 1094}, rows[1].Numeric())
}

func TestReadCSVColumnOrderIsFree(t *testing.T) {
	csv := "next,prev,min,max,count,avg,units,month,year,productId\n871,1675,1,370,10,91,910,10,2017,263\n"
	rows, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, SampleProducts[0], rows[0])
}

func TestReadCSVByteOrderMark(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\ufeff" + sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "263", rows[0].ProductID)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty input", "", "missing header"},
		{"missing column", "productId,year\n1,2017\n", "missing column month"},
		{"header only", strings.SplitN(sampleCSV, "\n", 2)[0] + "\n", "no data rows"},
		{"bad number", "productId,year,month,units,avg,count,max,min,prev,next\n1,x,1,1,1,1,1,1,1,1\n", "line 2: column year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	rows, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFramePreview(t *testing.T) {
	view := NewProductView(SampleProducts)

	assert.Equal(t, Schema, view.Columns())
	assert.Equal(t, 2, view.Len())

	rows := view.Preview(1)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(Schema))
	assert.Equal(t, Cell{Column: ColProductID, Value: "263"}, rows[0][0])

	v, ok := rows[0].Get(ColNext)
	require.True(t, ok)
	assert.Equal(t, 871.0, v)

	_, ok = rows[0].Get("missing")
	assert.False(t, ok)

	assert.Len(t, view.Preview(10), 2)
	assert.Len(t, view.Preview(0), 2)
}

func TestFrameAppendDimension(t *testing.T) {
	f := NewFrame("a", "b")
	err := f.Append(1)
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
