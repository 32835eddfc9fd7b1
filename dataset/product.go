package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corpoml/demandml/pkg/errors"
)

// ProductData is one monthly observation for a product.
type ProductData struct {
	ProductID string
	Year      float64
	Month     float64
	Units     float64
	Avg       float64
	Count     float64
	Max       float64
	Min       float64
	Prev      float64
	Next      float64
}

// Column names, in file and schema order.
const (
	ColProductID = "productId"
	ColYear      = "year"
	ColMonth     = "month"
	ColUnits     = "units"
	ColAvg       = "avg"
	ColCount     = "count"
	ColMax       = "max"
	ColMin       = "min"
	ColPrev      = "prev"
	ColNext      = "next"
)

// NumericColumns are the numeric feature columns concatenated into the
// feature vector, in order.
var NumericColumns = []string{ColYear, ColMonth, ColUnits, ColAvg, ColCount, ColMax, ColMin, ColPrev}

// Schema lists every column of ProductData.
var Schema = append(append([]string{ColProductID}, NumericColumns...), ColNext)

// Numeric returns the numeric feature values in NumericColumns order.
func (p ProductData) Numeric() []float64 {
	return []float64{p.Year, p.Month, p.Units, p.Avg, p.Count, p.Max, p.Min, p.Prev}
}

func (p *ProductData) set(col, raw string) error {
	if col == ColProductID {
		p.ProductID = raw
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	switch col {
	case ColYear:
		p.Year = v
	case ColMonth:
		p.Month = v
	case ColUnits:
		p.Units = v
	case ColAvg:
		p.Avg = v
	case ColCount:
		p.Count = v
	case ColMax:
		p.Max = v
	case ColMin:
		p.Min = v
	case ColPrev:
		p.Prev = v
	case ColNext:
		p.Next = v
	}
	return nil
}

// LoadCSV reads product rows from a CSV file with a header line.
func LoadCSV(path string) ([]ProductData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return rows, nil
}

// ReadCSV parses product rows. The header maps columns by name, so column
// order in the file is free; every Schema column must be present.
func ReadCSV(r io.Reader) ([]ProductData, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewValueError("ReadCSV", "missing header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	// spreadsheet exports often start with a UTF-8 byte order mark
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range Schema {
		if _, ok := index[col]; !ok {
			return nil, errors.NewValueError("ReadCSV", "missing column "+col)
		}
	}

	var out []ProductData
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read record")
		}
		line, _ := reader.FieldPos(0)

		var p ProductData
		for _, col := range Schema {
			if err := p.set(col, strings.TrimSpace(record[index[col]])); err != nil {
				return nil, errors.Wrapf(err, "line %d: column %s", line, col)
			}
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, errors.NewModelError("ReadCSV", "no data rows", errors.ErrEmptyData)
	}
	return out, nil
}
