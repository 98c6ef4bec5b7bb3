// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyCSV indicates a CSV input without data rows.
var ErrEmptyCSV = errors.New("report: csv has no data rows")

// WriteCSV writes m as CSV, one sample per row, preceded by header when given.
func WriteCSV(w io.Writer, m mat.Matrix, header []string) error {
	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	r, c := m.Dims()
	rec := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rec[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a numeric CSV. A first record that does not parse as
// numbers is treated as a header and returned separately.
func ReadCSV(r io.Reader) (*mat.Dense, []string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	var header []string
	if len(records) > 0 && !numeric(records[0]) {
		header, records = records[0], records[1:]
	}
	if len(records) == 0 {
		return nil, header, ErrEmptyCSV
	}

	cols := len(records[0])
	data := make([]float64, 0, len(records)*cols)
	for i, rec := range records {
		for j, s := range rec {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, header, fmt.Errorf("csv row %d column %d: %w", i+1, j+1, err)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records), cols, data), header, nil
}

func numeric(rec []string) bool {
	for _, s := range rec {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return false
		}
	}
	return true
}
