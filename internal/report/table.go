// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/katalvlaran/nataf/nataf"
	"gonum.org/v1/gonum/mat"
)

// formatFloat keeps tables narrow while staying exact enough to compare.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// Labels carry distribution names; keep their case.
	t.Style().Format.Header = text.FormatDefault
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// Matrix renders m with labels on both axes. Missing labels default to the
// column index.
func Matrix(w io.Writer, title string, m mat.Matrix, labels []string) {
	r, c := m.Dims()
	label := func(i int) string {
		if i < len(labels) {
			return labels[i]
		}
		return strconv.Itoa(i)
	}

	t := newTable(w, title)
	header := make(table.Row, c+1)
	header[0] = ""
	for j := 0; j < c; j++ {
		header[j+1] = label(j)
	}
	t.AppendHeader(header)
	for i := 0; i < r; i++ {
		row := make(table.Row, c+1)
		row[0] = label(i)
		for j := 0; j < c; j++ {
			row[j+1] = formatFloat(m.At(i, j))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// Trace renders the solver history, one row per iteration.
func Trace(w io.Writer, tr nataf.Trace) {
	if len(tr) == 0 {
		_, _ = fmt.Fprintln(w, "(no iterations)")
		return
	}
	t := newTable(w, "ITAM trace")
	t.AppendHeader(table.Row{"iteration", "error1 (abs)", "error2 (rel)"})
	for _, p := range tr {
		t.AppendRow(table.Row{p.Iteration, formatFloat(p.Abs), formatFloat(p.Rel)})
	}
	t.Render()
}

// Summary renders key/value pairs in insertion order.
func Summary(w io.Writer, title string, pairs [][2]string) {
	t := newTable(w, title)
	for _, kv := range pairs {
		t.AppendRow(table.Row{kv[0], kv[1]})
	}
	t.Render()
}
