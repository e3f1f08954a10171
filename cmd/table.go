package cmd

import (
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/lectiz/internal/ui/theme"
)

// report collects rows for a bordered CLI table. Numeric columns are
// right-aligned and an optional totals row is rendered in bold.
type report struct {
	headers []string
	rows    [][]string
	right   map[int]bool
	totals  []string
}

func newReport(headers ...string) *report {
	return &report{headers: headers, right: map[int]bool{}}
}

func (r *report) alignRight(cols ...int) *report {
	for _, c := range cols {
		r.right[c] = true
	}
	return r
}

func (r *report) add(cells ...string) {
	r.rows = append(r.rows, cells)
}

func (r *report) total(cells ...string) {
	r.totals = cells
}

func (r *report) String() string {
	rows := r.rows
	if r.totals != nil {
		rows = append(rows[:len(rows):len(rows)], r.totals)
	}
	totalsRow := len(r.rows)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(r.headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if r.right[col] {
				s = s.Align(lipgloss.Right)
			}
			switch {
			case row == table.HeaderRow:
				s = s.Bold(true).Foreground(theme.Primary)
			case r.totals != nil && row == totalsRow:
				s = s.Bold(true)
			}
			return s
		})
	return t.Render()
}

// printReport writes r to w, dropping colors when w is not a terminal.
func printReport(w io.Writer, r *report) {
	_, _ = lipgloss.Fprintln(w, r.String())
}

// printFields writes aligned "label value" lines.
func printFields(w io.Writer, fields [][2]string) {
	label := lipgloss.NewStyle().Bold(true).Width(11)
	for _, f := range fields {
		_, _ = lipgloss.Fprintln(w, label.Render(f[0])+f[1])
	}
}

func printHeading(w io.Writer, title string) {
	_, _ = lipgloss.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(title))
}
