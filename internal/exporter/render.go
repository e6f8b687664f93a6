package exporter

import (
	"strconv"
	"strings"
	"time"

	"rollcall/pkg/contracts/domain"
)

// table is the flat representation of one report view, shared by all
// output formats: a title, a header row, one row per member and a
// trailing summary row with per-month presence counts.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Summary []string
}

// viewTitle maps a view scope to its human-readable section name.
func viewTitle(scope domain.Scope) string {
	switch scope {
	case domain.ScopeOfficers:
		return "Officers"
	default:
		return "All Members"
	}
}

// buildTable flattens a report view into its tabular form. Columns are
// Member, Total, one column per month of the reporting period, and the
// member's attendance dates.
func buildTable(r domain.Report) table {
	months := r.Months()

	headers := []string{"Member", "Total"}
	headers = append(headers, months...)
	headers = append(headers, "Dates")

	rows := make([][]string, 0, len(r.Members))
	for _, m := range r.Members {
		row := []string{m.Display, formatInt(m.Count)}
		for _, month := range months {
			row = append(row, formatInt(m.MonthlyCount(month)))
		}
		row = append(row, formatDates(m.Dates))
		rows = append(rows, row)
	}

	summary := []string{"Members present", formatInt(presentTotal(r))}
	for _, month := range months {
		summary = append(summary, formatInt(r.PresentInMonth(month)))
	}
	summary = append(summary, "")

	return table{
		Title:   viewTitle(r.Scope),
		Headers: headers,
		Rows:    rows,
		Summary: summary,
	}
}

// presentTotal counts the members with at least one attendance.
func presentTotal(r domain.Report) int {
	n := 0
	for _, m := range r.Members {
		if m.Count > 0 {
			n++
		}
	}
	return n
}

// formatDates joins dates as comma-separated ISO days.
func formatDates(dates []time.Time) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Format("2006-01-02")
	}
	return strings.Join(parts, ", ")
}

// formatInt formats an int for tabular output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// periodRange describes the reporting period as "start to end", or a
// single day when the period has one date. An empty period yields "no
// documents".
func periodRange(period []time.Time) string {
	switch len(period) {
	case 0:
		return "no documents"
	case 1:
		return period[0].Format("2006-01-02")
	default:
		return period[0].Format("2006-01-02") + " to " + period[len(period)-1].Format("2006-01-02")
	}
}
