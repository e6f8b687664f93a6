package domain

import (
	"time"
)

// RawRecord is the parsed member list of a single notebook document.
// Names are the raw bullet entries exactly as written; normalization
// happens during aggregation. A nil or empty Names slice means the
// document carried no attendance data for its date.
type RawRecord struct {
	Path  string    `json:"path"`
	Date  time.Time `json:"date"`
	Names []string  `json:"names,omitempty"`
}

// Scope selects which member subset a report covers.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeOfficers Scope = "officers"
	ScopeBoth     Scope = "both"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeAll, ScopeOfficers, ScopeBoth:
		return true
	}
	return false
}

// Format identifies a report export encoding.
type Format string

const (
	FormatNotebook Format = "notebook"
	FormatExcel    Format = "excel"
	FormatMarkdown Format = "markdown"
)

// Valid reports whether f is one of the known export formats.
func (f Format) Valid() bool {
	switch f {
	case FormatNotebook, FormatExcel, FormatMarkdown:
		return true
	}
	return false
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatNotebook:
		return ".ipynb"
	case FormatExcel:
		return ".xlsx"
	case FormatMarkdown:
		return ".md"
	}
	return ""
}

// ReportRequest describes one report-generation invocation.
type ReportRequest struct {
	Scope   Scope    `json:"scope" validate:"required,scope"`
	Formats []Format `json:"formats" validate:"required,min=1,dive,format"`
}

// MemberAttendance is one member's row in a report view: the canonical
// identity key, a display name, and the sorted distinct dates on which
// the member was present. Count always equals len(Dates).
type MemberAttendance struct {
	Key     string      `json:"key"`
	Display string      `json:"display"`
	Count   int         `json:"count"`
	Dates   []time.Time `json:"dates"`
}

// Report is a read-only view over aggregated attendance, filtered to a
// single scope. Members keeps first-appearance order for the all view
// and roster order for the officers view. Period is the full set of
// distinct document dates that contributed, sorted ascending.
type Report struct {
	Scope       Scope              `json:"scope"`
	Members     []MemberAttendance `json:"members"`
	Period      []time.Time        `json:"period"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Months returns the distinct months of the reporting period, sorted
// ascending, formatted as "2006-01".
func (r Report) Months() []string {
	seen := make(map[string]bool)
	var months []string
	for _, d := range r.Period {
		m := d.Format("2006-01")
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	return months
}

// MonthlyCount returns how many of the member's attendance dates fall
// in the given "2006-01" month.
func (m MemberAttendance) MonthlyCount(month string) int {
	n := 0
	for _, d := range m.Dates {
		if d.Format("2006-01") == month {
			n++
		}
	}
	return n
}

// PresentInMonth counts the distinct members of the report present at
// least once in the given "2006-01" month.
func (r Report) PresentInMonth(month string) int {
	n := 0
	for _, m := range r.Members {
		if m.MonthlyCount(month) > 0 {
			n++
		}
	}
	return n
}

// ReportSet bundles the view(s) produced for one request. ScopeBoth
// yields two views over the same aggregate; every other scope yields
// one. All views share a GeneratedAt timestamp.
type ReportSet struct {
	Scope       Scope       `json:"scope"`
	Views       []Report    `json:"views"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Artifact describes one exported report file.
type Artifact struct {
	Format   Format    `json:"format"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}
