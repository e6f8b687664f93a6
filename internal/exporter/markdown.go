package exporter

import (
	"fmt"
	"os"
	"strings"

	"rollcall/pkg/contracts/domain"
)

// MarkdownWriter renders report views into a single Markdown document,
// one section per view.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a new Markdown writer instance
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Write renders the set as Markdown and saves it at path.
func (w *MarkdownWriter) Write(set domain.ReportSet, path string) error {
	var b strings.Builder

	b.WriteString("# Attendance Report\n\n")
	b.WriteString(fmt.Sprintf("Generated %s\n\n", set.GeneratedAt.Format("2006-01-02 15:04 MST")))

	for _, view := range set.Views {
		t := buildTable(view)

		b.WriteString(fmt.Sprintf("## %s\n\n", t.Title))
		b.WriteString(fmt.Sprintf("Period: %s\n\n", periodRange(view.Period)))

		writeMarkdownTable(&b, t)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}

	return nil
}

// writeMarkdownTable appends a pipe table for one view.
func writeMarkdownTable(b *strings.Builder, t table) {
	writeMarkdownRow(b, t.Headers)

	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(b, sep)

	for _, row := range t.Rows {
		writeMarkdownRow(b, row)
	}
	writeMarkdownRow(b, t.Summary)
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(strings.ReplaceAll(c, "|", "\\|"))
	}
	b.WriteString(" |\n")
}
