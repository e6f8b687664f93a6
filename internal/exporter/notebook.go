package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rollcall/pkg/contracts/domain"
)

// NotebookWriter renders report views into a Jupyter notebook, one
// markdown cell per view.
type NotebookWriter struct{}

// NewNotebookWriter creates a new notebook writer instance
func NewNotebookWriter() *NotebookWriter {
	return &NotebookWriter{}
}

type notebookFile struct {
	Cells         []notebookCell   `json:"cells"`
	Metadata      notebookMetadata `json:"metadata"`
	NBFormat      int              `json:"nbformat"`
	NBFormatMinor int              `json:"nbformat_minor"`
}

type notebookCell struct {
	CellType string                 `json:"cell_type"`
	Metadata map[string]interface{} `json:"metadata"`
	Source   []string               `json:"source"`
}

type notebookMetadata struct {
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
}

// Write renders the set as a notebook document and saves it at path.
func (w *NotebookWriter) Write(set domain.ReportSet, path string) error {
	nb := notebookFile{
		NBFormat:      4,
		NBFormatMinor: 5,
	}
	nb.Metadata.LanguageInfo.Name = "markdown"

	nb.Cells = append(nb.Cells, markdownCell("# Attendance Report\n"))
	nb.Cells = append(nb.Cells, markdownCell(fmt.Sprintf("Generated %s\n",
		set.GeneratedAt.Format("2006-01-02 15:04 MST"))))

	for _, view := range set.Views {
		t := buildTable(view)

		var b strings.Builder
		b.WriteString(fmt.Sprintf("## %s\n\n", t.Title))
		b.WriteString(fmt.Sprintf("Period: %s\n\n", periodRange(view.Period)))
		writeMarkdownTable(&b, t)

		nb.Cells = append(nb.Cells, markdownCell(b.String()))
	}

	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write notebook report: %w", err)
	}

	return nil
}

// markdownCell splits text into notebook source lines, each keeping
// its trailing newline as the format expects.
func markdownCell(text string) notebookCell {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return notebookCell{
		CellType: "markdown",
		Metadata: map[string]interface{}{},
		Source:   lines,
	}
}
