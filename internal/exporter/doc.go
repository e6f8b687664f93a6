// Package exporter renders aggregated attendance reports into their
// output formats.
//
// Three writers share a common tabular rendering of a report view:
//
// ExcelWriter: one workbook with a sheet per view, written with
// excelize.
//
// MarkdownWriter: one document with a pipe table per view.
//
// NotebookWriter: a Jupyter notebook with a markdown cell per view.
//
// Exporter drives the writers concurrently, one goroutine per
// requested format, and reports per-format failures as FormatError
// values without aborting the remaining formats.
package exporter
