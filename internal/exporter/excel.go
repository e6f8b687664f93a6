package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"rollcall/pkg/contracts/domain"
)

// ExcelWriter renders report views into an xlsx workbook, one sheet
// per view.
type ExcelWriter struct{}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write renders every view of the set into a single workbook and saves
// it at path.
func (w *ExcelWriter) Write(set domain.ReportSet, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, view := range set.Views {
		t := buildTable(view)

		sheet := t.Title
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		if err := w.writeSheet(f, sheet, t, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Debug("Excel report written",
		slog.String("path", path),
		slog.Int("sheets", len(set.Views)))

	return nil
}

// writeSheet fills one sheet with a view's table.
func (w *ExcelWriter) writeSheet(f *excelize.File, sheet string, t table, headerStyle int) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	endCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return fmt.Errorf("failed to resolve header column: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", endCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	rowNum := 2
	for _, row := range t.Rows {
		if err := w.writeRow(f, sheet, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}

	if err := w.writeRow(f, sheet, rowNum, t.Summary); err != nil {
		return err
	}

	// Widen the name and dates columns so they stay readable.
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, endCol, endCol, 60); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	return nil
}

func (w *ExcelWriter) writeRow(f *excelize.File, sheet string, rowNum int, row []string) error {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to resolve cell for row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
