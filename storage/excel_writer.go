package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelSheet is the sheet the full-data table is written to.
const ExcelSheet = "Full Data"

// ExcelWriter exports the full-data table to an XLSX workbook.
type ExcelWriter struct {
	path string
	file *excelize.File
}

// NewExcelWriter prepares a workbook that is saved to path by WriteTable.
func NewExcelWriter(path string) (*ExcelWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExcelSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	return &ExcelWriter{path: path, file: f}, nil
}

// WriteTable writes a bold grey header row and the data rows, then saves.
func (e *ExcelWriter) WriteTable(header []string, rows [][]string) error {
	style, err := e.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "F5F5F5"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"808080"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	if err := e.setRow(1, header); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := e.file.SetCellStyle(ExcelSheet, first, last, style); err != nil {
		return fmt.Errorf("xlsx: apply header style: %w", err)
	}

	for i, row := range rows {
		if err := e.setRow(i+2, row); err != nil {
			return err
		}
	}

	if err := e.file.SaveAs(e.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", e.path, err)
	}
	return nil
}

func (e *ExcelWriter) setRow(n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("xlsx: row %d: %w", n, err)
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := e.file.SetSheetRow(ExcelSheet, cell, &vals); err != nil {
		return fmt.Errorf("xlsx: write row %d: %w", n, err)
	}
	return nil
}

// Close releases the workbook.
func (e *ExcelWriter) Close() error {
	return e.file.Close()
}
