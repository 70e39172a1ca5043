package exporter

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"gradebook/roster"
)

// WriteXLSX writes the same table as WriteCSV into the first sheet of a new
// workbook.
func WriteXLSX(w io.Writer, r *roster.Roster) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	subjects := Subjects(r)

	rows := [][]string{Header(subjects)}
	for _, s := range r.ListAll() {
		rows = append(rows, Row(s, subjects))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing sheet row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ExportXLSX writes the roster as an Excel workbook to the file at path.
func ExportXLSX(path string, r *roster.Roster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating xlsx file: %w", err)
	}
	if err := WriteXLSX(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing xlsx file: %w", err)
	}
	return nil
}
