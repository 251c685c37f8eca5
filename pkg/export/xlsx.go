package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// wholeNumberFormat is the built-in "#,##0" spreadsheet number format.
const wholeNumberFormat = 3

// WriteXLSX writes the schedule as a single-sheet workbook: the Header row
// followed by one row per period. Values are stored unrounded; the sheet
// displays them as whole numbers.
func WriteXLSX(w io.Writer, d Document) error {
	if d.Result == nil {
		return ErrNoResult
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	rows := Rows(d.Result)
	for i, row := range rows {
		values := make([]interface{}, len(row))
		values[0] = int(row[0])
		for j := 1; j < len(row); j++ {
			values[j] = row[j]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write period %d: %w", i+1, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: wholeNumberFormat})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(Header), len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "B2", lastCell, style); err != nil {
		return fmt.Errorf("failed to style schedule: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "F", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
