package attendance

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbook produced by Workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultSheet = "Sheet1"
	nameColWidth = 28
	dateColWidth = 11
	maxSheetName = 31
)

// Workbook renders the matrix as an .xlsx file with a single sheet named
// sheetName. The header row is bold and frozen; attendance cells are written as
// numbers so that the sheet can sum them.
func Workbook(sheetName string, m Matrix) ([]byte, error) {
	if sheetName == "" {
		sheetName = defaultSheet
	}
	if r := []rune(sheetName); len(r) > maxSheetName {
		sheetName = string(r[:maxSheetName])
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, fmt.Errorf("naming sheet: %w", err)
		}
	}

	for i, row := range m {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
			if i > 0 && j > 0 {
				switch v {
				case present:
					values[j] = 1
				case absent:
					values[j] = 0
				}
			}
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if len(m) > 0 && len(m[0]) > 0 {
		if err := styleHeader(f, sheetName, len(m[0])); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleHeader(f *excelize.File, sheet string, cols int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", nameColWidth); err != nil {
		return err
	}
	if cols > 1 {
		lastCol, err := excelize.ColumnNumberToName(cols)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", lastCol, dateColWidth); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
