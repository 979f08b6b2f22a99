package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sheetdoc/internal/domain"
	"sheetdoc/internal/port"
)

type excelDecoder struct{}

// NewExcelDecoder creates a SheetDecoder backed by excelize for .xlsx
// workbooks.
func NewExcelDecoder() port.SheetDecoder {
	return &excelDecoder{}
}

// Decode reads every sheet of the workbook in file order. Rows are padded
// with empty cells to the widest row of the sheet so each grid is
// rectangular.
func (d *excelDecoder) Decode(data []byte) ([]domain.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sheets []domain.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, domain.Sheet{Name: name, Rows: padRows(rows)})
	}
	return sheets, nil
}

func padRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}
