package port

import "sheetdoc/internal/domain"

// SheetDecoder decodes raw workbook bytes into an ordered list of sheets.
// Every row is treated as data; no header inference is performed.
type SheetDecoder interface {
	Decode(data []byte) ([]domain.Sheet, error)
}
