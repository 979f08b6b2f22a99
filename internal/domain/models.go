package domain

import "net/url"

// Sheet is one named tab of a workbook, decoded into a rectangular grid of
// cell values rendered as text. Rows keep the order they appear in the file.
type Sheet struct {
	Name string
	Rows [][]string
}

// DocumentResult is the assembled Markdown document for one uploaded
// workbook, plus the suggested download filename.
type DocumentResult struct {
	Markdown string
	Filename string
}

// EncodedFilename returns the suggested filename percent-encoded (UTF-8) for
// use in a Content-Disposition filename* parameter.
func (d *DocumentResult) EncodedFilename() string {
	return url.PathEscape(d.Filename)
}
