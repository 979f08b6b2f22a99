package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"sheetdoc/internal/domain"
	"sheetdoc/internal/llm"
	"sheetdoc/internal/port"
)

// StructuringFailedPlaceholder replaces a sheet's fragment when the LLM call
// for that sheet fails. Failure is isolated per sheet; the document is still
// assembled.
const StructuringFailedPlaceholder = "(automatic structuring failed for this sheet)"

const spreadsheetExt = ".xlsx"

var anchorStrip = regexp.MustCompile(`[^a-z0-9-]`)

// ConvertService converts an uploaded workbook into one structured Markdown
// document.
type ConvertService interface {
	Convert(ctx context.Context, filename string, data []byte) (*domain.DocumentResult, error)
}

type convertService struct {
	decoder   port.SheetDecoder
	completer port.Completer
}

// NewConvertService creates a ConvertService from a workbook decoder and an
// LLM completer.
func NewConvertService(decoder port.SheetDecoder, completer port.Completer) ConvertService {
	return &convertService{decoder: decoder, completer: completer}
}

// Convert decodes every sheet, structures each one through the LLM, and
// assembles a title, table of contents, and per-sheet sections in sheet
// order.
func (s *convertService) Convert(ctx context.Context, filename string, data []byte) (*domain.DocumentResult, error) {
	if !strings.HasSuffix(filename, spreadsheetExt) {
		return nil, fmt.Errorf("%w: only %s files are supported", domain.ErrUnsupportedFileType, spreadsheetExt)
	}

	sheets, err := s.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	tocLines := make([]string, 0, len(sheets))
	fragments := make([]string, 0, len(sheets))

	for _, sheet := range sheets {
		tocLines = append(tocLines, fmt.Sprintf("- [%s](#%s)", sheet.Name, anchor(sheet.Name)))

		log.Printf("structuring sheet %q", sheet.Name)
		content, err := s.structureSheet(ctx, sheet)
		if err != nil {
			log.Printf("structuring sheet %q failed: %v", sheet.Name, err)
			content = StructuringFailedPlaceholder
		}

		fragments = append(fragments, fmt.Sprintf("## %s\n\n%s", sheet.Name, content))
	}

	var b strings.Builder
	b.WriteString("# " + filename + "\n\n")
	b.WriteString("## Table of Contents\n\n")
	b.WriteString(strings.Join(tocLines, "\n"))
	b.WriteString("\n\n---\n\n")
	b.WriteString(strings.Join(fragments, "\n\n---\n\n"))

	return &domain.DocumentResult{
		Markdown: b.String(),
		Filename: strings.TrimSuffix(filename, spreadsheetExt) + ".md",
	}, nil
}

// structureSheet asks the LLM to reformat one sheet's raw grid into a
// Markdown fragment. The response is returned verbatim.
func (s *convertService) structureSheet(ctx context.Context, sheet domain.Sheet) (string, error) {
	return s.completer.Complete(ctx,
		llm.BuildSheetSystemPrompt(),
		llm.BuildSheetUserPrompt(sheet.Name, sheet.Rows),
	)
}

// anchor derives a GitHub-style heading anchor: lowercase, spaces to
// hyphens, everything outside [a-z0-9-] stripped. Hyphens left dangling at
// the edges by stripped characters are dropped too.
func anchor(sheetName string) string {
	a := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(sheetName)), " ", "-")
	return strings.Trim(anchorStrip.ReplaceAllString(a, ""), "-")
}
