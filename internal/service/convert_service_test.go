package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sheetdoc/internal/domain"
	"sheetdoc/internal/service"
	"sheetdoc/mocks"
)

func sheetPrompt(name string) interface{} {
	return mock.MatchedBy(func(userPrompt string) bool {
		return strings.Contains(userPrompt, `"`+name+`"`)
	})
}

func testSheets() []domain.Sheet {
	return []domain.Sheet{
		{Name: "Sheet1", Rows: [][]string{{"a", "b"}, {"1", "2"}}},
		{Name: "シート 2", Rows: [][]string{{"x"}}},
	}
}

func TestConvert_AssemblesDocument(t *testing.T) {
	decoder := new(mocks.MockSheetDecoder)
	decoder.On("Decode", mock.Anything).Return(testSheets(), nil)

	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, sheetPrompt("Sheet1")).Return("| a | b |", nil)
	completer.On("Complete", mock.Anything, mock.Anything, sheetPrompt("シート 2")).Return("x table", nil)

	svc := service.NewConvertService(decoder, completer)

	result, err := svc.Convert(context.Background(), "report.xlsx", []byte("bytes"))

	require.NoError(t, err)
	assert.Equal(t, "report.md", result.Filename)

	md := result.Markdown
	assert.True(t, strings.HasPrefix(md, "# report.xlsx\n\n## Table of Contents\n\n"))
	assert.Contains(t, md, "- [Sheet1](#sheet1)")
	assert.Contains(t, md, "- [シート 2](#2)")
	assert.Contains(t, md, "## Sheet1\n\n| a | b |")
	assert.Contains(t, md, "## シート 2\n\nx table")

	// Sections and TOC entries keep decoder order.
	assert.Less(t, strings.Index(md, "- [Sheet1]"), strings.Index(md, "- [シート 2]"))
	assert.Less(t, strings.Index(md, "## Sheet1"), strings.Index(md, "## シート 2"))

	completer.AssertNumberOfCalls(t, "Complete", 2)
}

func TestConvert_SheetFailureIsIsolated(t *testing.T) {
	decoder := new(mocks.MockSheetDecoder)
	decoder.On("Decode", mock.Anything).Return(testSheets(), nil)

	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, sheetPrompt("Sheet1")).Return("| a | b |", nil)
	completer.On("Complete", mock.Anything, mock.Anything, sheetPrompt("シート 2")).
		Return("", errors.New("rate limited"))

	svc := service.NewConvertService(decoder, completer)

	result, err := svc.Convert(context.Background(), "report.xlsx", []byte("bytes"))

	require.NoError(t, err)
	assert.Contains(t, result.Markdown, "## Sheet1\n\n| a | b |")
	assert.Contains(t, result.Markdown, "## シート 2\n\n"+service.StructuringFailedPlaceholder)
}

func TestConvert_UnsupportedExtension(t *testing.T) {
	decoder := new(mocks.MockSheetDecoder)
	completer := new(mocks.MockCompleter)
	svc := service.NewConvertService(decoder, completer)

	_, err := svc.Convert(context.Background(), "report.csv", []byte("bytes"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	decoder.AssertNotCalled(t, "Decode", mock.Anything)
}

func TestConvert_DecodeFailure(t *testing.T) {
	decoder := new(mocks.MockSheetDecoder)
	decoder.On("Decode", mock.Anything).Return(nil, errors.New("corrupt zip"))
	completer := new(mocks.MockCompleter)
	svc := service.NewConvertService(decoder, completer)

	_, err := svc.Convert(context.Background(), "report.xlsx", []byte("bytes"))

	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}

func TestConvert_EmptyWorkbook(t *testing.T) {
	decoder := new(mocks.MockSheetDecoder)
	decoder.On("Decode", mock.Anything).Return([]domain.Sheet{}, nil)
	completer := new(mocks.MockCompleter)
	svc := service.NewConvertService(decoder, completer)

	result, err := svc.Convert(context.Background(), "empty.xlsx", []byte("bytes"))

	require.NoError(t, err)
	assert.Equal(t, "# empty.xlsx\n\n## Table of Contents\n\n\n\n---\n\n", result.Markdown)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvert_FilenameEncoding(t *testing.T) {
	decoder := new(mocks.MockSheetDecoder)
	decoder.On("Decode", mock.Anything).Return([]domain.Sheet{}, nil)
	completer := new(mocks.MockCompleter)
	svc := service.NewConvertService(decoder, completer)

	result, err := svc.Convert(context.Background(), "月次レポート.xlsx", []byte("bytes"))

	require.NoError(t, err)
	assert.Equal(t, "月次レポート.md", result.Filename)
	assert.Equal(t, "%E6%9C%88%E6%AC%A1%E3%83%AC%E3%83%9D%E3%83%BC%E3%83%88.md", result.EncodedFilename())
}
