package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sheetdoc/internal/domain"
	"sheetdoc/internal/service"
)

// ConvertHandler handles the workbook upload endpoint.
type ConvertHandler struct {
	convertService service.ConvertService
	maxFileSize    int64
}

// NewConvertHandler creates a new ConvertHandler. maxFileSize is in bytes;
// zero disables the size check.
func NewConvertHandler(convertService service.ConvertService, maxFileSize int64) *ConvertHandler {
	return &ConvertHandler{convertService: convertService, maxFileSize: maxFileSize}
}

// Upload handles POST /upload. It accepts a multipart form with a required
// "file" field holding an .xlsx workbook and responds with the assembled
// Markdown document as an attachment.
func (h *ConvertHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		HandleError(c, domain.ErrDecodeFailed)
		return
	}

	log.Printf("received %q (%d bytes), starting conversion", header.Filename, len(data))

	result, err := h.convertService.Convert(c.Request.Context(), header.Filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+result.EncodedFilename())
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(result.Markdown))
}
