package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sheetdoc/internal/domain"
)

// MapDomainError translates domain errors to HTTP status codes and
// client-facing messages.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "no file was uploaded"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "only Excel files (.xlsx) are supported"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDecodeFailed):
		return http.StatusBadRequest, "the uploaded workbook could not be read"
	default:
		return http.StatusInternalServerError, "an error occurred: " + err.Error()
	}
}

// HandleError maps a domain error and writes a plain-text error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	c.String(status, msg)
}
