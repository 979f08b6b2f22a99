package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
	openai "github.com/sashabaranov/go-openai"
)

// RateLimitError indicates provider throttling persisted across every retry
// attempt.
type RateLimitError struct {
	Provider string
	Attempts int
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited after %d attempts: %v", e.Provider, e.Attempts, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a non-retryable provider failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indicates the provider responded successfully but
// the response shape was not the expected one. Never retried.
type MalformedResponseError struct {
	Provider string
	Raw      string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s", e.Provider)
}

// IsThrottle reports whether err is a transient rate-limit rejection worth
// retrying. Structured SDK error codes are checked first; the message
// substring markers are kept as a fallback for errors that surface without a
// typed code.
func IsThrottle(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	var smithyErr smithy.APIError
	if errors.As(err, &smithyErr) {
		switch smithyErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException":
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "ThrottlingException") || strings.Contains(msg, "Too many requests")
}
