package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"sheetdoc/internal/port"
)

const defaultMaxRetries = 5

// Gateway wraps a provider Completer with the retry policy for transient
// throttling failures. Non-throttling errors fail immediately.
type Gateway struct {
	completer  port.Completer
	provider   string
	maxRetries int
	sleep      func(time.Duration)
}

// NewGateway creates a retrying gateway around a provider completer.
// maxRetries bounds the total number of attempts; values <= 0 fall back to
// the default of 5.
func NewGateway(completer port.Completer, provider string, maxRetries int) *Gateway {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Gateway{
		completer:  completer,
		provider:   provider,
		maxRetries: maxRetries,
		sleep:      time.Sleep,
	}
}

// Complete runs one completion call, retrying with exponential backoff while
// the provider reports throttling. The wait before attempt n+1 is
// 2^n + 2n seconds.
func (g *Gateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		text, err := g.completer.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}

		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return "", err
		}

		if !IsThrottle(err) {
			log.Printf("%s API call failed: %v", g.provider, err)
			return "", &ProviderError{Provider: g.provider, Err: err}
		}

		lastErr = err
		if attempt < g.maxRetries-1 {
			wait := backoff(attempt)
			log.Printf("%s API rate limited, retrying in %s (%d/%d)", g.provider, wait, attempt+1, g.maxRetries)
			g.sleep(wait)
		}
	}

	log.Printf("%s API call exhausted all %d retry attempts", g.provider, g.maxRetries)
	return "", &RateLimitError{Provider: g.provider, Attempts: g.maxRetries, Err: lastErr}
}

// backoff returns the wait before the attempt following the given 0-indexed
// attempt: 2^attempt + attempt*2 seconds.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)+attempt*2) * time.Second
}
