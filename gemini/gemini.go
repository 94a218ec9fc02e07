// Package gemini adapts the Gemini model backends to a single text-in, text-out call
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Generator sends one prompt to the model and returns its raw reply text
//
// Implementations report a quota rejection as *RateLimitedError and every
// other backend failure as *ServiceError. The reply is returned untouched;
// callers decide how to read it
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RateLimitedError is returned when the model service rejected the call for quota reasons
type RateLimitedError struct {
	// RetryAfter is the delay the service asked for, zero when it gave none
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited by model service (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited by model service: %v", e.Err)
}

func (e *RateLimitedError) Unwrap() error { return e.Err }

// ServiceError covers every non-quota failure of the model call
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err carries a quota rejection, and the suggested delay
func IsRateLimited(err error) (time.Duration, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}
	return 0, false
}

var errNoCandidates = errors.New("no response from Gemini")

// CleanJSON strips a surrounding markdown code fence from a model reply
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// drop the language tag, e.g. ```json
	if idx := strings.IndexByte(text, '\n'); idx >= 0 && !strings.ContainsAny(text[:idx], "{[") {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
