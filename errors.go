package scribex

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrInvalidAPIKey indicates the API key is missing, malformed, or unauthorized.
	ErrInvalidAPIKey = errors.New("scribex: invalid API key")

	// ErrRateLimited indicates the provider's rate limit has been exceeded.
	ErrRateLimited = errors.New("scribex: rate limit exceeded")

	// ErrProviderUnavailable indicates the provider service is down or unreachable.
	ErrProviderUnavailable = errors.New("scribex: provider unavailable")

	// ErrUnknownProvider indicates no provider is registered under the requested name.
	ErrUnknownProvider = errors.New("scribex: unknown provider")
)

// ProviderError represents an error reported by a generation backend.
// It carries the best available message: the backend's structured error
// payload when one could be parsed, otherwise a message derived from the
// HTTP status code.
type ProviderError struct {
	Provider   ProviderID // The provider name
	StatusCode int        // HTTP status code (if applicable)
	Message    string     // Error message from the backend
	Err        error      // Wrapped sentinel error (ErrRateLimited, ErrProviderUnavailable, etc.)
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
