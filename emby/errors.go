package emby

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates missing or invalid connection parameters
	ErrInvalidConfig = errors.New("invalid emby configuration")
	// ErrUserNotFound indicates no public user matches the configured username
	ErrUserNotFound = errors.New("user not found")
	// ErrTransport indicates a failed request or an unexpected response
	ErrTransport = errors.New("emby request failed")
	// ErrAuthentication indicates the server rejected the credential exchange
	ErrAuthentication = fmt.Errorf("authentication rejected: %w", ErrTransport)
)

// APIError represents an unexpected Emby API response
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Body       string

	// kind is the sentinel this error unwraps to
	kind error
}

func newAPIError(kind error, endpoint string, statusCode int, body []byte) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("unexpected status %d", statusCode),
		Body:       truncate(string(body), 512),
		kind:       kind,
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("emby API error: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Unwrap returns the error class, ErrTransport unless set otherwise
func (e *APIError) Unwrap() error {
	if e.kind == nil {
		return ErrTransport
	}
	return e.kind
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsWorkflowError reports whether err is a runtime refresh failure (user lookup
// or transport) as opposed to a setup defect such as ErrInvalidConfig.
func IsWorkflowError(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrTransport)
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func transportError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrTransport}, args...)...)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "...[truncated]"
}
