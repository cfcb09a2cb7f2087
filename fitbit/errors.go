package fitbit

import (
	"errors"
	"fmt"
)

// maxErrorBody caps how much of a response body is echoed in error strings.
const maxErrorBody = 1000

// ErrNoSession is returned when an operation needs an authenticated session
// and no authorization or refresh exchange has succeeded yet.
var ErrNoSession = errors.New("fitbit: no authenticated session")

// ConfigurationError reports missing or unusable client configuration.
type ConfigurationError struct {
	Field string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("fitbit config error: %s is required", e.Field)
}

// AuthenticationError is returned when the token endpoint rejects an
// authorization-code or refresh-token exchange.
type AuthenticationError struct {
	GrantType  string
	StatusCode int
	Body       string
	Err        error // Underlying error, if any
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("fitbit auth error (%s, %d): %s", e.GrantType, e.StatusCode, truncate(e.Body))
	if e.Err != nil {
		msg += fmt.Sprintf(" - %v", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// StateError is returned when an operation is attempted in a state that does
// not allow it, such as a refresh or an API call before authorization.
type StateError struct {
	Op string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("fitbit: %s requires an authenticated session", e.Op)
}

// Unwrap reports ErrNoSession so callers can use errors.Is.
func (e *StateError) Unwrap() error {
	return ErrNoSession
}

// NetworkError wraps transport-level failures: DNS, refused connections,
// timeouts and cancelled contexts.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("fitbit network error: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError describes a non-2xx answer from the resource API. Client.Send
// never returns it; callers obtain it through Response.Err when they want
// status failures as errors.
type UpstreamError struct {
	StatusCode int
	Body       string
	URL        string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fitbit api error: %d - %s at %s", e.StatusCode, truncate(e.Body), e.URL)
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
