package fitbit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{Field: "client id"}
	if got := err.Error(); !strings.Contains(got, "client id") {
		t.Errorf("expected error to name the missing field, got: %s", got)
	}
}

func TestAuthenticationError_Error(t *testing.T) {
	err := &AuthenticationError{
		GrantType:  "refresh_token",
		StatusCode: 401,
		Body:       `{"errors":[{"errorType":"invalid_grant"}]}`,
	}

	got := err.Error()
	for _, want := range []string{"refresh_token", "401", "invalid_grant"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected error to contain %q, got: %s", want, got)
		}
	}
}

func TestAuthenticationError_TruncatesBody(t *testing.T) {
	err := &AuthenticationError{
		GrantType:  "authorization_code",
		StatusCode: 400,
		Body:       strings.Repeat("x", 5000),
	}

	got := err.Error()
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated body to end with ..., got suffix %q", got[len(got)-10:])
	}
	if strings.Count(got, "x") != maxErrorBody {
		t.Errorf("expected %d body bytes in message, got %d", maxErrorBody, strings.Count(got, "x"))
	}
}

func TestAuthenticationError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("decode failure")
	err := &AuthenticationError{Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find inner error")
	}
	if !strings.Contains(err.Error(), "decode failure") {
		t.Errorf("expected wrapped error in message, got: %s", err.Error())
	}
}

func TestStateError_IsErrNoSession(t *testing.T) {
	var err error = &StateError{Op: "GET /1/user/-/profile.json"}

	if !errors.Is(err, ErrNoSession) {
		t.Error("expected StateError to match ErrNoSession")
	}
	if !strings.Contains(err.Error(), "profile.json") {
		t.Errorf("expected operation in message, got: %s", err.Error())
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := &NetworkError{Method: "GET", URL: "https://api.fitbit.com/1/foods/units.json", Err: context.DeadlineExceeded}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected errors.Is to find context.DeadlineExceeded")
	}
	got := err.Error()
	if !strings.Contains(got, "GET") || !strings.Contains(got, "units.json") {
		t.Errorf("expected method and URL in message, got: %s", got)
	}
}

func TestUpstreamError_Error(t *testing.T) {
	err := &UpstreamError{
		StatusCode: 500,
		Body:       "internal failure",
		URL:        "https://api.fitbit.com/1/user/-/profile.json",
	}

	got := err.Error()
	if !strings.Contains(got, "500") {
		t.Errorf("expected error to contain status code 500, got: %s", got)
	}
	if !strings.Contains(got, "internal failure") {
		t.Errorf("expected error to contain body, got: %s", got)
	}
	if !strings.Contains(got, "api.fitbit.com") {
		t.Errorf("expected error to contain URL, got: %s", got)
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &AuthenticationError{StatusCode: 400})

	var authErr *AuthenticationError
	if !errors.As(wrapped, &authErr) {
		t.Fatal("expected errors.As to find *AuthenticationError")
	}
	if authErr.StatusCode != 400 {
		t.Errorf("expected status 400, got %d", authErr.StatusCode)
	}
}
