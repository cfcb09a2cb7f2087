package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvarik/fitbit-go/fitbit"
)

type fakeExchanger struct {
	gotCode string
	session fitbit.Session
	err     error
}

func (f *fakeExchanger) ExchangeAuthorizationCode(_ context.Context, code string) (fitbit.Session, error) {
	f.gotCode = code
	return f.session, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCallback_Success(t *testing.T) {
	ex := &fakeExchanger{session: fitbit.Session{UserID: "U1", AccessToken: "A1", RefreshToken: "R1"}}
	results := make(chan callbackResult, 1)
	router := newCallbackRouter(quietLogger(), ex, "/callback", results)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=XYZ", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "XYZ", ex.gotCode)

	res := <-results
	require.NoError(t, res.err)
	assert.Equal(t, "U1", res.session.UserID)
}

func TestCallback_ConsentDenied(t *testing.T) {
	ex := &fakeExchanger{}
	results := make(chan callbackResult, 1)
	router := newCallbackRouter(quietLogger(), ex, "/", results)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?error=access_denied&error_description=nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ex.gotCode)

	res := <-results
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "access_denied")
}

func TestCallback_MissingCodeKeepsWaiting(t *testing.T) {
	results := make(chan callbackResult, 1)
	router := newCallbackRouter(quietLogger(), &fakeExchanger{}, "/", results)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, results)
}

func TestCallback_ExchangeFailure(t *testing.T) {
	ex := &fakeExchanger{err: &fitbit.AuthenticationError{GrantType: "authorization_code", StatusCode: 400, Body: "bad code"}}
	results := make(chan callbackResult, 1)
	router := newCallbackRouter(quietLogger(), ex, "/", results)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?code=bad", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	res := <-results
	var authErr *fitbit.AuthenticationError
	assert.True(t, errors.As(res.err, &authErr))
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"http://localhost", ":80"},
		{"https://example.com/cb", ":443"},
		{"http://127.0.0.1:8189/callback", ":8189"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.uri)
		require.NoError(t, err)
		assert.Equal(t, tt.want, listenAddr(u), tt.uri)
	}
}
