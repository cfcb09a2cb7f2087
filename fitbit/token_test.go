package fitbit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer is a fake token endpoint. Each successful exchange issues
// A<n>/R<n> so tests can tell generations apart.
type tokenServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []url.Values
	headers  []http.Header

	issued atomic.Int64
	status atomic.Int64
	body   atomic.Value // string override
}

func newTokenServer(t *testing.T) *tokenServer {
	t.Helper()

	ts := &tokenServer{}
	ts.status.Store(http.StatusOK)
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}

		ts.mu.Lock()
		ts.requests = append(ts.requests, r.PostForm)
		ts.headers = append(ts.headers, r.Header.Clone())
		ts.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		status := int(ts.status.Load())
		w.WriteHeader(status)

		if body, ok := ts.body.Load().(string); ok && body != "" {
			_, _ = io.WriteString(w, body)
			return
		}
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"errors":[{"errorType":"invalid_grant","message":"Authorization code invalid"}],"success":false}`)
			return
		}
		n := ts.issued.Add(1)
		_, _ = fmt.Fprintf(w, `{"access_token":"A%d","refresh_token":"R%d","user_id":"U1","expires_in":28800,"token_type":"Bearer"}`, n, n)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *tokenServer) lastRequest() (url.Values, http.Header) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests[len(ts.requests)-1], ts.headers[len(ts.headers)-1]
}

func (ts *tokenServer) requestCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.requests)
}

func newTestTokenManager(t *testing.T, ts *tokenServer) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(
		NewCredentials("22942C", "s3cr3t", "http://localhost"),
		WithTokenURL(ts.URL),
		WithTokenLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RequiresCredentials(t *testing.T) {
	_, err := NewTokenManager(NewCredentials("", "secret", ""))
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "client id", cfgErr.Field)

	_, err = NewTokenManager(NewCredentials("id", "", ""))
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "client secret", cfgErr.Field)
}

func TestAuthorizationURL(t *testing.T) {
	m, err := NewTokenManager(NewCredentials("22942C", "s3cr3t", "http://localhost", ScopeSleep, ScopeActivity, ScopeHeartRate))
	require.NoError(t, err)

	raw := m.AuthorizationURL()
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "www.fitbit.com", u.Host)
	assert.Equal(t, "/oauth2/authorize", u.Path)

	q := u.Query()
	assert.Len(t, q, 4)
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "22942C", q.Get("client_id"))
	assert.Equal(t, "http://localhost", q.Get("redirect_uri"))
	assert.Equal(t, "sleep activity heartrate", q.Get("scope"))
}

func TestAuthorizationURL_DefaultScopes(t *testing.T) {
	m, err := NewTokenManager(NewCredentials("id", "secret", ""))
	require.NoError(t, err)

	u, err := url.Parse(m.AuthorizationURL())
	require.NoError(t, err)

	scopes := strings.Fields(u.Query().Get("scope"))
	require.Len(t, scopes, len(DefaultScopes()))
	for i, s := range DefaultScopes() {
		assert.Equal(t, string(s), scopes[i])
	}
}

func TestSession_AbsentBeforeExchange(t *testing.T) {
	m := newTestTokenManager(t, newTokenServer(t))

	_, ok := m.Session()
	assert.False(t, ok)
}

func TestExchangeAuthorizationCode_Success(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	got, err := m.ExchangeAuthorizationCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, Session{UserID: "U1", AccessToken: "A1", RefreshToken: "R1"}, got)

	current, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, got, current)

	form, header := ts.lastRequest()
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "abc123", form.Get("code"))
	assert.Equal(t, "22942C", form.Get("client_id"))
	assert.Equal(t, "http://localhost", form.Get("redirect_uri"))
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("22942C:s3cr3t")), header.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", header.Get("Content-Type"))
}

func TestExchangeAuthorizationCode_Rejected(t *testing.T) {
	ts := newTokenServer(t)
	ts.status.Store(http.StatusBadRequest)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "bad")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
	assert.Equal(t, "authorization_code", authErr.GrantType)
	assert.Contains(t, authErr.Body, "invalid_grant")

	_, ok := m.Session()
	assert.False(t, ok)
}

func TestExchangeAuthorizationCode_MissingFields(t *testing.T) {
	ts := newTokenServer(t)
	ts.body.Store(`{"access_token":"A1","refresh_token":"R1"}`)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "abc")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Error(t, authErr.Err)
	assert.Contains(t, authErr.Err.Error(), "user_id")

	_, ok := m.Session()
	assert.False(t, ok)
}

func TestExchangeAuthorizationCode_MalformedJSON(t *testing.T) {
	ts := newTokenServer(t)
	ts.body.Store(`not json`)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "abc")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusOK, authErr.StatusCode)
}

func TestExchangeAuthorizationCode_NetworkError(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)
	ts.Close()

	_, err := m.ExchangeAuthorizationCode(context.Background(), "abc")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.MethodPost, netErr.Method)
}

func TestExchangeRefreshToken_RequiresSession(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeRefreshToken(context.Background())

	assert.True(t, errors.Is(err, ErrNoSession))
	var stateErr *StateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, 0, ts.requestCount())
}

func TestExchangeRefreshToken_ReplacesSession(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "abc")
	require.NoError(t, err)

	got, err := m.ExchangeRefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Session{UserID: "U1", AccessToken: "A2", RefreshToken: "R2"}, got)

	form, header := ts.lastRequest()
	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "R1", form.Get("refresh_token"))
	assert.Empty(t, form.Get("code"))
	assert.True(t, strings.HasPrefix(header.Get("Authorization"), "Basic "))

	current, _ := m.Session()
	assert.Equal(t, "A2", current.AccessToken)
}

func TestExchangeRefreshToken_FailureKeepsSession(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	before, err := m.ExchangeAuthorizationCode(context.Background(), "abc")
	require.NoError(t, err)

	ts.status.Store(http.StatusUnauthorized)
	_, err = m.ExchangeRefreshToken(context.Background())

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "refresh_token", authErr.GrantType)

	after, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestExchangeAuthorizationCode_ReplacesExistingSession(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "first")
	require.NoError(t, err)
	_, err = m.ExchangeAuthorizationCode(context.Background(), "second")
	require.NoError(t, err)

	current, _ := m.Session()
	assert.Equal(t, "A2", current.AccessToken)
	assert.Equal(t, "R2", current.RefreshToken)
}

func TestSession_NoTornReads(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "abc")
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		done = make(chan struct{})
		torn atomic.Int64
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				s, ok := m.Session()
				if !ok || strings.TrimPrefix(s.AccessToken, "A") != strings.TrimPrefix(s.RefreshToken, "R") {
					torn.Add(1)
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		_, err := m.ExchangeRefreshToken(context.Background())
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()

	assert.Zero(t, torn.Load())
}

func TestExchangeRefreshToken_Serialized(t *testing.T) {
	ts := newTokenServer(t)
	m := newTestTokenManager(t, ts)

	_, err := m.ExchangeAuthorizationCode(context.Background(), "abc")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.ExchangeRefreshToken(context.Background())
		}()
	}
	wg.Wait()

	// Every refresh must have spent a distinct refresh token.
	ts.mu.Lock()
	defer ts.mu.Unlock()
	seen := map[string]bool{}
	for _, form := range ts.requests[1:] {
		rt := form.Get("refresh_token")
		assert.False(t, seen[rt], "refresh token %s spent twice", rt)
		seen[rt] = true
	}
}
