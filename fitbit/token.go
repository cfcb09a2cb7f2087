package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultAuthURL  = "https://www.fitbit.com/oauth2/authorize"
	defaultTokenURL = "https://api.fitbit.com/oauth2/token"

	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"
)

// TokenManager owns the authenticated Session and performs the two OAuth2
// exchanges that produce it. A TokenManager holds exactly one session.
type TokenManager struct {
	creds      Credentials
	httpClient *http.Client
	authURL    string
	tokenURL   string
	logger     *slog.Logger

	// mu serializes exchanges so a refresh token is never spent twice.
	mu      sync.Mutex
	session atomic.Pointer[Session]
}

// TokenManagerOption configures a TokenManager.
type TokenManagerOption func(*TokenManager)

// WithTokenHTTPClient sets the HTTP client used against the token endpoint.
func WithTokenHTTPClient(c *http.Client) TokenManagerOption {
	return func(m *TokenManager) {
		m.httpClient = c
	}
}

// WithAuthURL overrides the authorization endpoint.
func WithAuthURL(u string) TokenManagerOption {
	return func(m *TokenManager) {
		m.authURL = u
	}
}

// WithTokenURL overrides the token endpoint. Useful for tests and proxies.
func WithTokenURL(u string) TokenManagerOption {
	return func(m *TokenManager) {
		m.tokenURL = u
	}
}

// WithTokenLogger sets the logger for exchange events.
func WithTokenLogger(l *slog.Logger) TokenManagerOption {
	return func(m *TokenManager) {
		m.logger = l
	}
}

// NewTokenManager returns an unauthenticated TokenManager. It fails with a
// *ConfigurationError when the client id or secret is missing.
func NewTokenManager(creds Credentials, opts ...TokenManagerOption) (*TokenManager, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	m := &TokenManager{
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		authURL:    defaultAuthURL,
		tokenURL:   defaultTokenURL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// AuthorizationURL returns the URL a user must visit to grant access. It
// carries exactly response_type, client_id, redirect_uri and scope, with the
// scopes space-joined in their configured order.
func (m *TokenManager) AuthorizationURL() string {
	cfg := oauth2.Config{
		ClientID:    m.creds.ClientID(),
		RedirectURL: m.creds.RedirectURI(),
		Scopes:      m.creds.scopeStrings(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.authURL,
			TokenURL:  m.tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	return cfg.AuthCodeURL("")
}

// Session returns a snapshot of the current session.
func (m *TokenManager) Session() (Session, bool) {
	s := m.session.Load()
	if s == nil {
		return Session{}, false
	}
	return *s, true
}

// ExchangeAuthorizationCode trades a one-time authorization code for a
// session. On failure the previous state, authenticated or not, is kept.
func (m *TokenManager) ExchangeAuthorizationCode(ctx context.Context, code string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form := url.Values{
		"grant_type":   {grantAuthorizationCode},
		"code":         {code},
		"client_id":    {m.creds.ClientID()},
		"redirect_uri": {m.creds.RedirectURI()},
	}
	return m.exchange(ctx, grantAuthorizationCode, form)
}

// ExchangeRefreshToken rotates the current session's tokens. It returns a
// *StateError when no session exists yet.
func (m *TokenManager) ExchangeRefreshToken(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.session.Load()
	if current == nil {
		return Session{}, &StateError{Op: "refresh token exchange"}
	}

	form := url.Values{
		"grant_type":    {grantRefreshToken},
		"refresh_token": {current.RefreshToken},
	}
	return m.exchange(ctx, grantRefreshToken, form)
}

// exchange posts form to the token endpoint and swaps in the new session on
// success. Callers hold m.mu.
func (m *TokenManager) exchange(ctx context.Context, grantType string, form url.Values) (Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, fmt.Errorf("fitbit: build token request: %w", err)
	}
	req.Header.Set("Authorization", m.creds.basicAuth())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Session{}, &NetworkError{Method: req.Method, URL: m.tokenURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, &NetworkError{Method: req.Method, URL: m.tokenURL, Err: err}
	}

	m.logger.DebugContext(ctx, "fitbit token exchange",
		"grant_type", grantType,
		"status", resp.StatusCode,
	)

	if resp.StatusCode != http.StatusOK {
		return Session{}, &AuthenticationError{
			GrantType:  grantType,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var next Session
	if err := json.Unmarshal(body, &next); err != nil {
		return Session{}, &AuthenticationError{
			GrantType:  grantType,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("decode token response: %w", err),
		}
	}
	if err := next.complete(); err != nil {
		return Session{}, &AuthenticationError{
			GrantType:  grantType,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        err,
		}
	}

	m.session.Store(&next)
	m.logger.InfoContext(ctx, "fitbit session established",
		"grant_type", grantType,
		"user_id", next.UserID,
	)
	return next, nil
}

func (s Session) complete() error {
	var missing []string
	if s.UserID == "" {
		missing = append(missing, "user_id")
	}
	if s.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if s.RefreshToken == "" {
		missing = append(missing, "refresh_token")
	}
	if len(missing) > 0 {
		return errors.New("token response missing " + strings.Join(missing, ", "))
	}
	return nil
}
