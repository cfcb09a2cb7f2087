package fitbit

import (
	"encoding/base64"
	"fmt"
)

// DefaultRedirectURI is used when no redirect URI is configured.
const DefaultRedirectURI = "http://localhost"

// Credentials holds the application's OAuth2 client registration. It is an
// immutable value: accessors return copies and nothing mutates it after
// construction.
type Credentials struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       []Scope
}

// NewCredentials builds Credentials. An empty redirectURI falls back to
// DefaultRedirectURI and an empty scope list to DefaultScopes.
func NewCredentials(clientID, clientSecret, redirectURI string, scopes ...Scope) Credentials {
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}
	if len(scopes) == 0 {
		scopes = DefaultScopes()
	}
	return Credentials{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		scopes:       append([]Scope(nil), scopes...),
	}
}

func (c Credentials) ClientID() string     { return c.clientID }
func (c Credentials) ClientSecret() string { return c.clientSecret }
func (c Credentials) RedirectURI() string  { return c.redirectURI }

// Scopes returns the configured scopes in their configured order.
func (c Credentials) Scopes() []Scope {
	return append([]Scope(nil), c.scopes...)
}

// Validate reports a *ConfigurationError if the client id or secret is missing.
func (c Credentials) Validate() error {
	if c.clientID == "" {
		return &ConfigurationError{Field: "client id"}
	}
	if c.clientSecret == "" {
		return &ConfigurationError{Field: "client secret"}
	}
	return nil
}

// basicAuth returns the value for the token endpoint's Basic Authorization header.
func (c Credentials) basicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.clientID+":"+c.clientSecret))
}

func (c Credentials) scopeStrings() []string {
	out := make([]string, len(c.scopes))
	for i, s := range c.scopes {
		out[i] = string(s)
	}
	return out
}

// Format redacts the client secret for every verb so credentials can be
// logged safely.
func (c Credentials) Format(f fmt.State, verb rune) {
	_, _ = fmt.Fprintf(f, "{clientID:%s clientSecret:<REDACTED> redirectURI:%s scopes:%v}",
		c.clientID, c.redirectURI, c.scopes)
}
