package fitbit

import "fmt"

// Session is the result of a successful token exchange. Values are never
// modified in place; the TokenManager replaces the whole Session so the
// user id and both tokens always come from the same exchange response.
type Session struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Format redacts both tokens.
func (s Session) Format(f fmt.State, verb rune) {
	_, _ = fmt.Fprintf(f, "{userID:%s accessToken:<REDACTED> refreshToken:<REDACTED>}", s.UserID)
}

// SessionSource supplies the current session to the dispatcher and the
// endpoint services. *TokenManager implements it.
type SessionSource interface {
	Session() (Session, bool)
}
