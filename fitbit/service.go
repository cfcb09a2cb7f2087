package fitbit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/form/v4"
)

// API versions used in resource paths.
const (
	v1  = "1"
	v11 = "1.1"
	v12 = "1.2"
)

var (
	formEncoder = form.NewEncoder()
	formDecoder = form.NewDecoder()
)

// service is embedded by every endpoint service. Endpoints only translate
// typed arguments into a Request; all transport concerns live in the Sender.
type service struct {
	sender   Sender
	sessions SessionSource
}

// userPath builds "/{version}/user/{userID}{suffix}" for the current session.
func (s service) userPath(version, format string, a ...any) (string, error) {
	session, ok := s.sessions.Session()
	if !ok {
		return "", &StateError{Op: "resolve user path"}
	}
	return fmt.Sprintf("/%s/user/%s", version, session.UserID) + fmt.Sprintf(format, a...), nil
}

// send encodes query and body (typed option structs or nil) and dispatches.
func (s service) send(ctx context.Context, method, path string, query, body any, expectJSON bool) (*Response, error) {
	q, err := encodeValues(query)
	if err != nil {
		return nil, err
	}
	f, err := encodeValues(body)
	if err != nil {
		return nil, err
	}
	return s.sender.Send(ctx, &Request{
		Method:     method,
		Path:       path,
		Query:      q,
		Form:       f,
		ExpectJSON: expectJSON,
	})
}

func (s service) get(ctx context.Context, path string, query any) (*Response, error) {
	return s.send(ctx, http.MethodGet, path, query, nil, true)
}

func (s service) post(ctx context.Context, path string, body any) (*Response, error) {
	return s.send(ctx, http.MethodPost, path, nil, body, true)
}

func (s service) delete(ctx context.Context, path string, expectJSON bool) (*Response, error) {
	return s.send(ctx, http.MethodDelete, path, nil, nil, expectJSON)
}

// userGet, userPost and userDelete resolve a user-scoped path first.

func (s service) userGet(ctx context.Context, version string, query any, format string, a ...any) (*Response, error) {
	path, err := s.userPath(version, format, a...)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, path, query)
}

func (s service) userPost(ctx context.Context, version string, body any, format string, a ...any) (*Response, error) {
	path, err := s.userPath(version, format, a...)
	if err != nil {
		return nil, err
	}
	return s.post(ctx, path, body)
}

func (s service) userDelete(ctx context.Context, version string, expectJSON bool, format string, a ...any) (*Response, error) {
	path, err := s.userPath(version, format, a...)
	if err != nil {
		return nil, err
	}
	return s.delete(ctx, path, expectJSON)
}

func encodeValues(v any) (url.Values, error) {
	if v == nil {
		return nil, nil
	}
	if vals, ok := v.(url.Values); ok {
		return vals, nil
	}
	vals, err := formEncoder.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("fitbit: encode parameters: %w", err)
	}
	return vals, nil
}

// timeRange renders the optional "/time/{start}/{end}" intraday suffix.
// Both bounds must be set for the suffix to appear.
func timeRange(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return "/time/" + start + "/" + end
}
