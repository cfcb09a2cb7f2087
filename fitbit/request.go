package fitbit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes one resource API call. Path is relative to the client's
// base URL and includes the API version, e.g. "/1/user/-/profile.json".
type Request struct {
	Method     string
	Path       string
	Query      url.Values
	Form       url.Values // sent as the body of POST requests
	ExpectJSON bool
}

// Response is the normalized result of Client.Send. Non-2xx statuses are
// returned here rather than as errors; use Err or OK to check them.
type Response struct {
	StatusCode int
	Header     http.Header
	URL        string
	RequestID  string

	// Body holds the raw response bytes for every reader.
	Body []byte

	// Data holds the decoded JSON document when the JSON reader ran.
	Data any

	// Text holds the body as text when the text reader ran.
	Text string

	// Raw is the underlying response, only set by the debug reader. Its body
	// has already been buffered and can be read again.
	Raw *http.Response
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns an *UpstreamError for non-2xx responses and nil otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &UpstreamError{
		StatusCode: r.StatusCode,
		Body:       string(r.Body),
		URL:        r.URL,
	}
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("fitbit: decode %s: %w", r.URL, err)
	}
	return nil
}
