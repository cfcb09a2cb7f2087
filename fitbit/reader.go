package fitbit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResponseReader turns an HTTP response into a Response. The client picks
// its readers once, at construction.
type ResponseReader interface {
	ReadResponse(resp *http.Response) (*Response, error)
}

// JSONReader decodes the body as JSON into Response.Data. An empty body
// leaves Data nil.
type JSONReader struct{}

func (JSONReader) ReadResponse(resp *http.Response) (*Response, error) {
	out, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out.Body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(out.Body, &out.Data); err != nil {
		return nil, fmt.Errorf("fitbit: decode json response from %s (status %d): %w", out.URL, out.StatusCode, err)
	}
	return out, nil
}

// TextReader returns the body as text without attempting to parse it.
type TextReader struct{}

func (TextReader) ReadResponse(resp *http.Response) (*Response, error) {
	out, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	out.Text = string(out.Body)
	return out, nil
}

// DebugReader keeps the raw *http.Response for inspection. The body is
// buffered and reattached so Raw.Body can still be read.
type DebugReader struct{}

func (DebugReader) ReadResponse(resp *http.Response) (*Response, error) {
	out, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(out.Body))
	out.Raw = resp
	return out, nil
}

func readBody(resp *http.Response) (*Response, error) {
	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
	method := ""
	if resp.Request != nil {
		method = resp.Request.Method
		out.URL = resp.Request.URL.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: out.URL, Err: err}
	}
	out.Body = body
	return out, nil
}
