package fitbit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.fitbit.com"
	userAgent      = "fitbit-go/1.0"
)

//go:generate mockgen -source=client.go -package fitbit -destination sender_mock.go Sender

// Sender dispatches a Request. *Client implements it; the endpoint services
// depend only on this interface.
type Sender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Client is the authenticated request dispatcher for the Fitbit Web API.
// It reads the access token from its SessionSource on every call and never
// refreshes or retries on its own.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	sessions   SessionSource
	logger     *slog.Logger
	debug      bool

	jsonReader ResponseReader
	textReader ResponseReader

	// passThroughLog throttles warnings about non-2xx responses.
	passThroughLog *rate.Sometimes

	// Services used for communicating with the Fitbit API endpoints.
	Activity      *ActivityService
	Body          *BodyService
	Devices       *DevicesService
	Food          *FoodService
	Friends       *FriendsService
	HeartRate     *HeartRateService
	Sleep         *SleepService
	Subscriptions *SubscriptionsService
	User          *UserService
}

// NewClient creates a dispatcher that authenticates with the sessions
// supplied by sessions, typically a *TokenManager.
func NewClient(sessions SessionSource, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		baseURL:        defaultBaseURL,
		userAgent:      userAgent,
		sessions:       sessions,
		logger:         slog.Default(),
		passThroughLog: &rate.Sometimes{First: 1, Interval: time.Minute},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.debug {
		c.jsonReader, c.textReader = DebugReader{}, DebugReader{}
	} else {
		c.jsonReader, c.textReader = JSONReader{}, TextReader{}
	}

	svc := service{sender: c, sessions: sessions}
	c.Activity = &ActivityService{svc}
	c.Body = &BodyService{svc}
	c.Devices = &DevicesService{svc}
	c.Food = &FoodService{svc}
	c.Friends = &FriendsService{svc}
	c.HeartRate = &HeartRateService{svc}
	c.Sleep = &SleepService{svc}
	c.Subscriptions = &SubscriptionsService{svc}
	c.User = &UserService{svc}

	return c
}

// Send issues req with the current access token attached. A non-2xx status
// is not an error: it is returned in the Response for the caller to inspect.
// Errors are a *StateError before authorization, a *NetworkError on
// transport failure, or a decode error when a JSON body is malformed.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("fitbit: unsupported method %q", req.Method)
	}

	session, ok := c.sessions.Session()
	if !ok {
		return nil, &StateError{Op: req.Method + " " + req.Path}
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Method == http.MethodPost && len(req.Form) > 0 {
		body = strings.NewReader(req.Form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("fitbit: build request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Authorization", "Bearer "+session.AccessToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-Id", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Method: req.Method, URL: c.baseURL + req.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	reader := c.textReader
	if req.ExpectJSON {
		reader = c.jsonReader
	}
	out, err := reader.ReadResponse(resp)
	if err != nil {
		return nil, err
	}
	out.RequestID = requestID

	c.logger.DebugContext(ctx, "fitbit api call",
		"request_id", requestID,
		"method", req.Method,
		"path", req.Path,
		"status", out.StatusCode,
		"duration", time.Since(start),
	)

	if !out.OK() {
		c.passThroughLog.Do(func() {
			c.logger.WarnContext(ctx, "fitbit api returned non-2xx status",
				"request_id", requestID,
				"method", req.Method,
				"path", req.Path,
				"status", out.StatusCode,
			)
		})
	}

	return out, nil
}
