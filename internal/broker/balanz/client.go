package balanz

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://clientes.balanz.com/api/v1"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:102.0) Gecko/20100101 Firefox/102.0"
	defaultTimeout   = 30 * time.Second

	// Request pacing, to stay well clear of the broker's limits.
	requestsPerSecond = 5
	requestBurst      = 1
)

// Credentials identify one Balanz account. They are supplied once at
// construction and never change for the lifetime of the client.
type Credentials struct {
	Username  string
	Password  string
	AccountID string
}

// Client is an HTTP client for the Balanz clientes API. It owns the
// session lifecycle: a cached token is reused while valid, otherwise the
// two-step login handshake runs on demand.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	creds      Credentials
	cache      *TokenCache
	limiter    *rate.Limiter

	// ReloginOn401 re-runs the login handshake once when an authenticated
	// request comes back 401, then retries the request once. The broker
	// expires tokens 15 minutes after issuance, so a long run can cross
	// that boundary mid-session.
	ReloginOn401 bool

	token *Token // nil until Login succeeds
	now   func() time.Time
}

// NewClient creates a new Balanz API client. cache may be nil, in which
// case every run performs a fresh login.
func NewClient(creds Credentials, cache *TokenCache) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		creds:     creds,
		cache:     cache,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		now:       time.Now,
	}
}

// SetBaseURL overrides the API base URL.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// SetTimeout overrides the HTTP request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// baseHeaders returns a fresh header set for one request. The base set is
// never shared between requests; the Authorization entry is added per
// request where needed.
func (c *Client) baseHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", c.userAgent)
	return h
}

// Get performs an authenticated GET against an API endpoint and returns
// the raw response body. Login must have succeeded first.
func (c *Client) Get(endpoint string) ([]byte, error) {
	if c.token == nil {
		return nil, ErrNotAuthenticated
	}

	body, err := c.get(endpoint, c.token.Value)
	if err != nil && c.ReloginOn401 && isAuthFailure(err) {
		log.Printf("[Balanz] Token rejected by broker, re-authenticating")
		if loginErr := c.Relogin(); loginErr != nil {
			return nil, loginErr
		}
		return c.get(endpoint, c.token.Value)
	}
	return body, err
}

// get issues a single GET with the given token attached.
func (c *Client) get(endpoint, token string) ([]byte, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	url := c.baseURL + "/" + endpoint
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.baseHeaders()
	req.Header.Set("Authorization", token)

	log.Printf("[Balanz] GET %s", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
