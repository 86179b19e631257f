package igtrade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Client performs authenticated calls against the IG REST API. It logs in
// lazily: the first operation (or the first one after the session expired)
// opens a session and stores its tokens for subsequent requests.
//
// A Client is safe for use from multiple goroutines.
type Client struct {
	auth UserAuth
	api  APIConfig
	http *transport

	mu      sync.Mutex
	session Session
}

// NewClient creates a client for the given credentials and platform.
func NewClient(auth UserAuth, api APIConfig) *Client {
	return &Client{auth: auth, api: api, http: newTransport(api.BaseURL)}
}

// Session returns a copy of the current session tokens. It is zero until
// the first successful login.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Login opens a session on the platform and stores its tokens. Operations
// call it automatically; it is exported for callers that want to verify
// credentials eagerly.
func (c *Client) Login(ctx context.Context) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login(ctx)
}

// login performs POST /session. The tokens come back as response headers,
// not in the body, and the session lifetime is advertised through
// Access-Control-Max-Age. Callers must hold c.mu.
func (c *Client) login(ctx context.Context) (Session, error) {
	body := loginRequest{Identifier: c.auth.Username, Password: c.auth.Password}
	resp, err := c.http.request(ctx, http.MethodPost, "/session", 2, requestOptions{
		headers: map[string]string{"X-IG-API-KEY": c.auth.APIKey},
		body:    body,
	}, nil)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}

	s := Session{
		CST:           resp.Header().Get("CST"),
		SecurityToken: resp.Header().Get("X-SECURITY-TOKEN"),
	}
	if s.CST == "" || s.SecurityToken == "" {
		return Session{}, fmt.Errorf("login: session tokens missing from response: %w", ErrAuthenticationFailed)
	}
	if maxAge := resp.Header().Get("Access-Control-Max-Age"); maxAge != "" {
		if secs, err := strconv.Atoi(maxAge); err == nil {
			s.Expiry = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
	c.session = s
	return s, nil
}

// Logout closes the session on the platform and clears the stored tokens.
// Logging out of an already invalid session only clears the tokens.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.Valid() {
		c.session = Session{}
		return nil
	}
	_, err := c.http.request(ctx, http.MethodDelete, "/session", 1, requestOptions{headers: c.authHeaders()}, nil)
	c.session = Session{}
	return err
}

// authHeaders builds the headers every authenticated request must carry.
// Callers must hold c.mu.
func (c *Client) authHeaders() map[string]string {
	return map[string]string{
		"X-IG-API-KEY":     c.auth.APIKey,
		"CST":              c.session.CST,
		"X-SECURITY-TOKEN": c.session.SecurityToken,
	}
}

// do performs an authenticated request, logging in first when the session
// is missing or stale. A request bounced by the platform with a session
// error triggers exactly one re-login and one replay of the original
// request; any further failure is surfaced as is.
func (c *Client) do(ctx context.Context, method, endpoint string, version int, params url.Values, body, out any) error {
	return c.doRequest(ctx, method, endpoint, version, nil, params, body, out)
}

// doWithHeaders is do with extra request headers, needed by the few
// endpoints that use header conventions like the _method override.
func (c *Client) doWithHeaders(ctx context.Context, method, endpoint string, version int, extra map[string]string, body, out any) error {
	return c.doRequest(ctx, method, endpoint, version, extra, nil, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, version int, extra map[string]string, params url.Values, body, out any) error {
	c.mu.Lock()
	if !c.session.Valid() {
		if _, err := c.login(ctx); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	headers := c.requestHeaders(extra)
	c.mu.Unlock()

	_, err := c.http.request(ctx, method, endpoint, version, requestOptions{headers: headers, params: params, body: body}, out)
	if err == nil || !errors.Is(err, ErrSessionExpired) {
		return err
	}

	// The platform invalidated the tokens before their advertised expiry.
	// Re-authenticate once and replay with the fresh tokens.
	c.mu.Lock()
	c.session = Session{}
	if _, err := c.login(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	headers = c.requestHeaders(extra)
	c.mu.Unlock()

	_, err = c.http.request(ctx, method, endpoint, version, requestOptions{headers: headers, params: params, body: body}, out)
	return err
}

// requestHeaders merges the auth headers with any endpoint specific ones.
// Callers must hold c.mu.
func (c *Client) requestHeaders(extra map[string]string) map[string]string {
	headers := c.authHeaders()
	for k, v := range extra {
		headers[k] = v
	}
	return headers
}
