package igtrade

import (
	"context"
	"net/http"
	"time"
)

// Session holds the tokens issued by the platform after a successful login.
// Both tokens must be attached to every subsequent request.
type Session struct {
	// CST identifies the client.
	CST string
	// SecurityToken is the X-SECURITY-TOKEN value identifying the account session.
	SecurityToken string
	// Expiry is when the tokens stop being accepted. A zero Expiry makes
	// the session invalid, forcing a login before the next request.
	Expiry time.Time
}

// Valid reports whether the session can still authenticate a request.
func (s Session) Valid() bool {
	if s.CST == "" || s.SecurityToken == "" {
		return false
	}
	return time.Now().Before(s.Expiry)
}

// SessionDetails is the payload of GET /session.
type SessionDetails struct {
	ClientID              string `json:"clientId"`
	AccountID             string `json:"accountId"`
	TimezoneOffset        int    `json:"timezoneOffset"`
	Locale                string `json:"locale"`
	Currency              string `json:"currency"`
	LightstreamerEndpoint string `json:"lightstreamerEndpoint"`
}

// SessionDetails retrieves the details of the current API session.
func (c *Client) SessionDetails(ctx context.Context) (*SessionDetails, error) {
	var details SessionDetails
	if err := c.do(ctx, http.MethodGet, "/session", 1, nil, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}
