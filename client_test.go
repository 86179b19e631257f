package igtrade

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateway is a scripted IG gateway for tests. It issues tokens on
// POST /session and serves a minimal /accounts payload, counting logins
// and optionally bouncing requests with a session error first.
type gateway struct {
	t *testing.T

	logins        int
	accountsCalls int
	// bounce makes the next n /accounts calls fail with a token error.
	bounce int
	// maxAge is the Access-Control-Max-Age value for issued sessions.
	maxAge string
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	switch r.URL.Path {
	case "/session":
		g.session(w, r)
	case "/accounts":
		g.accounts(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"errorCode": "error.not.found"})
	}
}

func (g *gateway) session(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	g.logins++
	assert.Equal(g.t, "2", r.Header.Get("VERSION"))
	assert.Equal(g.t, "key-123", r.Header.Get("X-IG-API-KEY"))

	var body struct {
		Identifier        string  `json:"identifier"`
		Password          string  `json:"password"`
		EncryptedPassword *string `json:"encryptedPassword"`
	}
	require.NoError(g.t, json.NewDecoder(r.Body).Decode(&body))
	if body.Identifier != "jdoe" || body.Password != "hunter2" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"errorCode": "error.security.invalid-details"})
		return
	}
	assert.Nil(g.t, body.EncryptedPassword)

	w.Header().Set("CST", fmt.Sprintf("cst-%d", g.logins))
	w.Header().Set("X-SECURITY-TOKEN", fmt.Sprintf("xst-%d", g.logins))
	if g.maxAge != "" {
		w.Header().Set("Access-Control-Max-Age", g.maxAge)
	}
	json.NewEncoder(w).Encode(map[string]any{"currentAccountId": "ABC12"})
}

func (g *gateway) accounts(w http.ResponseWriter, r *http.Request) {
	g.accountsCalls++
	assert.Equal(g.t, "1", r.Header.Get("VERSION"))
	assert.Equal(g.t, "key-123", r.Header.Get("X-IG-API-KEY"))
	assert.Equal(g.t, fmt.Sprintf("cst-%d", g.logins), r.Header.Get("CST"),
		"requests must carry the tokens of the latest login")
	assert.Equal(g.t, fmt.Sprintf("xst-%d", g.logins), r.Header.Get("X-SECURITY-TOKEN"))

	if g.bounce > 0 {
		g.bounce--
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"errorCode": "error.security.client-token-invalid"})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"accounts": []map[string]any{
			{
				"accountId":   "ABC12",
				"accountName": "Spread bet",
				"accountType": "SPREADBET",
				"currency":    "GBP",
				"preferred":   true,
				"status":      "ENABLED",
				"balance": map[string]any{
					"balance":    1500.5,
					"available":  1200.0,
					"profitLoss": -12.3,
				},
			},
		},
	})
}

func newTestClient(t *testing.T, g *gateway) *Client {
	t.Helper()
	if g.maxAge == "" {
		g.maxAge = "600"
	}
	server := httptest.NewServer(g)
	t.Cleanup(server.Close)

	auth := UserAuth{APIKey: "key-123", Username: "jdoe", Password: "hunter2"}
	return NewClient(auth, APIConfig{Platform: PlatformLive, BaseURL: server.URL})
}

func TestLogin(t *testing.T) {
	g := &gateway{t: t}
	client := newTestClient(t, g)

	session, err := client.Login(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cst-1", session.CST)
	assert.Equal(t, "xst-1", session.SecurityToken)
	assert.True(t, session.Valid())
	assert.Equal(t, 1, g.logins)
}

func TestLoginBadCredentials(t *testing.T) {
	g := &gateway{t: t}
	server := httptest.NewServer(g)
	t.Cleanup(server.Close)

	auth := UserAuth{APIKey: "key-123", Username: "jdoe", Password: "wrong"}
	client := NewClient(auth, APIConfig{Platform: PlatformLive, BaseURL: server.URL})

	_, err := client.Login(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginWithoutMaxAge(t *testing.T) {
	// Without an advertised lifetime the tokens cannot be trusted to
	// outlive the response, so the session reports invalid and every
	// operation re-authenticates.
	g := &gateway{t: t}
	server := httptest.NewServer(g)
	t.Cleanup(server.Close)

	auth := UserAuth{APIKey: "key-123", Username: "jdoe", Password: "hunter2"}
	client := NewClient(auth, APIConfig{Platform: PlatformLive, BaseURL: server.URL})

	session, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Valid())
}

func TestAccountsLogsInLazily(t *testing.T) {
	g := &gateway{t: t}
	client := newTestClient(t, g)

	accounts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	assert.Equal(t, "ABC12", accounts[0].AccountID)
	assert.Equal(t, "GBP", accounts[0].Currency)
	assert.True(t, accounts[0].Preferred)
	assert.Equal(t, "1200", accounts[0].Balance.Available.String())
	assert.Equal(t, 1, g.logins)

	// A second call reuses the session.
	_, err = client.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, g.logins)
}

func TestExpiredSessionIsReplayedOnce(t *testing.T) {
	g := &gateway{t: t, bounce: 1}
	client := newTestClient(t, g)

	accounts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	assert.Equal(t, 2, g.logins, "a bounced request re-authenticates exactly once")
	assert.Equal(t, 2, g.accountsCalls, "the original request is replayed exactly once")
}

func TestExpiredSessionSurfacesAfterOneReplay(t *testing.T) {
	g := &gateway{t: t, bounce: 2}
	client := newTestClient(t, g)

	_, err := client.Accounts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, 2, g.logins)
	assert.Equal(t, 2, g.accountsCalls)
}

func TestLogout(t *testing.T) {
	g := &gateway{t: t}
	client := newTestClient(t, g)

	_, err := client.Login(context.Background())
	require.NoError(t, err)
	require.True(t, client.Session().Valid())

	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, client.Session().Valid())
	assert.Empty(t, client.Session().CST)
}

func TestLogoutWithoutSession(t *testing.T) {
	g := &gateway{t: t}
	client := newTestClient(t, g)

	// No network call is made for a session that was never opened.
	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, 0, g.logins)
}
