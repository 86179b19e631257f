package igtrade

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingCredentials indicates a required credential was neither
	// provided explicitly nor found in the environment.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrSessionExpired indicates the session tokens were rejected or are
	// no longer current.
	ErrSessionExpired = errors.New("session expired")

	// ErrAuthenticationFailed indicates the platform refused the login
	// credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource (epic, deal) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the API key allowance was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// APIError describes a non-2xx response from the IG API. Code carries the
// platform's dotted error code (e.g. "error.security.client-token-invalid")
// when the body could be decoded, and Message whatever else was readable.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("ig api: %d %s", e.StatusCode, e.Code)
	case e.Message != "":
		return fmt.Sprintf("ig api: %d %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("ig api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// Is maps platform status codes and error codes onto the package sentinels,
// so callers can test with errors.Is instead of matching strings.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrSessionExpired:
		return e.StatusCode == http.StatusUnauthorized ||
			strings.HasPrefix(e.Code, "error.security.client-token") ||
			e.Code == "error.security.oauth-token-invalid"
	case ErrAuthenticationFailed:
		return e.Code == "error.security.invalid-details" ||
			e.Code == "error.security.api-key-invalid" ||
			(e.StatusCode == http.StatusForbidden && !e.allowanceExceeded())
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound ||
			strings.HasSuffix(e.Code, "epic-not-found")
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests || e.allowanceExceeded()
	}
	return false
}

// allowanceExceeded reports whether the code is a quota error. The platform
// sends those with a 403 too, so the credential mapping must exclude them.
func (e *APIError) allowanceExceeded() bool {
	return strings.Contains(e.Code, "exceeded-api-key-allowance") ||
		strings.Contains(e.Code, "exceeded-account-allowance")
}

// apiErrorBody is the JSON shape of IG error responses.
type apiErrorBody struct {
	ErrorCode string `json:"errorCode"`
}
