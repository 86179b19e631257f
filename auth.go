package igtrade

import (
	"fmt"
	"os"
)

// Platform selects the trading environment the client talks to.
const (
	PlatformLive = "live"
	PlatformDemo = "demo"
)

// platformURLs maps a platform name to its API gateway.
var platformURLs = map[string]string{
	PlatformLive: "https://api.ig.com/gateway/deal",
	PlatformDemo: "https://demo-api.ig.com/gateway/deal",
}

// UserAuth holds the credentials required to open an API session.
//
// Empty fields are filled from the IG_API_KEY, IG_USERNAME and IG_PASSWORD
// environment variables by NewUserAuth; a field that is set in neither
// place is an error.
type UserAuth struct {
	APIKey   string
	Username string
	Password string
}

// NewUserAuth builds a UserAuth, completing every empty field from the
// environment.
func NewUserAuth(apiKey, username, password string) (UserAuth, error) {
	a := UserAuth{APIKey: apiKey, Username: username, Password: password}
	fields := []struct {
		name string
		env  string
		dst  *string
	}{
		{"api key", "IG_API_KEY", &a.APIKey},
		{"username", "IG_USERNAME", &a.Username},
		{"password", "IG_PASSWORD", &a.Password},
	}
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		v, ok := os.LookupEnv(f.env)
		if !ok || v == "" {
			return UserAuth{}, fmt.Errorf("required %s not provided and environment variable %s not set: %w", f.name, f.env, ErrMissingCredentials)
		}
		*f.dst = v
	}
	return a, nil
}

// loginRequest is the body of POST /session. The platform expects an
// explicit null encryptedPassword when sending the password in clear.
type loginRequest struct {
	Identifier        string  `json:"identifier"`
	Password          string  `json:"password"`
	EncryptedPassword *string `json:"encryptedPassword"`
}

// APIConfig selects the platform and resolves its gateway URL.
type APIConfig struct {
	Platform string
	BaseURL  string
}

// NewAPIConfig resolves the platform. An empty platform falls back to the
// IG_PLATFORM environment variable and finally to "live".
func NewAPIConfig(platform string) (APIConfig, error) {
	if platform == "" {
		platform = os.Getenv("IG_PLATFORM")
	}
	if platform == "" {
		platform = PlatformLive
	}
	base, ok := platformURLs[platform]
	if !ok {
		return APIConfig{}, fmt.Errorf("unknown platform type: %s (valid options: %q, %q)", platform, PlatformLive, PlatformDemo)
	}
	return APIConfig{Platform: platform, BaseURL: base}, nil
}
