package igtrade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the per-user configuration file, relative to the
// home directory.
const DefaultConfigFile = ".igtrade.yaml"

// Configuration mirrors the YAML configuration file:
//
//	platform:
//	  default: live
//	auth:
//	  live:
//	    api_key: ...
//	    username: ...
//	    password: ...
//	  demo:
//	    ...
//
// A missing file is not an error, it decodes to the zero Configuration so
// that environment variables can take over.
type Configuration struct {
	Platform struct {
		Default string `yaml:"default"`
	} `yaml:"platform"`
	Auth map[string]ConfigCredentials `yaml:"auth"`
}

// ConfigCredentials is one platform's credential block in the file.
type ConfigCredentials struct {
	APIKey   string `yaml:"api_key"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoadConfiguration reads the configuration file at path. An empty path
// means DefaultConfigFile in the user's home directory.
func LoadConfiguration(path string) (Configuration, error) {
	var conf Configuration
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return conf, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigFile)
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("cannot read configuration file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return conf, fmt.Errorf("cannot parse configuration file %q: %w", path, err)
	}
	return conf, nil
}

// Resolve picks the platform (argument first, then the file's default,
// then the environment) and returns the matching credentials and API
// configuration. Credentials absent from the file fall back to the IG_*
// environment variables.
func (c Configuration) Resolve(platform string) (UserAuth, APIConfig, error) {
	if platform == "" {
		platform = c.Platform.Default
	}
	api, err := NewAPIConfig(platform)
	if err != nil {
		return UserAuth{}, APIConfig{}, err
	}

	creds := c.Auth[api.Platform]
	auth, err := NewUserAuth(creds.APIKey, creds.Username, creds.Password)
	if err != nil {
		return UserAuth{}, APIConfig{}, err
	}
	return auth, api, nil
}
