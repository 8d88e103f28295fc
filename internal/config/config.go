// Package config handles the XDG configuration directory, stored credentials
// and the backend URL.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// AppName is the application directory name.
	AppName = "todosync"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// DefaultBaseURL is the todo API root used when nothing else is configured.
	DefaultBaseURL = "http://localhost:3000/api"

	// EnvBaseURL overrides DefaultBaseURL.
	EnvBaseURL = "TODOSYNC_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the root of the todo REST API.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory and
// base URL. If configDir is empty, uses XDG_CONFIG_HOME/todosync or
// $HOME/.config/todosync. If baseURL is empty, uses $TODOSYNC_URL or
// DefaultBaseURL.
func New(configDir, baseURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	url := baseURL
	if url == "" {
		url = os.Getenv(EnvBaseURL)
	}
	if url == "" {
		url = DefaultBaseURL
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("invalid url: %s", url)
	}

	return &Config{Dir: dir, BaseURL: strings.TrimRight(url, "/")}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// LoadToken reads the stored token. It returns (nil, nil) when no token is stored.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("invalid token.json: empty access token")
	}
	return &token, nil
}

// SaveToken writes token to the token file with mode 0600, creating the
// config directory if needed.
func (c *Config) SaveToken(token *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
