package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "contactsync"

// Config holds all contactsync configuration.
type Config struct {
	Google   GoogleConfig   `toml:"google"`
	HTTP     HTTPConfig     `toml:"http"`
	Log      LogConfig      `toml:"log"`
	Accounts AccountsConfig `toml:"accounts"`
}

// GoogleConfig holds Google OAuth credentials and endpoint overrides.
// Empty URLs select Google's production endpoints.
type GoogleConfig struct {
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	TokenURL       string `toml:"token_url"`
	PeopleEndpoint string `toml:"people_endpoint"`
}

// HTTPConfig holds settings shared by every outgoing request.
type HTTPConfig struct {
	Timeout string `toml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// AccountsConfig holds address book selection settings.
type AccountsConfig struct {
	Default string `toml:"default"`
}

func defaults() Config {
	return Config{
		HTTP: HTTPConfig{Timeout: "30s"},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads config from path. If path is empty, returns defaults. The
// GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables fill in
// credentials the file leaves empty.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}
	if _, err := cfg.HTTP.TimeoutDuration(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.Google.ClientID != "" && c.Google.ClientSecret != "" {
		return
	}
	id, secret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET")
	if id != "" && secret != "" {
		c.Google.ClientID = id
		c.Google.ClientSecret = secret
	}
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (h HTTPConfig) TimeoutDuration() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("failed to parse http.timeout %q: %w", h.Timeout, err)
	}
	return d, nil
}

// ConfigDir returns the contactsync config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the contactsync data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}
