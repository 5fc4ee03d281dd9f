package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvPrefix scopes the environment variables recognized by the CLI
// (ctms_api_url, ctms_client_id, ctms_client_secret, ctms_journal_path).
const EnvPrefix = "ctms_"

// Config represents the application configuration.
//
// Values come from an optional TOML file and from ctms_-prefixed
// environment variables, with the environment taking precedence.
type Config struct {
	API     APIConfig     `toml:"api"`
	Journal JournalConfig `toml:"journal"`
}

// APIConfig contains the CTMS API location and OAuth2 client credentials.
type APIConfig struct {
	URL          string `toml:"url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// JournalConfig contains settings for the optional local run journal.
type JournalConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays ctms_-prefixed environment variables onto the config.
//
// Variable names are matched case-insensitively (ctms_client_id and
// CTMS_CLIENT_ID are equivalent).
func (c *Config) ApplyEnv() {
	if v, ok := lookupEnv("api_url"); ok {
		c.API.URL = v
	}
	if v, ok := lookupEnv("client_id"); ok {
		c.API.ClientID = v
	}
	if v, ok := lookupEnv("client_secret"); ok {
		c.API.ClientSecret = v
	}
	if v, ok := lookupEnv("journal_path"); ok {
		c.Journal.Path = v
	}
}

// Validate checks that the configuration is complete enough to reach the API.
//
// The API URL always has a default; the client credentials do not and their
// absence is fatal before any network call is attempted.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("%w: api url is empty", ErrInvalidConfig)
	}
	if c.API.ClientID == "" {
		return fmt.Errorf("%w: %sclient_id is not set", ErrMissingCredentials, EnvPrefix)
	}
	if c.API.ClientSecret == "" {
		return fmt.Errorf("%w: %sclient_secret is not set", ErrMissingCredentials, EnvPrefix)
	}
	return nil
}

// lookupEnv finds a prefix-scoped environment variable regardless of case.
func lookupEnv(name string) (string, bool) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		return v, true
	}
	if v, ok := os.LookupEnv(strings.ToUpper(EnvPrefix + name)); ok {
		return v, true
	}
	return "", false
}
