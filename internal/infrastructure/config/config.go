package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Version is the application version string, overridable at link time.
var Version = "0.0.0-dev"

// Config holds all host daemon configuration.
type Config struct {
	Server    ServerConfig
	Bridge    BridgeConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"VISOR_PORT" default:"8137"`
	Host string `envconfig:"VISOR_HOST" default:"127.0.0.1"`
}

// BridgeConfig holds bridge layer configuration.
type BridgeConfig struct {
	// StateDir is the host state directory; empty means a default under
	// the OS config location.
	StateDir string `envconfig:"VISOR_STATE_DIR" default:""`
	// ExtensionsSubpath is the fixed subpath under the home directory
	// where extensions are installed.
	ExtensionsSubpath string `envconfig:"VISOR_EXTENSIONS_SUBPATH" default:".visor/extensions"`
	// DeepLinkScheme is the URL scheme for launch-argument deep links.
	DeepLinkScheme string `envconfig:"VISOR_DEEPLINK_SCHEME" default:"visor"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"VISOR_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"VISOR_LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"VISOR_RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"VISOR_RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"VISOR_RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from VISOR_* environment variables. The tags
// carry the full variable names: envconfig would otherwise compose a
// prefix with the nested struct names (VISOR_SERVER_PORT and so on).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8137", Host: "127.0.0.1"},
		Bridge: BridgeConfig{
			ExtensionsSubpath: ".visor/extensions",
			DeepLinkScheme:    "visor",
		},
		Logging:   LogConfig{Level: "info"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 100, Burst: 200, Enabled: true},
	}
}

// ResolveStateDir returns the configured state directory, defaulting to
// ~/.visor/state when unset.
func (c *Config) ResolveStateDir() (string, error) {
	if c.Bridge.StateDir != "" {
		return c.Bridge.StateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve state directory: %w", err)
	}
	return filepath.Join(home, ".visor", "state"), nil
}
