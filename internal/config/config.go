// Package config loads the magacin client configuration from
// ~/.magacin/config.yaml, with environment overrides for the settings that
// change per deployment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DotDirName is the per-user configuration directory.
const DotDirName = ".magacin"

// Config holds all magacin client configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Backend API
	API APIConfig `yaml:"api"`

	// Active warehouse context
	Warehouse WarehouseConfig `yaml:"warehouse"`

	// Map view behavior
	Map MapConfig `yaml:"map"`

	// Pick route generation
	PickRoute PickRouteConfig `yaml:"pick_route"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the REST backend connection.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is a duration string; empty or "0" means no request timeout,
	// matching the backend contract of never timing out floor operations.
	Timeout string `yaml:"timeout"`
}

// WarehouseConfig selects the warehouse the client operates on.
type WarehouseConfig struct {
	ID   string `yaml:"id"`
	Zone string `yaml:"zone"`
}

// MapConfig configures the map view.
type MapConfig struct {
	PollInterval string `yaml:"poll_interval"`
}

// PickRouteConfig configures route generation requests.
type PickRouteConfig struct {
	// Algorithm is forwarded verbatim to the generation endpoint; the
	// client never runs the optimization itself.
	Algorithm string `yaml:"algorithm"`
}

// LoggingConfig configures the categorized file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "magacin",
		Version: "1.2.0",

		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: "0",
		},

		Warehouse: WarehouseConfig{
			ID: "1",
		},

		Map: MapConfig{
			PollInterval: "30s",
		},

		PickRoute: PickRouteConfig{
			Algorithm: "nearest_neighbor",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DotDir returns the per-user configuration directory, creating nothing.
func DotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DotDirName
	}
	return filepath.Join(home, DotDirName)
}

// DefaultPath returns the config file path inside the dot directory.
func DefaultPath() string {
	return filepath.Join(DotDir(), "config.yaml")
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory if
// needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("MAGACIN_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if id := os.Getenv("MAGACIN_WAREHOUSE"); id != "" {
		c.Warehouse.ID = id
	}
	if zone := os.Getenv("MAGACIN_ZONE"); zone != "" {
		c.Warehouse.Zone = zone
	}
}

// GetPollInterval returns the map poll interval as a duration.
func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Map.PollInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetRequestTimeout returns the API request timeout; zero means none.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url not configured (set MAGACIN_API_URL or edit %s)",
			filepath.Join(DotDir(), "config.yaml"))
	}
	if c.Warehouse.ID == "" {
		return fmt.Errorf("warehouse.id not configured")
	}
	return nil
}
