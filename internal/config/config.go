package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"quickfind/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Client ClientSettings `toml:"client"`
	Server ServerSettings `toml:"server"`
	UI     UISettings     `toml:"ui"`
}

// ClientSettings configures the terminal widget's search calls
type ClientSettings struct {
	Endpoint   string `toml:"endpoint"`
	DebounceMs int    `toml:"debounce_ms"`
	TimeoutMs  int    `toml:"timeout_ms"` // 0 disables the per-request timeout
	ShareBase  string `toml:"share_base"`
}

// ServerSettings configures the search endpoint
type ServerSettings struct {
	Addr        string `toml:"addr"`
	MinDelayMs  int    `toml:"min_delay_ms"`
	MaxDelayMs  int    `toml:"max_delay_ms"`
	DatabaseURL string `toml:"database_url"` // empty serves the in-memory catalog
}

// UISettings represents UI-related configuration
type UISettings struct {
	LogFile string `toml:"log_file"`
	Mouse   bool   `toml:"mouse"`
}

// Debounce returns the debounce interval
func (c ClientSettings) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Timeout returns the per-request timeout, zero when disabled
func (c ClientSettings) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.Client.Endpoint == "":
		return errors.New("client.endpoint must not be empty")
	case c.Client.DebounceMs < 0:
		return fmt.Errorf("client.debounce_ms must not be negative, got %d", c.Client.DebounceMs)
	case c.Client.TimeoutMs < 0:
		return fmt.Errorf("client.timeout_ms must not be negative, got %d", c.Client.TimeoutMs)
	case c.Server.MinDelayMs < 0 || c.Server.MaxDelayMs < 0:
		return fmt.Errorf("server delays must not be negative, got %d..%d", c.Server.MinDelayMs, c.Server.MaxDelayMs)
	case c.Server.MinDelayMs > c.Server.MaxDelayMs:
		return fmt.Errorf("server.min_delay_ms (%d) exceeds server.max_delay_ms (%d)", c.Server.MinDelayMs, c.Server.MaxDelayMs)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/quickfind/config.toml, falling back
// to ~/.config when the user config dir is unknown
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "quickfind", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return NewConfigServiceAt("")
}

// NewConfigServiceAt creates a config service for path; "" means DefaultPath
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigServiceAt(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Endpoint: cfg.Client.Endpoint,
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Client: ClientSettings{
			Endpoint:   "http://localhost:8080/api/search",
			DebounceMs: 300,
			ShareBase:  "http://localhost:3000/",
		},
		Server: ServerSettings{
			Addr:       ":8080",
			MinDelayMs: 200,
			MaxDelayMs: 1100,
		},
		UI: UISettings{
			LogFile: "quickfind.log",
			Mouse:   true,
		},
	}
}
