package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/bryanchriswhite/WindowScout/internal/window"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration keys
const (
	KeySearchMode     = "search_mode"
	KeyServerPort     = "server_port"
	KeyLogLevel       = "log_level"
	KeyLogPretty      = "log_pretty"
	KeyPollIntervalMS = "poll_interval_ms"
)

// EnvPrefix prefixes environment variable overrides, e.g. WINDOWSCOUT_SERVER_PORT.
const EnvPrefix = "WINDOWSCOUT"

// Config represents the application configuration
type Config struct {
	SearchMode     string `json:"search_mode" yaml:"search_mode" mapstructure:"search_mode"`
	ServerPort     int    `json:"server_port" yaml:"server_port" mapstructure:"server_port"`
	LogLevel       string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogPretty      bool   `json:"log_pretty" yaml:"log_pretty" mapstructure:"log_pretty"`
	PollIntervalMS int    `json:"poll_interval_ms" yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
}

// Mode parses the configured search mode.
func (c *Config) Mode() (window.SearchMode, error) {
	return window.ParseSearchMode(c.SearchMode)
}

// PollInterval returns the snapshot polling interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Defaults returns the default configuration
func Defaults() *Config {
	return &Config{
		SearchMode:     window.ExcludeMinimized.String(),
		ServerPort:     8080,
		LogLevel:       "info",
		LogPretty:      false,
		PollIntervalMS: 1000,
	}
}

// Manager handles configuration
type Manager struct {
	configPath string
	v          *viper.Viper
	mu         sync.RWMutex
	// pending holds every value stored by Set; Save writes them.
	pending map[string]any
}

// DefaultPath returns $HOME/.config/windowscout/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "windowscout", "config.yaml"), nil
}

// NewManager creates a new configuration manager. An empty configFile
// selects DefaultPath. A missing file is created with defaults.
func NewManager(configFile string) (*Manager, error) {
	actualConfigPath := configFile
	if actualConfigPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		actualConfigPath = p
	}

	v := newFileViper(actualConfigPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{
		configPath: actualConfigPath,
		v:          v,
		pending:    make(map[string]any),
	}

	log := logger.WithComponent("config")
	if _, err := os.Stat(actualConfigPath); os.IsNotExist(err) {
		log.Info().
			Str("path", actualConfigPath).
			Msg("Config file not found, creating new config")
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := m.Get().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", actualConfigPath, err)
	}

	log.Debug().
		Str("path", m.configPath).
		Msg("Config loaded")

	return m, nil
}

// newFileViper returns a viper with defaults bound to path, without
// environment overrides.
func newFileViper(path string) *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeySearchMode, d.SearchMode)
	v.SetDefault(KeyServerPort, d.ServerPort)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogPretty, d.LogPretty)
	v.SetDefault(KeyPollIntervalMS, d.PollIntervalMS)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return v
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port: %d", c.ServerPort)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (use: debug, info, warn, error)", c.LogLevel)
	}
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("invalid poll interval: %dms", c.PollIntervalMS)
	}
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return configFrom(m.v)
}

func configFrom(v *viper.Viper) *Config {
	return &Config{
		SearchMode:     v.GetString(KeySearchMode),
		ServerPort:     v.GetInt(KeyServerPort),
		LogLevel:       v.GetString(KeyLogLevel),
		LogPretty:      v.GetBool(KeyLogPretty),
		PollIntervalMS: v.GetInt(KeyPollIntervalMS),
	}
}

// Lookup returns the value stored under key.
func (m *Manager) Lookup(key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.v.IsSet(key) {
		return nil, fmt.Errorf("configuration key not found: %s", key)
	}
	return m.v.Get(key), nil
}

// Set parses value for key, validates it and stores it in memory.
// Call Save to persist.
func (m *Manager) Set(key, value string) error {
	var parsed any
	switch key {
	case KeySearchMode:
		mode, err := window.ParseSearchMode(value)
		if err != nil {
			return err
		}
		parsed = mode.String()
	case KeyServerPort:
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port number: %s", value)
		}
		parsed = port
	case KeyLogLevel:
		if !logger.ValidLevel(value) {
			return fmt.Errorf("invalid log level: %s (use: debug, info, warn, error)", value)
		}
		parsed = strings.ToLower(value)
	case KeyLogPretty:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s (use: true or false)", value)
		}
		parsed = b
	case KeyPollIntervalMS:
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid poll interval: %s", value)
		}
		parsed = ms
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	m.mu.Lock()
	m.v.Set(key, parsed)
	m.pending[key] = parsed
	m.mu.Unlock()
	return nil
}

// persisted returns the file's values with pending Set calls applied.
// Environment overrides are never written back.
func (m *Manager) persisted() (*Config, error) {
	fv := newFileViper(m.configPath)
	if _, err := os.Stat(m.configPath); err == nil {
		if err := fv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	m.mu.RLock()
	for key, value := range m.pending {
		fv.Set(key, value)
	}
	m.mu.RUnlock()
	return configFrom(fv), nil
}

// Save writes the file-backed configuration plus pending Set values to disk
func (m *Manager) Save() error {
	cfg, err := m.persisted()
	if err != nil {
		return err
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Msg("Saving config")

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Watch calls fn with the reloaded configuration whenever the config
// file changes on disk. Invalid edits are logged and ignored.
func (m *Manager) Watch(fn func(*Config)) {
	log := logger.WithComponent("config")

	m.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg := m.Get()
		if err := cfg.Validate(); err != nil {
			log.Warn().Err(err).Str("path", e.Name).Msg("Ignoring invalid config change")
			return
		}
		log.Info().Str("path", e.Name).Msg("Config reloaded")
		fn(cfg)
	})
	m.v.WatchConfig()
}

// GetConfigPath returns the path to the configuration file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}
