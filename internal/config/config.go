// Package config loads the user configuration: backend connection, local
// database path, daemon socket, default stages, key bindings and theme.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/partners/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. PARTNERS_BACKEND_URL.
const EnvPrefix = "PARTNERS"

// Config represents the application configuration
type Config struct {
	Backend     BackendConfig  `yaml:"backend" mapstructure:"backend"`
	Database    DatabaseConfig `yaml:"database" mapstructure:"database"`
	Daemon      DaemonConfig   `yaml:"daemon" mapstructure:"daemon"`
	Stages      StagesConfig   `yaml:"stages" mapstructure:"stages"`
	Log         LogConfig      `yaml:"log" mapstructure:"log"`
	KeyMappings KeyMappings    `yaml:"key_mappings" mapstructure:"key_mappings"`
	ColorScheme ColorScheme    `yaml:"theme" mapstructure:"theme"`
}

// BackendConfig points at the hosted record store. An empty URL selects
// the local SQLite database.
type BackendConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Table  string `yaml:"table" mapstructure:"table"`
}

// Remote reports whether a hosted backend is configured.
func (b BackendConfig) Remote() bool {
	return strings.TrimSpace(b.URL) != ""
}

type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type DaemonConfig struct {
	Socket       string        `yaml:"socket" mapstructure:"socket"`
	ClientBuffer int           `yaml:"client_buffer" mapstructure:"client_buffer"`
	PingInterval time.Duration `yaml:"ping_interval" mapstructure:"ping_interval"`
}

type StagesConfig struct {
	Defaults []string `yaml:"defaults" mapstructure:"defaults"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Backend:     BackendConfig{Table: "design_partners"},
		Daemon:      DaemonConfig{ClientBuffer: 16, PingInterval: 30 * time.Second},
		Stages:      StagesConfig{Defaults: models.DefaultStages()},
		Log:         LogConfig{Level: "info"},
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: ResolveTheme("default", ColorScheme{}),
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Database.Path = filepath.Join(home, ".partners", "partners.db")
		cfg.Daemon.Socket = filepath.Join(home, ".partners", "partners.sock")
	}
	return cfg
}

// loadThemeFile loads and merges theme from PARTNERS_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvPrefix + "_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults. Environment variables override
// both (PARTNERS_BACKEND_URL, PARTNERS_DATABASE_PATH, ...).
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err == nil {
			path = p
		}
	}

	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend.url", def.Backend.URL)
	v.SetDefault("backend.api_key", def.Backend.APIKey)
	v.SetDefault("backend.table", def.Backend.Table)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("daemon.socket", def.Daemon.Socket)
	v.SetDefault("daemon.client_buffer", def.Daemon.ClientBuffer)
	v.SetDefault("daemon.ping_interval", def.Daemon.PingInterval)
	v.SetDefault("stages.defaults", def.Stages.Defaults)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.dir", def.Log.Dir)

	if path != "" {
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	loadThemeFile(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()
	config.expandPaths()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Validate checks values that would only fail later at connect time.
func (c *Config) Validate() error {
	if c.Backend.Remote() {
		u, err := url.Parse(c.Backend.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("backend.url must include scheme and host (e.g. https://project.example.co)")
		}
		if c.Backend.APIKey == "" {
			return fmt.Errorf("backend.api_key is required when backend.url is set")
		}
	}
	seen := make(map[string]bool, len(c.Stages.Defaults))
	for _, s := range c.Stages.Defaults {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("stages.defaults contains an empty stage")
		}
		if seen[s] {
			return fmt.Errorf("stages.defaults lists %q twice", s)
		}
		seen[s] = true
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path. The file may hold an api key
// so it is readable by the owner only.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file location.
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "partners", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "partners", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Backend.Table == "" {
		c.Backend.Table = "design_partners"
	}
	if len(c.Stages.Defaults) == 0 {
		c.Stages.Defaults = models.DefaultStages()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

func (c *Config) expandPaths() {
	c.Database.Path = expandHome(c.Database.Path)
	c.Daemon.Socket = expandHome(c.Daemon.Socket)
	c.Log.Dir = expandHome(c.Log.Dir)
}

func expandHome(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
