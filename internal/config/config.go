// Package config loads kioku settings from defaults, an optional YAML file
// and KIOKU_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/kioku/internal/logging"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	envPrefix  = "KIOKU"
)

const (
	DefaultLogLevel  = "INFO"
	DefaultColumns   = 6
	DefaultSortOrder = "Type"
	MinColumns       = 1
	MaxColumns       = 12
)

type Config struct {
	DBPath    string `mapstructure:"db_path"`
	LogLevel  string `mapstructure:"log_level"`
	LogFile   string `mapstructure:"log_file"`
	Columns   int    `mapstructure:"columns"`
	SortOrder string `mapstructure:"sort_order"`
	ShowForm  bool   `mapstructure:"show_form"`
}

// Order resolves SortOrder, falling back to the type order.
func (c *Config) Order() search.SortOrder {
	return search.ForDescription(c.SortOrder, search.OrderType)
}

// DefaultDir is ~/.kioku, or ./.kioku when there is no home directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kioku"
	}
	return filepath.Join(home, ".kioku")
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in ~/.kioku and a missing file is not an error.
// Out-of-range values are replaced by their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("db_path", filepath.Join(DefaultDir(), "kioku.db"))
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("columns", DefaultColumns)
	v.SetDefault("sort_order", DefaultSortOrder)
	v.SetDefault("show_form", false)
}

func (c *Config) normalize() {
	if c.Columns < MinColumns || c.Columns > MaxColumns {
		c.Columns = DefaultColumns
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = DefaultLogLevel
	}
	c.SortOrder = c.Order().Description()
	if c.DBPath == "" {
		c.DBPath = filepath.Join(DefaultDir(), "kioku.db")
	}
}
