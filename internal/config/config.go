package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultSourceRef is the C&SD web-table endpoint for the HEA001 body-shape
// aggregates, requested in CSV format.
const DefaultSourceRef = "https://www.censtatd.gov.hk/en/web_table.html?id=HEA001&format=csv"

// Config holds the tool configuration.
type Config struct {
	// SourceRef is the resource locator fetched by fetch/run.
	SourceRef string `mapstructure:"source_ref" yaml:"source_ref"`
	// TableID names the table; it prefixes the raw/cleaned artifact files.
	TableID string `mapstructure:"table_id" yaml:"table_id"`
	// DataDir is the root for the raw/ and cleaned/ artifact directories.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// MinAge and MaxAge bound the inclusive age range kept by cleaning.
	MinAge int `mapstructure:"min_age" yaml:"min_age"`
	MaxAge int `mapstructure:"max_age" yaml:"max_age"`

	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.bodyshape/config.yaml, creating the directory if
// necessary.
func Save(c *Config, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".bodyshape")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BODYSHAPE")
	v.AutomaticEnv()

	v.SetDefault("source_ref", DefaultSourceRef)
	v.SetDefault("table_id", "HEA001")
	v.SetDefault("data_dir", "data")
	v.SetDefault("min_age", 18)
	v.SetDefault("max_age", 80)
	v.SetDefault("user_agent", "data-scraper/1.0")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".bodyshape")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.MinAge > c.MaxAge {
		return nil, fmt.Errorf("min_age %d exceeds max_age %d", c.MinAge, c.MaxAge)
	}
	return &c, nil
}
