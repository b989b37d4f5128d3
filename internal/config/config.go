// Package config resolves credaudit settings from flags, environment
// variables (CREDAUDIT_*) and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CREDAUDIT_DB.
const EnvPrefix = "CREDAUDIT"

// Config holds all resolved settings.
type Config struct {
	DB          string      `mapstructure:"db"`
	Catalogue   string      `mapstructure:"catalogue"`
	MetricsFile string      `mapstructure:"metrics_file"`
	Log         LogConfig   `mapstructure:"log"`
	Model       ModelConfig `mapstructure:"model"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ModelConfig configures the remote eligibility classifier. An empty URL
// selects the built-in requirements model.
type ModelConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// New returns a viper instance with defaults and environment binding set.
// Callers bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("catalogue", "")
	v.SetDefault("metrics_file", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("model.url", "")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.timeout", "5s")
}

// Load reads the config file and unmarshals the merged settings. When file
// is empty, credaudit.yaml is searched for in the working directory and the
// user config directory; a missing file is not an error in that case.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("credaudit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "credaudit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Model.Timeout <= 0 {
		return nil, fmt.Errorf("model.timeout must be positive, got %s", cfg.Model.Timeout)
	}
	return &cfg, nil
}
