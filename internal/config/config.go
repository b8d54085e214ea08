// Package config loads server configuration from an optional file plus
// INVOICEQC_* environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for the HTTP server.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Validation ValidationConfig `mapstructure:"validation"`
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// ValidationConfig holds the defaults applied when a request does not
// override them.
type ValidationConfig struct {
	Tolerance float64 `mapstructure:"tolerance"`
	MaxAmount float64 `mapstructure:"max_amount"`
}

// Load reads configuration from path (optional; empty means defaults and
// environment only). Environment variables use the INVOICEQC_ prefix with
// underscores, e.g. INVOICEQC_SERVER_ADDRESS.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", time.Minute)
	v.SetDefault("server.debug", false)
	v.SetDefault("validation.tolerance", 0.02)
	v.SetDefault("validation.max_amount", 1_000_000)

	v.SetEnvPrefix("INVOICEQC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
