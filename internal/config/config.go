// Package config loads vault configuration from a YAML file and the
// environment. Precedence: explicit flags > RECORDVAULT_* env vars >
// config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kmccarty/recordvault/internal/compress"
)

// Config is the persisted configuration for one vault.
type Config struct {
	Root        string `mapstructure:"root"`
	Profile     string `mapstructure:"profile"`
	SealKey     string `mapstructure:"seal_key"`
	DefaultDeny bool   `mapstructure:"default_deny"`
	Threshold   int    `mapstructure:"compress_threshold"`
	Principal   string `mapstructure:"principal"`
}

// DefaultRoot is where records live when nothing else is configured.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recordvault"
	}
	return filepath.Join(home, ".recordvault", "records")
}

// Load reads configuration. With a non-empty path only that file is
// consulted; otherwise the usual locations are searched and a missing
// file is fine.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("root", DefaultRoot())
	v.SetDefault("profile", "memory")
	v.SetDefault("compress_threshold", compress.DefaultThreshold)
	v.SetDefault("principal", "system")
	// Registered so AutomaticEnv can populate them through Unmarshal.
	v.SetDefault("seal_key", "")
	v.SetDefault("default_deny", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "recordvault"))
		}
	}

	v.SetEnvPrefix("RECORDVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
