package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. EMBYUPDATE_EMBY_PASSWORD
const EnvPrefix = "EMBYUPDATE"

// Load loads the configuration from file and environment. A missing config
// file is only an error when configPath is given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".embyupdate"))
		}

		// Check /etc
		v.AddConfigPath("/etc/embyupdate/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Emby defaults. username and password have none on purpose.
	v.SetDefault("emby.host", "localhost")
	v.SetDefault("emby.port", 8096)
	v.SetDefault("emby.timeout", "0s")

	// Registered so AutomaticEnv picks them up during Unmarshal
	v.SetDefault("emby.username", "")
	v.SetDefault("emby.password", "")

	// Watch defaults
	v.SetDefault("watch.library_db", "")
	v.SetDefault("watch.filter", "")
	v.SetDefault("watch.lock_file", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateLogLevel reports whether level is one of the supported logging levels
func ValidateLogLevel(level string) error {
	if !validLevels[level] {
		return fmt.Errorf("invalid logging level: %s", level)
	}
	return nil
}

// validate checks if the configuration is valid. Missing credentials are
// reported by the refresh workflow itself, not here.
func validate(cfg *Config) error {
	if cfg.Emby.Port < 0 || cfg.Emby.Port > 65535 {
		return fmt.Errorf("invalid emby.port: %d", cfg.Emby.Port)
	}

	if cfg.Emby.Timeout < 0 {
		return fmt.Errorf("invalid emby.timeout: %s", cfg.Emby.Timeout)
	}

	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
