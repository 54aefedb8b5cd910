package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Emby    EmbyConfig    `mapstructure:"emby"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EmbyConfig holds Emby API connection details
type EmbyConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// WatchConfig controls how library database changes are detected
type WatchConfig struct {
	LibraryDB string `mapstructure:"library_db"`
	Filter    string `mapstructure:"filter"`
	LockFile  string `mapstructure:"lock_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
