// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Harmony  HarmonyConfig  `mapstructure:"harmony"`
	Registry RegistryConfig `mapstructure:"registry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig controls how long mixing sessions live in the store.
type SessionConfig struct {
	TTL int `mapstructure:"ttl"` // seconds
}

// HarmonyConfig holds the tunables of the harmony checker. Weights must
// sum to 1; thresholds are score cutoffs on the 0-100 scale.
type HarmonyConfig struct {
	ColorWeight      float64 `mapstructure:"color_weight"`
	TypographyWeight float64 `mapstructure:"typography_weight"`
	SpacingWeight    float64 `mapstructure:"spacing_weight"`
	ClashDistance    float64 `mapstructure:"clash_distance"`
	ScaleTolerance   float64 `mapstructure:"scale_tolerance"`
	SpacingTolerance float64 `mapstructure:"spacing_tolerance"`
	ThresholdHigh    int     `mapstructure:"threshold_high"`
	ThresholdMedium  int     `mapstructure:"threshold_medium"`
	ThresholdLow     int     `mapstructure:"threshold_low"`
}

// RegistryConfig points at the section-type registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
