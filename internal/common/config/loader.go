// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SERVER_PORT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific layer, ignored if absent.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "token-mixer"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8085
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}

	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 86400 // one day
	}

	// Harmony defaults mirror harmony.DefaultConfig.
	if cfg.Harmony.ColorWeight == 0 && cfg.Harmony.TypographyWeight == 0 && cfg.Harmony.SpacingWeight == 0 {
		cfg.Harmony.ColorWeight = 0.4
		cfg.Harmony.TypographyWeight = 0.35
		cfg.Harmony.SpacingWeight = 0.25
	}
	if cfg.Harmony.ClashDistance == 0 {
		cfg.Harmony.ClashDistance = 0.35
	}
	if cfg.Harmony.ScaleTolerance == 0 {
		cfg.Harmony.ScaleTolerance = 0.25
	}
	if cfg.Harmony.SpacingTolerance == 0 {
		cfg.Harmony.SpacingTolerance = 0.3
	}
	if cfg.Harmony.ThresholdHigh == 0 {
		cfg.Harmony.ThresholdHigh = 80
	}
	if cfg.Harmony.ThresholdMedium == 0 {
		cfg.Harmony.ThresholdMedium = 60
	}
	if cfg.Harmony.ThresholdLow == 0 {
		cfg.Harmony.ThresholdLow = 40
	}

	if cfg.Registry.Path == "" {
		cfg.Registry.Path = "configs/sections.json"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	weightSum := cfg.Harmony.ColorWeight + cfg.Harmony.TypographyWeight + cfg.Harmony.SpacingWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("harmony weights must sum to 1, got %.3f", weightSum)
	}

	if !(cfg.Harmony.ThresholdLow < cfg.Harmony.ThresholdMedium && cfg.Harmony.ThresholdMedium < cfg.Harmony.ThresholdHigh) {
		return fmt.Errorf("harmony thresholds must be ordered low < medium < high")
	}

	return nil
}
