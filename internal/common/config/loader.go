// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

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

	// Enable ENV override like DATA_SERVICE_BASE_URL
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

	// Environment-specific overlay, ignored when absent
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

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

// loadEnvFile tries .env from the likely working directories (repo root,
// cmd/, test/).
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "fostercare-intake"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.MetricsAddress == "" {
		cfg.Server.MetricsAddress = ":9100"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.SessionTTL == 0 {
		cfg.Server.SessionTTL = 2 * time.Hour
	}
	if cfg.DataService.Timeout == 0 {
		cfg.DataService.Timeout = 30 * time.Second
	}
	if cfg.DataService.BaseURL == "" {
		cfg.DataService.BaseURL = os.Getenv("DATA_SERVICE_BASE_URL")
	}
	if cfg.DataService.APIToken == "" {
		cfg.DataService.APIToken = os.Getenv("DATA_SERVICE_API_TOKEN")
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Cache.OverviewTTL == 0 {
		cfg.Cache.OverviewTTL = 5 * time.Minute
	}
	if cfg.Cache.CandidateTTL == 0 {
		cfg.Cache.CandidateTTL = 2 * time.Minute
	}
	if cfg.Notifications.Region == "" {
		cfg.Notifications.Region = "us-east-1"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if err := cfg.DataService.Validate(); err != nil {
		return err
	}
	if cfg.Notifications.Enabled && cfg.Notifications.EmailFrom == "" {
		return fmt.Errorf("notifications.email_from is required when notifications are enabled")
	}
	return nil
}
