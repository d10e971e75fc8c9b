// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	DataService   DataServiceConfig  `mapstructure:"data_service"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Cache         CacheConfig        `mapstructure:"cache"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	MetricsAddress  string        `mapstructure:"metrics_address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
}

// DataServiceConfig points at the remote record service that owns all
// household, contact, and application records.
type DataServiceConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIToken string        `mapstructure:"api_token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the read-through record cache. Zero TTLs fall back to
// the defaults applied by the loader.
type CacheConfig struct {
	OverviewTTL  time.Duration `mapstructure:"overview_ttl"`
	CandidateTTL time.Duration `mapstructure:"candidate_ttl"`
}

// NotificationConfig covers the outbound agency notifications (SES email to
// applicants, SNS events for assignment changes).
type NotificationConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Region      string `mapstructure:"region"`
	EmailFrom   string `mapstructure:"email_from"`
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (d DataServiceConfig) Validate() error {
	if d.BaseURL == "" {
		return fmt.Errorf("data_service.base_url is required")
	}
	return nil
}
