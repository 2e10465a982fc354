package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins      []string      `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	HTTPServerAddress   string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	TokenSecretKey      string        `mapstructure:"TOKEN_SECRET_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RedisServerAddress  string        `mapstructure:"REDIS_SERVER_ADDRESS"`

	// Notification center
	NotificationSnapshotKey       string `mapstructure:"NOTIFICATION_SNAPSHOT_KEY"`
	NotificationDedupResetOnClear bool   `mapstructure:"NOTIFICATION_DEDUP_RESET_ON_CLEAR"`

	// Watchers
	EscalationThreshold    time.Duration `mapstructure:"ESCALATION_THRESHOLD"`
	EscalationScanInterval time.Duration `mapstructure:"ESCALATION_SCAN_INTERVAL"`
	ReminderScanInterval   time.Duration `mapstructure:"REMINDER_SCAN_INTERVAL"`

	// Side channels
	WebPushEndpoint   string `mapstructure:"WEB_PUSH_ENDPOINT"`
	WebPushServerKey  string `mapstructure:"WEB_PUSH_SERVER_KEY"`
	EscalationMailbox string `mapstructure:"ESCALATION_MAILBOX"`
	SMTPUsername      string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword      string `mapstructure:"SMTP_PASSWORD"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Set defaults for non-sensitive config
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("ACCESS_TOKEN_DURATION", "24h")
	viper.SetDefault("NOTIFICATION_SNAPSHOT_KEY", "clinidesk:notifications")
	viper.SetDefault("NOTIFICATION_DEDUP_RESET_ON_CLEAR", false)
	viper.SetDefault("ESCALATION_THRESHOLD", "2h")
	viper.SetDefault("ESCALATION_SCAN_INTERVAL", "5m")
	viper.SetDefault("REMINDER_SCAN_INTERVAL", "30s")

	// Prefer environment variables over config file
	viper.AutomaticEnv()

	// Load config file
	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return
	}

	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.EscalationThreshold <= 0 {
		return fmt.Errorf("ESCALATION_THRESHOLD must be positive")
	}
	if config.EscalationScanInterval <= 0 {
		return fmt.Errorf("ESCALATION_SCAN_INTERVAL must be positive")
	}
	if config.ReminderScanInterval <= 0 {
		return fmt.Errorf("REMINDER_SCAN_INTERVAL must be positive")
	}

	return nil
}
