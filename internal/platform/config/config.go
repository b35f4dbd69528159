package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Email    EmailConfig    `mapstructure:"email"`
	WhatsApp WhatsAppConfig `mapstructure:"whatsapp"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Domains  DomainsConfig  `mapstructure:"domains"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type StripeConfig struct {
	SecretKey         string `mapstructure:"secret_key"`
	WebhookSecret     string `mapstructure:"webhook_secret"`
	ProPriceID        string `mapstructure:"pro_price_id"`
	BusinessPriceID   string `mapstructure:"business_price_id"`
	EnterprisePriceID string `mapstructure:"enterprise_price_id"`
}

type EmailConfig struct {
	PostmarkServerToken  string `mapstructure:"postmark_server_token"`
	PostmarkAccountToken string `mapstructure:"postmark_account_token"`
	FromAddress          string `mapstructure:"from_address"`
}

type WhatsAppConfig struct {
	PhoneNumberID string `mapstructure:"phone_number_id"`
	AccessToken   string `mapstructure:"access_token"`
}

type StorageConfig struct {
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	BaseURL string `mapstructure:"base_url"`
}

type WorkerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	// NotificationLookback bounds how far into the past the sender still
	// picks up unsent notifications.
	NotificationLookback time.Duration `mapstructure:"notification_lookback"`
	RetentionMonths      int           `mapstructure:"retention_months"`
}

type DomainsConfig struct {
	AppURL string `mapstructure:"app_url"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("jwt.access_token_ttl", "24h")
	viper.SetDefault("worker.interval", "15m")
	viper.SetDefault("worker.notification_lookback", "48h")
	viper.SetDefault("worker.retention_months", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
