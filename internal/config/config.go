package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, read from environment
// variables at startup.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	SendGridAPIKey                   string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFrom                     string `mapstructure:"SENDGRID_FROM"`
	CompanyName                      string `mapstructure:"COMPANY_NAME"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	RedisAddress                     string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword                    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB                          int    `mapstructure:"REDIS_DB"`
	RabbitMQURL                      string `mapstructure:"RABBITMQ_URL"`
	EmailQueueName                   string `mapstructure:"EMAIL_QUEUE_NAME"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
// SENDGRID_API_KEY and SENDGRID_FROM fall back to placeholder values when
// unset so local development works without a mail account; a production
// deployment must override both.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("SENDGRID_API_KEY", "sua_api_key_aqui")
	viper.SetDefault("SENDGRID_FROM", "noreply@seudominio.com")
	viper.SetDefault("COMPANY_NAME", "PDV System")
	viper.SetDefault("EMAIL_QUEUE_NAME", "pdv.emails")
	viper.SetDefault("REDIS_DB", 0)

	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("SENDGRID_API_KEY")
	viper.BindEnv("SENDGRID_FROM")
	viper.BindEnv("COMPANY_NAME")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("REDIS_ADDRESS")
	viper.BindEnv("REDIS_PASSWORD")
	viper.BindEnv("REDIS_DB")
	viper.BindEnv("RABBITMQ_URL")
	viper.BindEnv("EMAIL_QUEUE_NAME")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
