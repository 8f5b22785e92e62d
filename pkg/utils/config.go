package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Gateway  GatewayConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AuthConfig struct {
	JWTSecret string
}

// GatewayConfig holds the payment provider credentials plus the fee rates
// used to gross up order amounts so the organizer nets the booking total.
type GatewayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Currency      string
	FeeRate       float64
	FeeGSTRate    float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GATEWAY_CURRENCY", "INR")
	viper.SetDefault("GATEWAY_FEE_RATE", 0.0)
	viper.SetDefault("GATEWAY_FEE_GST_RATE", 0.18)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
		},
		Gateway: GatewayConfig{
			KeyID:         viper.GetString("GATEWAY_KEY_ID"),
			KeySecret:     viper.GetString("GATEWAY_KEY_SECRET"),
			WebhookSecret: viper.GetString("GATEWAY_WEBHOOK_SECRET"),
			Currency:      viper.GetString("GATEWAY_CURRENCY"),
			FeeRate:       viper.GetFloat64("GATEWAY_FEE_RATE"),
			FeeGSTRate:    viper.GetFloat64("GATEWAY_FEE_GST_RATE"),
		},
	}

	return config, nil
}
