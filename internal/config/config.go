package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Payment  PaymentConfig
	Email    EmailConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AdminConfig drives the admin gate. PasswordHash is a bcrypt hash; Password
// is a plaintext fallback for local development. JWTSecret signs admin
// session tokens, which expire after SessionHours.
type AdminConfig struct {
	Password     string
	PasswordHash string
	JWTSecret    string
	SessionHours int
}

// PaymentConfig carries the payment gateway's publishable key. Payment
// processing itself is delegated to the gateway; when the key is absent the
// checkout flow hands out a non-functional mock reference instead of failing.
type PaymentConfig struct {
	PublicKey string
}

// EmailConfig identifies the transactional email service. Delivery is
// delegated; these are pass-through identifiers only.
type EmailConfig struct {
	ServiceID  string
	TemplateID string
}

type CheckoutConfig struct {
	TaxRate float64
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults; missing values degrade to documented fallbacks rather
	// than failing startup.
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ADMIN_SESSION_HOURS", 24)
	viper.SetDefault("CHECKOUT_TAX_RATE", 0.05)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Password:     viper.GetString("ADMIN_PASSWORD"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			JWTSecret:    viper.GetString("ADMIN_JWT_SECRET"),
			SessionHours: viper.GetInt("ADMIN_SESSION_HOURS"),
		},
		Payment: PaymentConfig{
			PublicKey: viper.GetString("PAYMENT_PUBLIC_KEY"),
		},
		Email: EmailConfig{
			ServiceID:  viper.GetString("EMAIL_SERVICE_ID"),
			TemplateID: viper.GetString("EMAIL_TEMPLATE_ID"),
		},
		Checkout: CheckoutConfig{
			TaxRate: viper.GetFloat64("CHECKOUT_TAX_RATE"),
		},
	}
}
