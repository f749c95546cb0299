package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	AdminEmail        string
	AdminPasswordHash string

	StripeSecretKey string
	PosthogAPIKey   string

	// MinPayoutCents is the minimum accumulated balance before a coach is
	// paid out, in cents.
	MinPayoutCents int64
	PayoutCurrency string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "lingueefy-payouts")
	v.SetDefault("MIN_PAYOUT_CENTS", 1000)
	v.SetDefault("PAYOUT_CURRENCY", "cad")

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiryDuration: time.Duration(v.GetInt("JWT_EXPIRY_MINUTES")) * time.Minute,
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		StripeSecretKey:   v.GetString("STRIPE_SECRET_KEY"),
		PosthogAPIKey:     v.GetString("POSTHOG_API_KEY"),
		MinPayoutCents:    v.GetInt64("MIN_PAYOUT_CENTS"),
		PayoutCurrency:    v.GetString("PAYOUT_CURRENCY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY environment variable not set")
	}
	if cfg.MinPayoutCents <= 0 {
		return nil, fmt.Errorf("MIN_PAYOUT_CENTS must be positive, got %d", cfg.MinPayoutCents)
	}

	return cfg, nil
}
