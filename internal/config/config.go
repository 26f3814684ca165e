package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTTTL      time.Duration `mapstructure:"JWT_TTL"`
	AdminAPIKey string        `mapstructure:"ADMIN_API_KEY"`

	// Timezone used to decide what "today" is for bookings.
	Timezone string `mapstructure:"TIMEZONE"`

	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	// Key the rate limiter on X-Forwarded-For. Only set behind a proxy that overwrites it.
	RateLimitTrustProxy bool `mapstructure:"RATE_LIMIT_TRUST_PROXY"`

	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripePriceID       string `mapstructure:"STRIPE_PRICE_ID"`
	StripeSuccessURL    string `mapstructure:"STRIPE_SUCCESS_URL"`
	StripeCancelURL     string `mapstructure:"STRIPE_CANCEL_URL"`

	SendGridAPIKey    string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `mapstructure:"SENDGRID_FROM_NAME"`

	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`

	CronExpireSubscriptions string `mapstructure:"CRON_EXPIRE_SUBSCRIPTIONS"`
}

var defaults = map[string]interface{}{
	"PORT":                      "8081",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"DATABASE_URL":              "",
	"JWT_SECRET":                "",
	"JWT_TTL":                   "24h",
	"ADMIN_API_KEY":             "",
	"TIMEZONE":                  "Europe/Madrid",
	"CORS_ORIGINS":              []string{"http://localhost:3000"},
	"RATE_LIMIT_RPS":            10.0,
	"RATE_LIMIT_BURST":          20,
	"RATE_LIMIT_TRUST_PROXY":    false,
	"STRIPE_SECRET_KEY":         "",
	"STRIPE_WEBHOOK_SECRET":     "",
	"STRIPE_PRICE_ID":           "",
	"STRIPE_SUCCESS_URL":        "http://localhost:3000/subscription/success",
	"STRIPE_CANCEL_URL":         "http://localhost:3000/subscription/cancel",
	"SENDGRID_API_KEY":          "",
	"SENDGRID_FROM_EMAIL":       "",
	"SENDGRID_FROM_NAME":        "BeWorking",
	"TWILIO_ACCOUNT_SID":        "",
	"TWILIO_AUTH_TOKEN":         "",
	"TWILIO_FROM_NUMBER":        "",
	"CRON_EXPIRE_SUBSCRIPTIONS": "@every 1h",
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	godotenv.Load()
	return FromViper(viper.New())
}

// FromViper applies defaults and environment bindings to v and decodes the result.
func FromViper(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET not set")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

// Location returns the booking time zone, falling back to CET when the tz database
// does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
