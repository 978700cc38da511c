package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when required settings are missing or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Mail providers understood by the composition root.
const (
	MailProviderSMTP     = "smtp"
	MailProviderPostmark = "postmark"
	MailProviderResend   = "resend"
	MailProviderMemory   = "memory"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"5000" validate:"required"`
	Environment string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production test"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	AssetsDir   string `env:"ASSETS_DIR" envDefault:"assets" validate:"required"`
	// Proxies whose X-Forwarded-For is honored when resolving the client IP
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Maintenance gate
	MaintenanceMode     bool   `env:"MAINTENANCE_MODE" envDefault:"false"`
	MaintenanceDuration string `env:"MAINTENANCE_DURATION" envDefault:"unknown"`

	// Mail transport
	MailProvider    string `env:"MAIL_PROVIDER" envDefault:"smtp" validate:"oneof=smtp postmark resend memory"`
	EmailUser       string `env:"EMAIL_USER"`
	EmailPass       string `env:"EMAIL_PASS"`
	RecipientEmail  string `env:"RECIPIENT_EMAIL"`
	EmailFrom       string `env:"EMAIL_FROM"` // defaults to EmailUser
	EmailHost       string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	EmailPort       int    `env:"EMAIL_PORT" envDefault:"587" validate:"min=1,max=65535"`
	PostmarkToken   string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccount string `env:"POSTMARK_ACCOUNT_TOKEN"`
	ResendAPIKey    string `env:"RESEND_API_KEY"`

	// S3-compatible asset bucket (optional, assets are read from AssetsDir otherwise)
	AssetsBucket      string `env:"ASSETS_BUCKET"`
	AssetsPrefix      string `env:"ASSETS_PREFIX"`
	S3Provider        string `env:"S3_PROVIDER" envDefault:"aws" validate:"oneof=aws wasabi"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Redis (optional, rate limiting falls back to in-memory)
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Rate limiting
	ContactRateLimit   int           `env:"CONTACT_RATE_LIMIT" envDefault:"3" validate:"min=1"`
	ContactRateWindow  time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"15m" validate:"min=1s"`
	GlobalRateLimit    int           `env:"GLOBAL_RATE_LIMIT" envDefault:"100" validate:"min=1"`
	GlobalRateWindow   time.Duration `env:"GLOBAL_RATE_WINDOW" envDefault:"15m" validate:"min=1s"`
	RateLimitFailClose bool          `env:"RATE_LIMIT_FAIL_CLOSED" envDefault:"false"`

	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"10485760" validate:"min=1"`
}

// LoadConfig reads the optional .env file and the process environment,
// applies defaults and validates the result once.
func LoadConfig() (*Config, error) {
	// Only effective locally, production has no .env file
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory store.")
	}

	return cfg, nil
}

// Validate enforces tag rules and the credentials each mail provider needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
	if c.EmailFrom == "" {
		c.EmailFrom = c.EmailUser
	}

	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	switch c.MailProvider {
	case MailProviderMemory:
		// test double, nothing is sent
	case MailProviderSMTP:
		require("EMAIL_USER", c.EmailUser)
		require("EMAIL_PASS", c.EmailPass)
		require("RECIPIENT_EMAIL", c.RecipientEmail)
	case MailProviderPostmark:
		require("POSTMARK_SERVER_TOKEN", c.PostmarkToken)
		require("POSTMARK_ACCOUNT_TOKEN", c.PostmarkAccount)
		require("EMAIL_FROM", c.EmailFrom)
		require("RECIPIENT_EMAIL", c.RecipientEmail)
	case MailProviderResend:
		require("RESEND_API_KEY", c.ResendAPIKey)
		require("EMAIL_FROM", c.EmailFrom)
		require("RECIPIENT_EMAIL", c.RecipientEmail)
	}

	if c.AssetsBucket != "" {
		require("S3_ACCESS_KEY_ID", c.S3AccessKeyID)
		require("S3_SECRET_ACCESS_KEY", c.S3SecretAccessKey)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required environment variable(s): %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
