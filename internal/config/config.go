package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultInternalToken  = "change-me-internal-token"
	defaultGatewaySecret  = "change-me-gateway-secret"
	defaultWebhookSecret  = "change-me-webhook-secret"
	defaultEventsExchange = "venuehub.events"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"venuehub.db"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	InternalToken string `envconfig:"INTERNAL_TOKEN" default:"change-me-internal-token"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	Payment   PaymentConfig
	Booking   BookingConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Events    EventsConfig
	SMTP      SMTPConfig
	Media     MediaConfig
}

type MediaConfig struct {
	Dir       string `envconfig:"MEDIA_DIR" default:"./media"`
	URLPrefix string `envconfig:"MEDIA_URL_PREFIX" default:"/static/media"`
	MaxBytes  int64  `envconfig:"MEDIA_MAX_BYTES" default:"10485760"`
}

type PaymentConfig struct {
	KeyID          string  `envconfig:"GATEWAY_KEY_ID" default:"rzp_test_key"`
	KeySecret      string  `envconfig:"GATEWAY_KEY_SECRET" default:"change-me-gateway-secret"`
	WebhookSecret  string  `envconfig:"GATEWAY_WEBHOOK_SECRET" default:"change-me-webhook-secret"`
	Currency       string  `envconfig:"GATEWAY_CURRENCY" default:"INR"`
	AdvancePercent float64 `envconfig:"ADVANCE_PERCENT" default:"0.5"`
	AdvanceCap     float64 `envconfig:"ADVANCE_CAP" default:"50000"`
	MinAdvance     float64 `envconfig:"MIN_ADVANCE" default:"1"`
	MinOrderMinor  int64   `envconfig:"MIN_ORDER_MINOR" default:"100"`
}

type BookingConfig struct {
	RescheduleWindow time.Duration `envconfig:"RESCHEDULE_WINDOW" default:"48h"`
	CancelWindowDays int           `envconfig:"CANCEL_WINDOW_DAYS" default:"7"`
	ReminderLead     time.Duration `envconfig:"REMINDER_LEAD" default:"24h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	TLS      bool   `envconfig:"REDIS_TLS" default:"false"`
}

type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"30"`
	RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"2s"`
	TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
}

type CacheConfig struct {
	Enabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"CACHE_TTL" default:"60s"`
	Prefix  string        `envconfig:"CACHE_PREFIX" default:"cache"`
}

type EventsConfig struct {
	RabbitURL string `envconfig:"RABBIT_URL"`
	Exchange  string `envconfig:"EVENTS_EXCHANGE" default:"venuehub.events"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@venuehub.local"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if cfg.Events.Exchange == "" {
		cfg.Events.Exchange = defaultEventsExchange
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProdLike() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Payment.AdvancePercent <= 0 || cfg.Payment.AdvancePercent > 1 {
		return fmt.Errorf("ADVANCE_PERCENT must be in (0, 1]")
	}
	if cfg.Payment.AdvanceCap <= 0 {
		return fmt.Errorf("ADVANCE_CAP must be > 0")
	}
	if cfg.Payment.MinAdvance < 0 {
		return fmt.Errorf("MIN_ADVANCE must be >= 0")
	}
	if cfg.Payment.MinOrderMinor < 1 {
		return fmt.Errorf("MIN_ORDER_MINOR must be >= 1")
	}
	if strings.TrimSpace(cfg.Payment.Currency) == "" {
		return fmt.Errorf("GATEWAY_CURRENCY must not be empty")
	}
	if cfg.Booking.RescheduleWindow < 0 || cfg.Booking.CancelWindowDays < 0 {
		return fmt.Errorf("booking windows must not be negative")
	}
	if cfg.Booking.ReminderLead <= 0 {
		return fmt.Errorf("REMINDER_LEAD must be > 0")
	}
	if cfg.Media.MaxBytes <= 0 {
		return fmt.Errorf("MEDIA_MAX_BYTES must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.InternalToken, defaultInternalToken) {
			return fmt.Errorf("in prod/release INTERNAL_TOKEN must be set and not default")
		}
		if isEmptyOrDefault(cfg.Payment.KeySecret, defaultGatewaySecret) {
			return fmt.Errorf("in prod/release GATEWAY_KEY_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.Payment.WebhookSecret, defaultWebhookSecret) {
			return fmt.Errorf("in prod/release GATEWAY_WEBHOOK_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
