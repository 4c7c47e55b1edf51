package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service.
type Config struct {
	AppPort  string
	LogLevel string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret    string
	TokenTTL     time.Duration
	SessionTTL   time.Duration
	CookieSecure bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL    string
	EventsExchange string

	GithubClientID     string
	GithubClientSecret string
	GithubCallbackURL  string

	UploadBackend  string
	UploadDir      string
	UploadMaxBytes int64
	S3Bucket       string
	S3Region       string
	S3PublicBase   string
}

// GithubConfigured reports whether OAuth login can be offered.
func (c *Config) GithubConfigured() bool {
	return c.GithubClientID != "" && c.GithubClientSecret != ""
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=showcase port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "showcase.events")
	v.SetDefault("GITHUB_CLIENT_ID", "")
	v.SetDefault("GITHUB_CLIENT_SECRET", "")
	v.SetDefault("GITHUB_CALLBACK_URL", "http://localhost:5000/api/auth/github/callback")
	v.SetDefault("UPLOAD_BACKEND", "local")
	v.SetDefault("UPLOAD_DIR", "public/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 50*1024*1024)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PUBLIC_BASE_URL", "")
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and checks a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:            v.GetString("APP_PORT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		DatabaseDriver:     v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		TokenTTL:           v.GetDuration("TOKEN_TTL"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		EventsExchange:     v.GetString("EVENTS_EXCHANGE"),
		GithubClientID:     v.GetString("GITHUB_CLIENT_ID"),
		GithubClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),
		GithubCallbackURL:  v.GetString("GITHUB_CALLBACK_URL"),
		UploadBackend:      v.GetString("UPLOAD_BACKEND"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		UploadMaxBytes:     v.GetInt64("UPLOAD_MAX_BYTES"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Region:           v.GetString("S3_REGION"),
		S3PublicBase:       v.GetString("S3_PUBLIC_BASE_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	switch cfg.UploadBackend {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" || cfg.S3PublicBase == "" {
			return nil, fmt.Errorf("UPLOAD_BACKEND=s3 requires S3_BUCKET and S3_PUBLIC_BASE_URL")
		}
	default:
		return nil, fmt.Errorf("unsupported UPLOAD_BACKEND %q", cfg.UploadBackend)
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}
