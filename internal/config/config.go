package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configurations.
type Config struct {
	App struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	RabbitMQ struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"rabbitmq"`
	Redis struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Admin     struct {
		Username string `mapstructure:"username"`
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`
}

// DatabaseConfig selects the GORM driver and connection string.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
}

// RateLimitConfig holds the catalog throttling quotas, in requests per minute.
type RateLimitConfig struct {
	AnonPerMinute int `mapstructure:"anon_per_minute"`
	UserPerMinute int `mapstructure:"user_per_minute"`
}

// Load reads configuration from an optional .env file, an optional
// config.yaml (in . or ./config) and the environment. Environment variables
// use underscores for nesting, e.g. DATABASE_DSN or JWT_SECRET.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// SetDefaults registers a default for every known key. AutomaticEnv only
// binds keys viper already knows about, so every key must appear here.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:littlelemon.db?_foreign_keys=1")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("ratelimit.anon_per_minute", 20)
	v.SetDefault("ratelimit.user_per_minute", 60)
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret must not be empty")
	}
	if cfg.JWT.Secret == "change-me" {
		log.Println("Warning: using the default JWT secret. Set JWT_SECRET in production.")
	}
	if cfg.RateLimit.AnonPerMinute <= 0 || cfg.RateLimit.UserPerMinute <= 0 {
		return nil, errors.New("ratelimit quotas must be positive")
	}
	return &cfg, nil
}
