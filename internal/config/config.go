package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string     `envconfig:"APP_NAME" default:"Pocket"`
		Port     int        `envconfig:"PORT" default:"8080"`
		LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pocket"`
		MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	// Auth.JWTSecret switches authentication from the gateway's X-Owner-ID
	// header to HS256 bearer tokens.
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	Scheduler struct {
		Enabled          bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
		PollInterval     time.Duration `envconfig:"SCHEDULER_POLL_INTERVAL" default:"30s"`
		MisfireThreshold time.Duration `envconfig:"SCHEDULER_MISFIRE_THRESHOLD" default:"1m"`
		BatchSize        int           `envconfig:"SCHEDULER_BATCH_SIZE" default:"50"`
	}

	// AMQP carries device notifications to the push gateway. An empty URL
	// disables publishing and notifications are only logged.
	AMQP struct {
		URL      string `envconfig:"AMQP_URL"`
		Exchange string `envconfig:"AMQP_EXCHANGE" default:"pocket"`
		Queue    string `envconfig:"AMQP_QUEUE" default:"device_notifications"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) validate() error {
	if c.Scheduler.PollInterval <= 0 {
		return fmt.Errorf("SCHEDULER_POLL_INTERVAL must be positive, got %s", c.Scheduler.PollInterval)
	}

	if c.Scheduler.MisfireThreshold < 0 {
		return fmt.Errorf("SCHEDULER_MISFIRE_THRESHOLD must not be negative, got %s", c.Scheduler.MisfireThreshold)
	}

	if c.Scheduler.MisfireThreshold < c.Scheduler.PollInterval {
		return fmt.Errorf("SCHEDULER_MISFIRE_THRESHOLD (%s) must not be below SCHEDULER_POLL_INTERVAL (%s)",
			c.Scheduler.MisfireThreshold, c.Scheduler.PollInterval)
	}

	if c.Scheduler.BatchSize <= 0 {
		return fmt.Errorf("SCHEDULER_BATCH_SIZE must be positive, got %d", c.Scheduler.BatchSize)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
