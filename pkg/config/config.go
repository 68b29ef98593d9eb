package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
)

// Data backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds runtime configuration for the API server and the lambdas.
type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	// Production turns on HSTS and the HTTPS redirect.
	Production bool `envconfig:"PRODUCTION" default:"false"`

	DataBackend          string `envconfig:"DATA_BACKEND" default:"dynamodb"`
	MovementsTableName   string `envconfig:"DYNAMODB_MOVEMENTS_TABLE_NAME"`
	UsersTableName       string `envconfig:"DYNAMODB_USERS_TABLE_NAME"`
	ConnectionsTableName string `envconfig:"DYNAMODB_CONNECTIONS_TABLE_NAME"`

	RedisAddr           string        `envconfig:"REDIS_ADDR"`
	RedisPassword       string        `envconfig:"REDIS_PASSWORD"`
	RedisDB             int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	SessionCookieSecure bool          `envconfig:"SESSION_COOKIE_SECURE" default:"true"`

	SQSQueueURL    string        `envconfig:"SQS_QUEUE_URL"`
	ReminderWindow time.Duration `envconfig:"REMINDER_WINDOW" default:"72h"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`
	Timezone     string `envconfig:"TIMEZONE" default:"Local"`

	WebsocketAPIEndpoint string `envconfig:"WEBSOCKET_API_ENDPOINT"`

	RateLimitAuthPerMinute int `envconfig:"RATE_LIMIT_AUTH_PER_MINUTE" default:"10"`
}

// Load reads a .env file if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// RedisOptions returns the client options for RedisAddr.
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// Validate checks the configuration of the API server and returns every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.DataBackend {
	case BackendDynamoDB:
		problems = append(problems, c.requireTables()...)
		if c.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required for the dynamodb backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]", c.DataBackend, BackendDynamoDB, BackendMemory))
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be json or text", c.LogFormat))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if c.ReminderWindow <= 0 {
		problems = append(problems, "REMINDER_WINDOW must be positive")
	}
	if c.RateLimitAuthPerMinute < 1 {
		problems = append(problems, "RATE_LIMIT_AUTH_PER_MINUTE must be at least 1")
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func (c *Config) requireTables() []string {
	var problems []string
	for env, v := range map[string]string{
		"DYNAMODB_MOVEMENTS_TABLE_NAME":   c.MovementsTableName,
		"DYNAMODB_USERS_TABLE_NAME":       c.UsersTableName,
		"DYNAMODB_CONNECTIONS_TABLE_NAME": c.ConnectionsTableName,
	} {
		if v == "" {
			problems = append(problems, env+" is required for the dynamodb backend")
		}
	}
	return problems
}
