package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// CronParser accepts six-field specs with a leading seconds field.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Cache     CacheConfig     `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"SERVER_PORT"`
	Host            string        `mapstructure:"SERVER_HOST"`
	Env             string        `mapstructure:"ENV"`
	ReadTimeout     time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	Host            string        `mapstructure:"DATABASE_HOST"`
	Port            string        `mapstructure:"DATABASE_PORT"`
	Name            string        `mapstructure:"DATABASE_NAME"`
	User            string        `mapstructure:"DATABASE_USER"`
	Password        string        `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string        `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	LatePaymentSpec string `mapstructure:"SCHEDULER_LATE_PAYMENT_SPEC"`
	Timezone        string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	DefaultInterestRate string `mapstructure:"DEFAULT_INTEREST_RATE"`
	DefaultTermMonths   int    `mapstructure:"DEFAULT_TERM_MONTHS"`
}

type CacheConfig struct {
	SaleTTL time.Duration `mapstructure:"CACHE_SALE_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":             "8080",
	"SERVER_HOST":             "0.0.0.0",
	"ENV":                     "development",
	"SERVER_READ_TIMEOUT":     "15s",
	"SERVER_WRITE_TIMEOUT":    "15s",
	"SERVER_SHUTDOWN_TIMEOUT": "30s",

	"DATABASE_URL":               "",
	"DATABASE_HOST":              "localhost",
	"DATABASE_PORT":              "5432",
	"DATABASE_NAME":              "landsale",
	"DATABASE_USER":              "postgres",
	"DATABASE_PASSWORD":          "",
	"DATABASE_SSLMODE":           "disable",
	"DATABASE_MAX_OPEN_CONNS":    25,
	"DATABASE_MAX_IDLE_CONNS":    5,
	"DATABASE_CONN_MAX_LIFETIME": "5m",

	"REDIS_URL":      "",
	"REDIS_HOST":     "localhost",
	"REDIS_PORT":     "6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"SCHEDULER_LATE_PAYMENT_SPEC": "0 0 0 * * *",
	"SCHEDULER_TIMEZONE":          "UTC",

	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "json",

	"DEFAULT_INTEREST_RATE": "9.9",
	"DEFAULT_TERM_MONTHS":   60,

	"CACHE_SALE_TTL": "10m",

	"HEALTH_CHECK_TIMEOUT": "5s",
}

// envFiles are loaded into the process environment when present.
var envFiles = []string{".env", "deployments/.env"}

// Load reads configuration from environment variables and optional .env files
func Load() (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("unable to load %s: %w", f, err)
			}
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Business.DefaultTermMonths <= 0 {
		return fmt.Errorf("DEFAULT_TERM_MONTHS must be greater than 0")
	}

	rate, err := decimal.NewFromString(c.Business.DefaultInterestRate)
	if err != nil {
		return fmt.Errorf("DEFAULT_INTEREST_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("DEFAULT_INTEREST_RATE must not be negative")
	}

	if _, err := CronParser.Parse(c.Scheduler.LatePaymentSpec); err != nil {
		return fmt.Errorf("SCHEDULER_LATE_PAYMENT_SPEC must be a valid cron spec: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	if c.Cache.SaleTTL <= 0 {
		return fmt.Errorf("CACHE_SALE_TTL must be greater than 0")
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns host:port for the redis client
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDefaultInterestRate returns the default annual interest rate in percent
func (c *Config) GetDefaultInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DefaultInterestRate)
	return rate
}

// GetSchedulerLocation returns the timezone cron jobs run in
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
