// Package config provides runtime configuration values for the service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported product store backends.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds the settings read once at startup.
type Config struct {
	Port        string
	ServiceName string

	StoreBackend   string
	StoreTimeout   time.Duration
	ConnectTimeout time.Duration

	DatabaseURL    string
	PostgresSchema string
	PostgresTable  string

	MongoURL      string
	MongoDatabase string
	MongoTLS      bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "4002")
	v.SetDefault("service_name", "products-api")
	v.SetDefault("store_backend", BackendPostgres)
	v.SetDefault("store_timeout", "3s")
	v.SetDefault("connect_timeout", "5s")
	v.SetDefault("postgres_schema", "products_schema")
	v.SetDefault("postgres_table", "products")
	v.SetDefault("mongo_database", "products")
	v.SetDefault("mongo_tls", false)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "products")
	v.SetDefault("shutdown_timeout", "15s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 10)
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory. Real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if err := v.BindEnv("mongo_url", "MONGO_URL", "COSMOS_MONGO_URL"); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:               v.GetString("port"),
		ServiceName:        v.GetString("service_name"),
		StoreBackend:       strings.ToLower(strings.TrimSpace(v.GetString("store_backend"))),
		StoreTimeout:       v.GetDuration("store_timeout"),
		ConnectTimeout:     v.GetDuration("connect_timeout"),
		DatabaseURL:        v.GetString("database_url"),
		PostgresSchema:     v.GetString("postgres_schema"),
		PostgresTable:      v.GetString("postgres_table"),
		MongoURL:           v.GetString("mongo_url"),
		MongoDatabase:      v.GetString("mongo_database"),
		MongoTLS:           v.GetBool("mongo_tls"),
		RedisAddr:          v.GetString("redis_addr"),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		RedisPrefix:        v.GetString("redis_prefix"),
		ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		RateLimitRPS:       v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:     v.GetInt("rate_limit_burst"),
	}

	return cfg, cfg.Validate()
}

// Validate checks that the selected backend has what it needs to connect.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendMongo:
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required for the mongo backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.StoreTimeout <= 0 || c.ConnectTimeout <= 0 {
		return errors.New("STORE_TIMEOUT and CONNECT_TIMEOUT must be positive")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS cannot be negative")
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Secrets lists configured values that must never show up in responses or logs.
func (c Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.DatabaseURL, c.MongoURL, c.RedisPassword} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
