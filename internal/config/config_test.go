package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "SERVICE_NAME", "STORE_BACKEND", "STORE_TIMEOUT", "CONNECT_TIMEOUT",
		"DATABASE_URL", "POSTGRES_SCHEMA", "POSTGRES_TABLE", "MONGO_URL", "COSMOS_MONGO_URL",
		"MONGO_DATABASE", "MONGO_TLS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX",
		"SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/products")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Port != "4002" || c.Addr() != ":4002" {
		t.Fatalf("port default, got %q", c.Port)
	}
	if c.ServiceName != "products-api" {
		t.Fatalf("service name default, got %q", c.ServiceName)
	}
	if c.StoreBackend != BackendPostgres {
		t.Fatalf("backend default, got %q", c.StoreBackend)
	}
	if c.StoreTimeout != 3*time.Second || c.ConnectTimeout != 5*time.Second {
		t.Fatalf("timeouts default, got %v / %v", c.StoreTimeout, c.ConnectTimeout)
	}
	if c.PostgresSchema != "products_schema" || c.PostgresTable != "products" {
		t.Fatalf("table default, got %s.%s", c.PostgresSchema, c.PostgresTable)
	}
	if len(c.CORSAllowedOrigins) != 1 || c.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("cors default, got %v", c.CORSAllowedOrigins)
	}
	if c.RateLimitRPS != 0 || c.RateLimitBurst != 10 {
		t.Fatalf("rate limit default, got %v/%d", c.RateLimitRPS, c.RateLimitBurst)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("COSMOS_MONGO_URL", "mongodb://cosmos:10255")
	t.Setenv("MONGO_TLS", "true")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Port != "9000" {
		t.Fatalf("port override, got %q", c.Port)
	}
	if c.StoreBackend != BackendMongo {
		t.Fatalf("backend override, got %q", c.StoreBackend)
	}
	if c.MongoURL != "mongodb://cosmos:10255" || !c.MongoTLS {
		t.Fatalf("mongo settings, got %q tls=%v", c.MongoURL, c.MongoTLS)
	}
	if c.StoreTimeout != 750*time.Millisecond {
		t.Fatalf("store timeout override, got %v", c.StoreTimeout)
	}
	if len(c.CORSAllowedOrigins) != 2 || c.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("cors override, got %v", c.CORSAllowedOrigins)
	}
	if c.RateLimitRPS != 2.5 {
		t.Fatalf("rate limit override, got %v", c.RateLimitRPS)
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreTimeout: time.Second, ConnectTimeout: time.Second, RedisAddr: "localhost:6379"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"memory needs nothing", func(c *Config) { c.StoreBackend = BackendMemory }, false},
		{"postgres without url", func(c *Config) { c.StoreBackend = BackendPostgres }, true},
		{"postgres with url", func(c *Config) { c.StoreBackend = BackendPostgres; c.DatabaseURL = "postgres://x" }, false},
		{"mongo without url", func(c *Config) { c.StoreBackend = BackendMongo }, true},
		{"redis", func(c *Config) { c.StoreBackend = BackendRedis }, false},
		{"unknown backend", func(c *Config) { c.StoreBackend = "cassandra" }, true},
		{"zero timeout", func(c *Config) { c.StoreBackend = BackendMemory; c.StoreTimeout = 0 }, true},
		{"negative rate", func(c *Config) { c.StoreBackend = BackendMemory; c.RateLimitRPS = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSecrets(t *testing.T) {
	c := Config{DatabaseURL: "postgres://u:pw@h/db", RedisPassword: "hunter2"}
	got := c.Secrets()
	if len(got) != 2 || got[0] != c.DatabaseURL || got[1] != "hunter2" {
		t.Fatalf("unexpected secrets %v", got)
	}
}
