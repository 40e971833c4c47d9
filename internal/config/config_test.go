package config

import (
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hr", SSLMode: ""},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret", JWTIssuer: "hr", JWTAudience: "hr-clients"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hr", SSLMode: ""},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl default, got %v", c.Auth.TokenTTL)
	}
	if c.Auth.RefreshGrace != 7*24*time.Hour {
		t.Fatalf("expected 7d refresh grace default, got %v", c.Auth.RefreshGrace)
	}
	if c.Auth.LoginRateLimit != 10 {
		t.Fatalf("expected login rate limit default, got %d", c.Auth.LoginRateLimit)
	}
}

func TestValidate_RejectsMissingJWTSecret(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hr"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for missing JWT_SECRET")
	}
}

func TestValidate_CacheTTLMustBeBelowTokenTTL(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hr"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret", TokenTTL: 8 * time.Hour, IdentityCacheTTL: 8 * time.Hour},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for cache ttl >= token ttl")
	}
}

func TestValidate_BootstrapRequiresCredentials(t *testing.T) {
	c := Config{
		App:       AppConfig{Env: "local", Port: 8080},
		DB:        DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hr"},
		Redis:     RedisConfig{Host: "localhost", Port: 6379},
		Auth:      AuthConfig{JWTSecret: "secret"},
		Bootstrap: BootstrapConfig{Enabled: true},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for bootstrap without credentials")
	}
}
