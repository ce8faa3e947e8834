package config

import (
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		JWT:      JWTConfig{Secret: "test-secret"},
		Database: DatabaseConfig{Host: "localhost", Port: 27017, Name: "streamlens_test"},
		Analytics: AnalyticsConfig{
			DefaultLimit:   100,
			MaxLimit:       1000,
			PublicCacheTTL: time.Minute,
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := testConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without JWT secret")
	}
}

func TestValidate_MissingDatabaseName(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Name = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without database name")
	}
}

func TestValidate_AnalyticsLimits(t *testing.T) {
	cfg := testConfig()
	cfg.Analytics.MaxLimit = 50
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when max_limit < default_limit")
	}
}

func TestMongoURI(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: 27017, Name: "streamlens"}
	want := "mongodb://db:27017/streamlens"
	if got := c.MongoURI(); got != want {
		t.Errorf("MongoURI() = %q, want %q", got, want)
	}
}

func TestMongoURI_WithCredentialsAndOptions(t *testing.T) {
	c := &DatabaseConfig{
		Host: "db", Port: 27017, Name: "streamlens",
		User: "app", Password: "pw",
		AuthSource: "admin", ReplicaSet: "rs0",
	}
	want := "mongodb://app:pw@db:27017/streamlens?authSource=admin&replicaSet=rs0"
	if got := c.MongoURI(); got != want {
		t.Errorf("MongoURI() = %q, want %q", got, want)
	}
}

func TestRedisAddr(t *testing.T) {
	c := &RedisConfig{Host: "cache", Port: 6379}
	if got := c.Addr(); got != "cache:6379" {
		t.Errorf("Addr() = %q, want cache:6379", got)
	}
}
