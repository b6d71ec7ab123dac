package config

import (
	"reflect"
	"testing"
	"time"
)

var allKeys = []string{
	"CHAT2REPO_PORT", "LOG_LEVEL", "NATS_URL", "NATS_TOKEN", "SESSION_TTL",
	"SESSION_SWEEP_INTERVAL", "CORS_ORIGINS", "RATE_LIMIT_REQUESTS",
	"RATE_LIMIT_WINDOW", "MAX_BODY_BYTES", "MIN_CONVERSATION_LENGTH", "GITHUB_API_URL",
}

func TestLoad_Defaults(t *testing.T) {
	// Clear any env vars that might be set
	for _, key := range allKeys {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.NatsURL != "" {
		t.Errorf("expected nats disabled by default, got %s", cfg.NatsURL)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected default session ttl 1h, got %s", cfg.SessionTTL)
	}
	if cfg.SessionSweep != time.Hour {
		t.Errorf("expected default sweep interval 1h, got %s", cfg.SessionSweep)
	}
	wantOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.CORSOrigins, wantOrigins) {
		t.Errorf("expected default origins %v, got %v", wantOrigins, cfg.CORSOrigins)
	}
	if cfg.RateLimitRequests != 100 {
		t.Errorf("expected 100 requests per window, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Errorf("expected 15m window, got %s", cfg.RateLimitWindow)
	}
	if cfg.MaxBodyBytes != 10<<20 {
		t.Errorf("expected 10MiB body limit, got %d", cfg.MaxBodyBytes)
	}
	if cfg.MinConversationLen != 100 {
		t.Errorf("expected min conversation length 100, got %d", cfg.MinConversationLen)
	}
	if cfg.GitHubAPIURL != "" {
		t.Errorf("expected empty github api url, got %s", cfg.GitHubAPIURL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("CHAT2REPO_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NATS_URL", "nats://custom:4222")
	t.Setenv("NATS_TOKEN", "s3cr3t-token")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_SWEEP_INTERVAL", "5m")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com,")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("MIN_CONVERSATION_LENGTH", "20")
	t.Setenv("GITHUB_API_URL", "http://localhost:9000")

	cfg := Load()

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
	if cfg.NatsURL != "nats://custom:4222" {
		t.Errorf("expected custom nats url, got %s", cfg.NatsURL)
	}
	if cfg.NatsToken != "s3cr3t-token" {
		t.Errorf("expected custom nats token, got %s", cfg.NatsToken)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %s", cfg.SessionTTL)
	}
	if cfg.SessionSweep != 5*time.Minute {
		t.Errorf("expected 5m sweep, got %s", cfg.SessionSweep)
	}
	wantOrigins := []string{"https://app.example.com", "https://staging.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, wantOrigins) {
		t.Errorf("expected origins %v, got %v", wantOrigins, cfg.CORSOrigins)
	}
	if cfg.RateLimitRequests != 10 {
		t.Errorf("expected 10 requests, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("expected 1m window, got %s", cfg.RateLimitWindow)
	}
	if cfg.MaxBodyBytes != 2048 {
		t.Errorf("expected 2048 body bytes, got %d", cfg.MaxBodyBytes)
	}
	if cfg.MinConversationLen != 20 {
		t.Errorf("expected min length 20, got %d", cfg.MinConversationLen)
	}
	if cfg.GitHubAPIURL != "http://localhost:9000" {
		t.Errorf("expected custom github url, got %s", cfg.GitHubAPIURL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CHAT2REPO_PORT", "notanumber")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("RATE_LIMIT_WINDOW", "-5m")
	t.Setenv("CORS_ORIGINS", " , ")

	cfg := Load()

	if cfg.Port != 3001 {
		t.Errorf("expected default port on invalid value, got %d", cfg.Port)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected default ttl on invalid value, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Errorf("expected default window on negative value, got %s", cfg.RateLimitWindow)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected default origins on blank list, got %v", cfg.CORSOrigins)
	}
}
