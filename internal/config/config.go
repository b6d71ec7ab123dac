package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               int
	LogLevel           string
	NatsURL            string
	NatsToken          string
	SessionTTL         time.Duration
	SessionSweep       time.Duration
	CORSOrigins        []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	MaxBodyBytes       int64
	MinConversationLen int
	GitHubAPIURL       string
}

func Load() Config {
	return Config{
		Port:               envInt("CHAT2REPO_PORT", 3001),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		NatsURL:            envStr("NATS_URL", ""),
		NatsToken:          envStr("NATS_TOKEN", ""),
		SessionTTL:         envDuration("SESSION_TTL", time.Hour),
		SessionSweep:       envDuration("SESSION_SWEEP_INTERVAL", time.Hour),
		CORSOrigins:        envList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RateLimitRequests:  envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:    envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		MaxBodyBytes:       int64(envInt("MAX_BODY_BYTES", 10<<20)),
		MinConversationLen: envInt("MIN_CONVERSATION_LENGTH", 100),
		GitHubAPIURL:       envStr("GITHUB_API_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping empty items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
