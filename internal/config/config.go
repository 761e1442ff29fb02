// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store backends selectable with SYNTHPANEL_TOKEN_STORE.
const (
	TokenStoreSQLite = "sqlite"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	APIURL        string
	TokenStore    string
	RedisAddr     string
	RedisPassword string
	TokenTTL      time.Duration
	CookieSecure  bool
	LogLevel      slog.Level

	// TrustClientHeader lets JSON API callers name their client with the
	// X-Client-ID header. Only enable behind a gateway that sets it.
	TrustClientHeader bool

	// SecretKey is the 32-byte AES-256 key decoded from SYNTHPANEL_SECRET_KEY.
	// nil when the variable is absent.
	SecretKey []byte
}

// HasSecretKey reports whether an encryption key was configured. Used by the
// composition root to decide whether the SQLite token store can be used.
func (c *Config) HasSecretKey() bool {
	return len(c.SecretKey) == 32
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. The path comes from
// SYNTHPANEL_ENV_FILE and defaults to ".env". A missing file is not an error.
func LoadDotEnv() error {
	path := ".env"
	if v, ok := os.LookupEnv("SYNTHPANEL_ENV_FILE"); ok && v != "" {
		path = v
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: SYNTHPANEL_LISTEN_ADDR (127.0.0.1:8080),
// SYNTHPANEL_DB_PATH (synthpanel.db), SYNTHPANEL_API_URL (http://127.0.0.1:8000),
// SYNTHPANEL_TOKEN_STORE (sqlite), SYNTHPANEL_REDIS_ADDR (127.0.0.1:6379),
// SYNTHPANEL_TOKEN_TTL (0, no expiry), SYNTHPANEL_COOKIE_SECURE (false),
// SYNTHPANEL_LOG_LEVEL (info), SYNTHPANEL_TRUST_CLIENT_HEADER (false).
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:    envOr("SYNTHPANEL_LISTEN_ADDR", "127.0.0.1:8080"),
		DBPath:        envOr("SYNTHPANEL_DB_PATH", "synthpanel.db"),
		APIURL:        envOr("SYNTHPANEL_API_URL", "http://127.0.0.1:8000"),
		TokenStore:    strings.ToLower(envOr("SYNTHPANEL_TOKEN_STORE", TokenStoreSQLite)),
		RedisAddr:     envOr("SYNTHPANEL_REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("SYNTHPANEL_REDIS_PASSWORD"),
		LogLevel:      slog.LevelInfo,
	}

	if u, err := url.Parse(cfg.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("SYNTHPANEL_API_URL must be an absolute http(s) URL, got %q", cfg.APIURL)
	}

	switch cfg.TokenStore {
	case TokenStoreSQLite, TokenStoreRedis, TokenStoreMemory:
	default:
		return nil, fmt.Errorf("SYNTHPANEL_TOKEN_STORE must be one of sqlite, redis, memory, got %q", cfg.TokenStore)
	}

	if v, ok := os.LookupEnv("SYNTHPANEL_TOKEN_TTL"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SYNTHPANEL_TOKEN_TTL has invalid duration %q: %w", v, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("SYNTHPANEL_TOKEN_TTL must not be negative, got %s", parsed)
		}
		cfg.TokenTTL = parsed
	}

	if v, ok := os.LookupEnv("SYNTHPANEL_COOKIE_SECURE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SYNTHPANEL_COOKIE_SECURE has invalid bool %q: %w", v, err)
		}
		cfg.CookieSecure = parsed
	}

	if v, ok := os.LookupEnv("SYNTHPANEL_TRUST_CLIENT_HEADER"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SYNTHPANEL_TRUST_CLIENT_HEADER has invalid bool %q: %w", v, err)
		}
		cfg.TrustClientHeader = parsed
	}

	if v, ok := os.LookupEnv("SYNTHPANEL_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("SYNTHPANEL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	if v, ok := os.LookupEnv("SYNTHPANEL_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("SYNTHPANEL_SECRET_KEY must be hex encoded: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("SYNTHPANEL_SECRET_KEY must decode to 32 bytes, got %d", len(key))
		}
		cfg.SecretKey = key
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
