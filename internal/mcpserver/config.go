package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/jfather/internal/httputil"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings for retrieved reference documents.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheURLTTL        time.Duration
	CacheSweepInterval time.Duration

	// Resolution limits.
	MaxDepth        int
	MaxDocumentSize int64
	MaxInlineSize   int64
	FetchTimeout    time.Duration

	// Retrieval policy.
	AllowPrivateIPs bool
	AllowLocalRefs  bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from JFATHER_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("JFATHER_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("JFATHER_CACHE_MAX_SIZE", 50),
		CacheURLTTL:        envDuration("JFATHER_CACHE_URL_TTL", 5*time.Minute),
		CacheSweepInterval: envDuration("JFATHER_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxDepth:           envInt("JFATHER_MAX_DEPTH", 32),
		MaxDocumentSize:    envInt64("JFATHER_MAX_DOCUMENT_SIZE", httputil.DefaultMaxDocumentSize),
		MaxInlineSize:      envInt64("JFATHER_MAX_INLINE_SIZE", httputil.DefaultMaxDocumentSize),
		FetchTimeout:       envDuration("JFATHER_FETCH_TIMEOUT", httputil.DefaultTimeout),
		AllowPrivateIPs:    envBool("JFATHER_ALLOW_PRIVATE_HOSTS", false),
		AllowLocalRefs:     envBool("JFATHER_ALLOW_LOCAL_REFS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
