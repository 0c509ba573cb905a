package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr = ":8080"
	defaultDBPath     = "erandi.db"
	defaultModel      = "gemini-2.5-flash"
	defaultFastModel  = "gemini-2.5-flash-lite"
	defaultRunTimeout = 10 * time.Minute

	envListenAddr = "ERANDI_LISTEN_ADDR"
	envDBPath     = "ERANDI_DB_PATH"
	envLogLevel   = "ERANDI_LOG_LEVEL"
	envAPIKey     = "GEMINI_API_KEY"
	envModel      = "ERANDI_MODEL"
	envFastModel  = "ERANDI_FAST_MODEL"
	envRunTimeout = "ERANDI_RUN_TIMEOUT_S"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
	LogLevel   slog.Level

	// GeminiAPIKey authenticates the agent LLM client. When empty the
	// server still starts; agent calls fail and surface as fallback results
	// on the stage endpoints.
	GeminiAPIKey string

	// Model is used by the reasoning-heavy agents (knowledge graph, design,
	// refinement); FastModel by profiling and standards alignment.
	Model     string
	FastModel string

	// RunTimeout bounds a single authoring-run segment between interrupts.
	RunTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		ListenAddr: defaultListenAddr,
		DBPath:     defaultDBPath,
		LogLevel:   slog.LevelInfo,
		Model:      defaultModel,
		FastModel:  defaultFastModel,
		RunTimeout: defaultRunTimeout,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	cfg.GeminiAPIKey = os.Getenv(envAPIKey)
	if v := os.Getenv(envModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(envFastModel); v != "" {
		cfg.FastModel = v
	}
	if v := os.Getenv(envRunTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RunTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
