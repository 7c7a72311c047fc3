package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	AITimeout     time.Duration

	ScanDuration   time.Duration
	SubmitDuration time.Duration
	VoteLocation   string
	SessionTTL     time.Duration

	LogLevel string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("uchaguzi-block", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Assistant (key: prefer env, but allow CLI for dev)
	fs.StringVar(&cfg.GeminiAPIKey, "gemini-key", "", "Gemini API key (prefer env)")
	fs.StringVar(&cfg.GeminiModel, "gemini-model", "", "Gemini model name")
	fs.StringVar(&cfg.GeminiBaseURL, "gemini-url", "", "Gemini API base URL")
	fs.DurationVar(&cfg.AITimeout, "ai-timeout", 0, "Assistant request timeout")

	// Simulation
	fs.DurationVar(&cfg.ScanDuration, "scan", 0, "Simulated biometric scan duration")
	fs.DurationVar(&cfg.SubmitDuration, "submit", 0, "Simulated ledger write duration")
	fs.StringVar(&cfg.VoteLocation, "location", "", "Location label printed on receipts")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle session expiry")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("DATABASE_TYPE must be sqlite or postgres, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = ":memory:"
	}

	// A missing key is allowed: the assistant runs in offline demo mode
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("API_KEY")
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = envOr("GEMINI_MODEL", "gemini-2.5-flash")
	}
	if cfg.GeminiBaseURL == "" {
		cfg.GeminiBaseURL = envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	}
	if cfg.VoteLocation == "" {
		cfg.VoteLocation = envOr("VOTE_LOCATION", "Nairobi - Embakasi East (Virtual)")
	}

	var err error
	if cfg.AITimeout, err = durationOr(cfg.AITimeout, "AI_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ScanDuration, err = durationOr(cfg.ScanDuration, "SCAN_DURATION", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SubmitDuration, err = durationOr(cfg.SubmitDuration, "SUBMIT_DURATION", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationOr(cfg.SessionTTL, "SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseLogLevel maps a level name onto slog
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(current time.Duration, key string, def time.Duration) (time.Duration, error) {
	if current > 0 {
		return current, nil
	}
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid %s env variable", key)
		}
		return d, nil
	}
	return def, nil
}
