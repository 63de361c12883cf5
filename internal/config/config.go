package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SettingsPath          string
	NBGURL                string
	RicoURL               string
	FrankfurterURL        string
	FetchTimeout          time.Duration
	FetchCacheTTL         time.Duration
	FetchMinInterval      time.Duration
	FetchBurst            int
	HTTPPort              string
	GoogleCredentialsJSON string
	SpreadsheetID         string
	LogLevel              slog.Level
}

// LoadDotEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "path", f, "error", err)
		}
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		SettingsPath:          envOrDefault("SETTINGS_PATH", defaultSettingsPath()),
		NBGURL:                envOrDefault("NBG_URL", "https://nbg.gov.ge/gw/api/ct/monetarypolicy/currencies/en/json"),
		RicoURL:               envOrDefault("RICO_URL", "https://rico.ge/?lang=en"),
		FrankfurterURL:        strings.TrimRight(envOrDefault("FRANKFURTER_URL", "https://api.frankfurter.dev/v1"), "/"),
		FetchTimeout:          envOrDefaultDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchCacheTTL:         envOrDefaultDuration("FETCH_CACHE_TTL", 5*time.Minute),
		FetchMinInterval:      envOrDefaultDuration("FETCH_MIN_INTERVAL", 10*time.Second),
		FetchBurst:            envOrDefaultInt("FETCH_BURST", 1),
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		GoogleCredentialsJSON: envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
		SpreadsheetID:         envOrDefault("SPREADSHEET_ID", ""),
		LogLevel:              envOrDefaultLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// SheetsEnabled reports whether Google Sheets export is configured.
func (c Config) SheetsEnabled() bool {
	return c.GoogleCredentialsJSON != "" && c.SpreadsheetID != ""
}

// defaultSettingsPath places settings.json next to the executable, falling
// back to the working directory.
func defaultSettingsPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(filepath.Dir(exe), "settings.json")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultLevel(key string, defaultVal slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return l
	}
	return defaultVal
}
