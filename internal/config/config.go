// Package config carga la configuración del servicio desde .env y variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StorageFile     StorageDriver = "file"
	StoragePostgres StorageDriver = "postgres"
)

type SuggestionsProvider string

const (
	SuggestionsNone   SuggestionsProvider = "none"
	SuggestionsGemini SuggestionsProvider = "gemini"
	SuggestionsRemote SuggestionsProvider = "remote"
)

// Config agrupa toda la configuración de la aplicación.
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
	AppName   string

	StorageDriver StorageDriver
	DBDSN         string
	DataDir       string

	AdminUser     string
	AdminPassword string
	GuestUser     string
	GuestPassword string

	SuggestionsProvider SuggestionsProvider
	GeminiAPIKey        string
	GeminiModel         string
	SuggestionsURL      string
	SuggestionsToken    string
	SuggestionsTimeout  time.Duration

	AuditEvery        time.Duration // 0 = desactivado
	LowStockThreshold int

	RateLimitRPS   float64
	RateLimitBurst int64
	CORSOrigins    []string
}

// Load lee .env (si existe) y valida. El entorno del proceso tiene prioridad sobre .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv construye la config solo desde el entorno actual.
func FromEnv() (*Config, error) {
	var errs []error

	suggestionsTimeout, err := getDurationEnv("SUGGESTIONS_TIMEOUT", 30*time.Second)
	errs = append(errs, err)
	auditEvery, err := getDurationEnv("AUDIT_EVERY", 15*time.Minute)
	errs = append(errs, err)
	lowStock, err := getIntEnv("LOW_STOCK_THRESHOLD", 5)
	errs = append(errs, err)
	rps, err := getFloatEnv("RATE_LIMIT_RPS", 10)
	errs = append(errs, err)
	burst, err := getIntEnv("RATE_LIMIT_BURST", 50)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("configuration parse failed: %w", err)
	}

	cfg := &Config{
		Port:      getEnvWithDefault("PORT", "8080"),
		Env:       strings.ToLower(getEnvWithDefault("ENV", "dev")),
		LogLevel:  strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnvWithDefault("LOG_FORMAT", "text")),
		AppName:   getEnvWithDefault("APP_NAME", "medistock"),

		StorageDriver: StorageDriver(strings.ToLower(getEnvWithDefault("STORAGE_DRIVER", string(StorageMemory)))),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		DataDir:       getEnvWithDefault("DATA_DIR", "data"),

		AdminUser:     getEnvWithDefault("ADMIN_USER", "aranza"),
		AdminPassword: getEnvWithDefault("ADMIN_PASSWORD", "aranza1"),
		GuestUser:     getEnvWithDefault("GUEST_USER", "invitado"),
		GuestPassword: getEnvWithDefault("GUEST_PASSWORD", "invitado"),

		SuggestionsProvider: SuggestionsProvider(strings.ToLower(getEnvWithDefault("SUGGESTIONS_PROVIDER", string(SuggestionsNone)))),
		GeminiAPIKey:        strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:         getEnvWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		SuggestionsURL:      strings.TrimSpace(os.Getenv("SUGGESTIONS_URL")),
		SuggestionsToken:    strings.TrimSpace(os.Getenv("SUGGESTIONS_TOKEN")),
		SuggestionsTimeout:  suggestionsTimeout,

		AuditEvery:        auditEvery,
		LowStockThreshold: lowStock,

		RateLimitRPS:   rps,
		RateLimitBurst: int64(burst),
		CORSOrigins:    splitList(getEnvWithDefault("CORS_ORIGINS", "*")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Addr devuelve la dirección de escucha para http.Server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := oneOf(cfg.Env, "dev", "staging", "prod", "test"); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}
	if err := oneOf(cfg.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := oneOf(cfg.LogFormat, "text", "json"); err != nil {
		return fmt.Errorf("invalid LOG_FORMAT: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StorageFile:
		if strings.TrimSpace(cfg.DataDir) == "" {
			return fmt.Errorf("invalid DATA_DIR: required when STORAGE_DRIVER=file")
		}
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return fmt.Errorf("invalid DB_DSN: required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER: must be memory, file or postgres, got: %s", cfg.StorageDriver)
	}

	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("invalid ADMIN_USER/ADMIN_PASSWORD: cannot be empty")
	}
	if strings.EqualFold(cfg.AdminUser, cfg.GuestUser) {
		return fmt.Errorf("invalid GUEST_USER: must differ from ADMIN_USER")
	}

	switch cfg.SuggestionsProvider {
	case SuggestionsNone:
	case SuggestionsGemini:
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("invalid GEMINI_API_KEY: required when SUGGESTIONS_PROVIDER=gemini")
		}
	case SuggestionsRemote:
		if cfg.SuggestionsURL == "" {
			return fmt.Errorf("invalid SUGGESTIONS_URL: required when SUGGESTIONS_PROVIDER=remote")
		}
	default:
		return fmt.Errorf("invalid SUGGESTIONS_PROVIDER: must be none, gemini or remote, got: %s", cfg.SuggestionsProvider)
	}

	if cfg.AuditEvery < 0 {
		return fmt.Errorf("invalid AUDIT_EVERY: cannot be negative")
	}
	if cfg.LowStockThreshold < 0 {
		return fmt.Errorf("invalid LOW_STOCK_THRESHOLD: cannot be negative")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_RPS/RATE_LIMIT_BURST: must be positive")
	}
	return nil
}

func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

func oneOf(v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %v, got: %s", allowed, v)
}

func getEnvWithDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloatEnv(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 15m): %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
