package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/applyhub/applyhub/internal/types"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	Database DatabaseConfig

	JWTSecret      string
	SessionTTL     time.Duration
	CookieDomain   string
	CookieSecure   bool
	AllowedOrigins []string

	Mail MailConfig

	RedisURL        string
	ApplyRateLimit  int
	ApplyRateWindow time.Duration
	DraftTTL        time.Duration

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MailConfig struct {
	Service     string
	Host        string
	Port        int
	Address     string
	Password    string
	CC          string
	Timeout     time.Duration
	MaxAttempts int
}

// Load reads the runtime configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "3000"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getInt("DB_PORT", 0),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", ""),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SessionTTL:     getDuration("SESSION_TTL", 7*24*time.Hour),
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:   getBool("COOKIE_SECURE", true),
		AllowedOrigins: allowedOrigins(),
		Mail: MailConfig{
			Service:     getEnv("EMAIL_SERVICE", ""),
			Host:        getEnv("EMAIL_HOST", ""),
			Port:        getInt("EMAIL_PORT", 0),
			Address:     getEnv("EMAIL_ADDRESS", ""),
			Password:    getEnv("EMAIL_PASSWORD", ""),
			CC:          getEnv("CC_EMAIL_ADDRESS", ""),
			Timeout:     getDuration("EMAIL_TIMEOUT", 15*time.Second),
			MaxAttempts: getInt("EMAIL_SEND_ATTEMPTS", 2),
		},
		RedisURL:        getEnv("REDIS_URL", ""),
		ApplyRateLimit:  getInt("APPLY_RATE_LIMIT", 5),
		ApplyRateWindow: getDuration("APPLY_RATE_WINDOW", time.Minute),
		DraftTTL:        getDuration("DRAFT_TTL", 7*24*time.Hour),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		AdminName:       getEnv("ADMIN_NAME", "Administrator"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.Database.URL == "" && cfg.Database.Name == "" {
		return Config{}, errors.New("DATABASE_URL or DB_NAME is required")
	}
	if cfg.Mail.MaxAttempts < 1 {
		cfg.Mail.MaxAttempts = 1
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings; used by the admin CLI,
// which has no need for session or mail configuration.
func LoadDatabase() (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		URL:             getEnv("DATABASE_URL", ""),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getInt("DB_PORT", 0),
		User:            getEnv("DB_USER", ""),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", ""),
		MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 5),
		MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
	if cfg.URL == "" && cfg.Name == "" {
		return DatabaseConfig{}, errors.New("DATABASE_URL or DB_NAME is required")
	}
	return cfg, nil
}

func allowedOrigins() []string {
	origins := make([]string, len(types.DefaultAllowedOrigins))
	copy(origins, types.DefaultAllowedOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
