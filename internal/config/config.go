package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MemoryDatabaseURL selects the in-process store instead of PostgreSQL
const MemoryDatabaseURL = "memory"

// Config holds runtime settings loaded from the environment
type Config struct {
	DatabaseURL     string
	SecretKey       string
	ServerPort      string
	SessionDuration time.Duration
	CookieSecure    bool
	AdminEmail      string
	AdminPassword   string
	CORSOrigins     []string
	GinMode         string
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL, err := loadDatabaseURL()
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY not set in environment")
	}

	sessionHours := int64(24)
	if v := os.Getenv("SESSION_EXPIRATION_HOURS"); v != "" {
		h, err := strconv.ParseInt(v, 10, 64)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid SESSION_EXPIRATION_HOURS %q", v)
		}
		sessionHours = h
	}

	cfg := &Config{
		DatabaseURL:     dbURL,
		SecretKey:       secret,
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		SessionDuration: time.Duration(sessionHours) * time.Hour,
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@portal.com"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "adminpass"),
		GinMode:         os.Getenv("GIN_MODE"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg, nil
}

// loadDatabaseURL prefers DATABASE_URL and falls back to the DB_* variables
func loadDatabaseURL() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return "", fmt.Errorf("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
