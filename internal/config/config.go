// Package config loads service settings from a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all runtime settings for the booking service.
type Config struct {
	Port            string
	Environment     string
	Storage         string
	DisplayTimezone string
	SeedSampleData  bool
	DB              DBConfig

	// EnvFileLoaded reports whether a .env file was found; main logs it once
	// the logger exists.
	EnvFileLoaded bool
}

// DBConfig holds PostgreSQL connection settings. DSN, when set, wins over
// the discrete fields.
type DBConfig struct {
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ConnString builds a libpq-compatible connection string.
func (c DBConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load reads .env (if present) and then the process environment, falling
// back to local-development defaults.
func Load() (*Config, error) {
	loaded := godotenv.Load(".env") == nil

	seed, err := getBool("SEED_SAMPLE_CLASSES", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENV", "development"),
		Storage:         getEnv("STORAGE", StoragePostgres),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Asia/Kolkata"),
		SeedSampleData:  seed,
		EnvFileLoaded:   loaded,
		DB: DBConfig{
			DSN:      os.Getenv("DB_DSN"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fitness"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
