package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/niltaduartte/humano-saude-sub001/internal/storage"
)

const (
	defaultPort           = "8000"
	defaultCatalogTimeout = 3 * time.Second
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Config is read once at startup from the environment.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	DatabaseURL         string
	CatalogSnapshotFile string
	CatalogSnapshotKey  string
	CatalogTimeout      time.Duration
	QuoteTablesFile     string

	R2          storage.R2Config
	CORSOrigins []string
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// Load reads .env outside production, then the process environment.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Port:                getenv("PORT", defaultPort),
		AppEnv:              getenv("APP_ENV", "development"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CatalogSnapshotFile: os.Getenv("CATALOG_SNAPSHOT_FILE"),
		CatalogSnapshotKey:  os.Getenv("CATALOG_SNAPSHOT_KEY"),
		QuoteTablesFile:     os.Getenv("QUOTE_TABLES_FILE"),
		CatalogTimeout:      defaultCatalogTimeout,
		CORSOrigins:         defaultCORSOrigins,
		R2: storage.R2Config{
			Endpoint:  os.Getenv("R2_ENDPOINT"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			Bucket:    os.Getenv("R2_BUCKET_NAME"),
		},
	}

	if raw := os.Getenv("CATALOG_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			// bare numbers are milliseconds
			ms, convErr := strconv.Atoi(raw)
			if convErr != nil {
				return Config{}, fmt.Errorf("invalid CATALOG_TIMEOUT %q: %w", raw, err)
			}
			d = time.Duration(ms) * time.Millisecond
		}
		cfg.CatalogTimeout = d
	}

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate requires exactly enough to build one catalog source.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.CatalogTimeout <= 0 {
		return errors.New("CATALOG_TIMEOUT must be positive")
	}
	if c.CatalogSnapshotKey != "" && !c.R2.Enabled() {
		return errors.New("CATALOG_SNAPSHOT_KEY needs R2_ENDPOINT and R2_BUCKET_NAME")
	}
	if c.DatabaseURL == "" && c.CatalogSnapshotKey == "" && c.CatalogSnapshotFile == "" {
		return errors.New("one of DATABASE_URL, CATALOG_SNAPSHOT_KEY or CATALOG_SNAPSHOT_FILE is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
