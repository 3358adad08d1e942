// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir     string // Base directory for databases and the snapshot cache (always absolute)
	CatalogDir  string // Directory of fit documents (YAML), defaults to <DataDir>/catalog
	MissionsDir string // Directory of mission knowledge base documents, defaults to <DataDir>/missions
	LogLevel    string
	Port        int
	DevMode     bool

	// ReloadSchedule is a cron expression for the periodic catalog reload
	// job. Empty disables the job; reloads stay available via the API.
	ReloadSchedule string

	// PriceStalenessWindow controls when the staleness sweep flags a
	// valuation as stale. Inspection only, never enforced on selection.
	PriceStalenessWindow time.Duration

	// SnapshotCache toggles the msgpack warm-start cache for the catalog.
	SnapshotCache bool

	// ThresholdsFile optionally overrides the mission intensity floors.
	// The shipped defaults are calibration constants, not hard truth.
	ThresholdsFile string

	Remote *RemoteCatalogConfig
}

// RemoteCatalogConfig holds the optional R2/S3 catalog sync settings.
// When enabled, curated fit documents are pulled from the bucket into
// CatalogDir before every load.
type RemoteCatalogConfig struct {
	Enabled   bool
	Endpoint  string // S3-compatible endpoint, e.g. https://<account>.r2.cloudflarestorage.com
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	Region    string // R2 uses "auto"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("QM_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		CatalogDir:           getEnv("QM_CATALOG_DIR", filepath.Join(absDataDir, "catalog")),
		MissionsDir:          getEnv("QM_MISSIONS_DIR", filepath.Join(absDataDir, "missions")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Port:                 getEnvAsInt("QM_PORT", 8010),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		ReloadSchedule:       getEnv("QM_RELOAD_SCHEDULE", "0 0 */6 * * *"), // every 6 hours
		PriceStalenessWindow: getEnvAsDuration("QM_PRICE_STALENESS_WINDOW", 24*time.Hour),
		SnapshotCache:        getEnvAsBool("QM_SNAPSHOT_CACHE", true),
		ThresholdsFile:       getEnv("QM_THRESHOLDS_FILE", ""),
		Remote:               loadRemoteCatalogConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadRemoteCatalogConfig reads the optional R2 sync settings.
func loadRemoteCatalogConfig() *RemoteCatalogConfig {
	if !getEnvAsBool("QM_R2_ENABLED", false) {
		return nil
	}
	return &RemoteCatalogConfig{
		Enabled:   true,
		Endpoint:  getEnv("QM_R2_ENDPOINT", ""),
		Bucket:    getEnv("QM_R2_BUCKET", ""),
		Prefix:    getEnv("QM_R2_PREFIX", "catalog/"),
		AccessKey: getEnv("QM_R2_ACCESS_KEY", ""),
		SecretKey: getEnv("QM_R2_SECRET_KEY", ""),
		Region:    getEnv("QM_R2_REGION", "auto"),
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.PriceStalenessWindow <= 0 {
		return fmt.Errorf("price staleness window must be positive, got %s", c.PriceStalenessWindow)
	}
	if c.Remote != nil && c.Remote.Enabled {
		if c.Remote.Endpoint == "" || c.Remote.Bucket == "" {
			return fmt.Errorf("remote catalog sync enabled but endpoint/bucket not configured")
		}
		if c.Remote.AccessKey == "" || c.Remote.SecretKey == "" {
			return fmt.Errorf("remote catalog sync enabled but credentials not configured")
		}
	}
	return nil
}

// SnapshotCachePath returns the location of the msgpack warm-start cache.
func (c *Config) SnapshotCachePath() string {
	return filepath.Join(c.DataDir, "catalog.snapshot.msgpack")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
