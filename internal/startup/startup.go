package startup

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"imview/internal/logging"
	"imview/internal/watch"
	"imview/internal/workers"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Config holds all service configuration.
type Config struct {
	// DebounceWindow is the directory watch coalescing interval.
	DebounceWindow time.Duration

	// ThumbnailWorkers and ImageWorkers size the decode pools.
	ThumbnailWorkers int
	ImageWorkers     int

	// ThumbnailSize is the default thumbnail box in pixels.
	ThumbnailSize int

	// VipsEnabled turns on the libvips accelerated decode path.
	VipsEnabled bool

	// MetricsEnabled exposes Prometheus metrics and health endpoints
	// on MetricsPort.
	MetricsEnabled bool
	MetricsPort    string
}

// LoadConfig reads configuration from environment variables, logging
// the effective values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DebounceWindow:   getEnvDuration("WATCH_DEBOUNCE", watch.DefaultDebounceWindow),
		ThumbnailWorkers: workers.ForThumbnails(),
		ImageWorkers:     workers.ForImages(),
		ThumbnailSize:    getEnvInt("THUMBNAIL_SIZE", 150),
		VipsEnabled:      getEnvBool("VIPS_ENABLED", false),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		MetricsPort:      getEnv("METRICS_PORT", "9090"),
	}

	if cfg.DebounceWindow <= 0 {
		return nil, fmt.Errorf("WATCH_DEBOUNCE must be positive, got %v", cfg.DebounceWindow)
	}
	if cfg.ThumbnailSize <= 0 {
		return nil, fmt.Errorf("THUMBNAIL_SIZE must be positive, got %d", cfg.ThumbnailSize)
	}

	logging.Info("imview %s (%s, built %s, %s)", Version, Commit, BuildTime, GoVersion)
	logging.Info("configuration:")
	logging.Info("  log level:          %s", logging.GetLevel())
	logging.Info("  watch debounce:     %v", cfg.DebounceWindow)
	logging.Info("  thumbnail workers:  %d", cfg.ThumbnailWorkers)
	logging.Info("  image workers:      %d", cfg.ImageWorkers)
	logging.Info("  thumbnail size:     %d px", cfg.ThumbnailSize)
	logging.Info("  vips decode:        %s", enabledString(cfg.VipsEnabled))
	if cfg.MetricsEnabled {
		logging.Info("  metrics:            enabled on :%s", cfg.MetricsPort)
	} else {
		logging.Info("  metrics:            disabled")
	}

	return cfg, nil
}

// LogServiceStarted reports a completed startup.
func LogServiceStarted(root string, elapsed time.Duration) {
	if root != "" {
		logging.Info("service started in %v, watching %s", elapsed.Round(time.Millisecond), root)
	} else {
		logging.Info("service started in %v, no live watch", elapsed.Round(time.Millisecond))
	}
}

// LogShutdownInitiated reports the signal that began shutdown.
func LogShutdownInitiated(signal string) {
	logging.Info("received %s, shutting down", signal)
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("invalid boolean for %s: %q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("invalid duration for %s: %q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
