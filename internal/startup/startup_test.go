package startup

import (
	"testing"
	"time"

	"imview/internal/watch"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"WATCH_DEBOUNCE", "THUMBNAIL_SIZE", "VIPS_ENABLED", "METRICS_ENABLED", "METRICS_PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DebounceWindow != watch.DefaultDebounceWindow {
		t.Errorf("DebounceWindow = %v, want %v", cfg.DebounceWindow, watch.DefaultDebounceWindow)
	}
	if cfg.ThumbnailSize != 150 {
		t.Errorf("ThumbnailSize = %d, want 150", cfg.ThumbnailSize)
	}
	if cfg.VipsEnabled {
		t.Error("VipsEnabled should default to false")
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want \"9090\"", cfg.MetricsPort)
	}
	if cfg.ThumbnailWorkers < 1 || cfg.ImageWorkers < 1 {
		t.Errorf("pool sizes = %d/%d, want >= 1", cfg.ThumbnailWorkers, cfg.ImageWorkers)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("WATCH_DEBOUNCE", "250ms")
	t.Setenv("THUMBNAIL_SIZE", "320")
	t.Setenv("VIPS_ENABLED", "true")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DebounceWindow != 250*time.Millisecond {
		t.Errorf("DebounceWindow = %v, want 250ms", cfg.DebounceWindow)
	}
	if cfg.ThumbnailSize != 320 {
		t.Errorf("ThumbnailSize = %d, want 320", cfg.ThumbnailSize)
	}
	if !cfg.VipsEnabled {
		t.Error("VipsEnabled should be true")
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("WATCH_DEBOUNCE", "soon")
	t.Setenv("THUMBNAIL_SIZE", "large")
	t.Setenv("VIPS_ENABLED", "maybe")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DebounceWindow != watch.DefaultDebounceWindow {
		t.Errorf("DebounceWindow = %v, want default on parse failure", cfg.DebounceWindow)
	}
	if cfg.ThumbnailSize != 150 {
		t.Errorf("ThumbnailSize = %d, want default on parse failure", cfg.ThumbnailSize)
	}
	if cfg.VipsEnabled {
		t.Error("VipsEnabled should fall back to false")
	}
}

func TestLoadConfigRejectsNonPositiveSize(t *testing.T) {
	t.Setenv("THUMBNAIL_SIZE", "-1")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for negative THUMBNAIL_SIZE")
	}
}
