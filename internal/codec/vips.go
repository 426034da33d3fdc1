package codec

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"

	"imview/internal/logging"
)

var (
	vipsMu          sync.Mutex
	vipsInitialized bool
	vipsAvailable   bool
)

// InitVips initializes libvips. Call once at startup, and only when
// the accelerated decode path is wanted; everything works without it.
func InitVips() error {
	vipsMu.Lock()
	defer vipsMu.Unlock()

	if vipsInitialized {
		return nil
	}

	// Route vips log output through our logger, trimming verbosity to
	// match the configured level. Must happen before Startup.
	verbosity := vips.LogLevelWarning
	if logging.IsDebugEnabled() {
		verbosity = vips.LogLevelInfo
	}
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch {
		case level <= vips.LogLevelError:
			logging.Error("vips [%s] %s", domain, msg)
		case level == vips.LogLevelWarning:
			logging.Warn("vips [%s] %s", domain, msg)
		default:
			logging.Debug("vips [%s] %s", domain, msg)
		}
	}, verbosity)

	vips.Startup(&vips.Config{
		ReportLeaks:  false,
		CacheTrace:   false,
		CollectStats: false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
	return nil
}

// ShutdownVips releases libvips resources.
func ShutdownVips() {
	vipsMu.Lock()
	defer vipsMu.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Info("libvips shutdown complete")
	}
}

// VipsAvailable reports whether the accelerated decode path is up.
func VipsAvailable() bool {
	vipsMu.Lock()
	defer vipsMu.Unlock()
	return vipsAvailable
}

// loadShrunkWithVips decodes path with decode-time shrinking toward a
// size×size box. The result is approximately fitted; the caller runs
// the exact fit afterwards.
func loadShrunkWithVips(path string, size int) (*image.NRGBA, error) {
	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips load: %w", err)
	}
	defer ref.Close()

	if err := ref.Thumbnail(size, size, vips.InterestingNone); err != nil {
		return nil, fmt.Errorf("vips thumbnail: %w", err)
	}

	// PNG round-trip keeps an alpha channel intact, so transparent
	// sources come out identical to the pure-Go path.
	out, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, fmt.Errorf("vips export: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode vips output: %w", err)
	}
	return imaging.Clone(img), nil
}
