package workers

import (
	"os"
	"runtime"
	"strconv"
)

// DefaultPoolLimit caps decode pools so a large host does not spin up
// dozens of decoder goroutines for a handful of images.
const DefaultPoolLimit = 4

// Count returns the worker count for a decode pool. It respects
// container CPU limits via GOMAXPROCS (Go 1.19+) and caps the result
// at limit (0 = no cap).
//
// envVar names an environment variable that overrides the computed
// count when set to a positive integer (still subject to limit).
func Count(envVar string, limit int) int {
	if envVar != "" {
		if override := os.Getenv(envVar); override != "" {
			if count, err := strconv.Atoi(override); err == nil && count > 0 {
				if limit > 0 && count > limit {
					return limit
				}
				return count
			}
		}
	}

	// GOMAXPROCS is automatically set to the container CPU limit in Go 1.19+
	count := runtime.GOMAXPROCS(0)

	if count < 1 {
		count = 1
	}
	if limit > 0 && count > limit {
		count = limit
	}

	return count
}

// ForThumbnails returns the pool size for thumbnail decoding.
// Overridable with the THUMBNAIL_WORKERS environment variable.
func ForThumbnails() int {
	return Count("THUMBNAIL_WORKERS", DefaultPoolLimit)
}

// ForImages returns the pool size for full-image decoding.
// Overridable with the IMAGE_WORKERS environment variable.
func ForImages() int {
	return Count("IMAGE_WORKERS", DefaultPoolLimit)
}
