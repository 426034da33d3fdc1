package codec

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // WebP format support
)

// DecodeError reports a failed open, decode or resize for one path.
// It travels inside the result event for the failed operation and is
// never fatal to anything but that single request.
type DecodeError struct {
	Path string
	Op   string // "open" or "decode"
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads and decodes the image at path into NRGBA pixels,
// applying EXIF auto-orientation.
func Decode(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Op: "decode", Err: err}
	}
	return imaging.Clone(img), nil
}

// FitThumbnail scales img proportionally so it fits a size×size box:
// scale = min(size/width, size/height), both target dimensions floored.
// Small images are scaled up by the same rule.
func FitThumbnail(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || size <= 0 {
		return img
	}

	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	tw := int(math.Floor(float64(w) * scale))
	th := int(math.Floor(float64(h) * scale))
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	return imaging.Resize(img, tw, th, imaging.Lanczos)
}

// Thumbnail decodes path and fits it to a size×size box. When libvips
// is initialized the decode happens with decode-time shrinking, which
// avoids holding the full-resolution pixels in memory; otherwise the
// portable imaging path is used.
func Thumbnail(path string, size int) (*image.NRGBA, error) {
	if VipsAvailable() {
		if img, err := loadShrunkWithVips(path, size); err == nil {
			return FitThumbnail(img, size), nil
		}
		// Fall through: vips handles fewer formats than the imaging
		// decoder stack, and its failure is not the request's failure.
	}

	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return FitThumbnail(img, size), nil
}
