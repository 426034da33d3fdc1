package imagetypes

import (
	"path/filepath"
	"strings"
)

// Extensions maps file extensions to whether they are supported image
// formats. The set matches what the decode pipeline can actually read
// (stdlib decoders, imaging, and x/image webp).
var Extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
}

// MimeTypes maps image file extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// IsImage reports whether path names a recognized image format, judged
// by extension only. It never touches the filesystem, so it is safe to
// call on paths that no longer exist (e.g. remove notifications).
func IsImage(path string) bool {
	return Extensions[strings.ToLower(filepath.Ext(path))]
}

// GetMimeType returns the MIME type for a given image path.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(path string) string {
	if mime, ok := MimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return "application/octet-stream"
}
