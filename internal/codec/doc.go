// Package codec decodes image files and produces proportionally
// scaled thumbnails.
//
// Decoding uses the imaging library with stdlib and x/image decoders
// registered (JPEG, PNG, GIF, BMP, TIFF, WebP). An optional libvips
// path accelerates thumbnail decoding with decode-time shrinking; it
// is enabled explicitly via InitVips and always falls back to the
// portable path on failure.
//
// All failures come back as *DecodeError so callers can treat a bad
// file as a first-class per-path result rather than a fault.
package codec
