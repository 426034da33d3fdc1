// Package imagetypes recognizes image files by extension.
//
// Recognition is intentionally extension-based rather than
// content-based: it is consulted for watch notifications about paths
// that may already be gone, and it must never block on I/O.
package imagetypes
