package fileservice

import (
	"fmt"
	"image"
)

// EventType tags an Event on the consumer stream.
type EventType uint8

const (
	// EventAdded reports a discovered or newly created image file.
	EventAdded EventType = iota + 1
	// EventRemoved reports a deleted directory entry. It is emitted
	// even for paths that were never announced; consumers ignore
	// unknown paths.
	EventRemoved
	// EventModified reports a changed image file.
	EventModified
	// EventRenamed reports an entry moved within the watched
	// directory; OldPath carries the previous name.
	EventRenamed
	// EventThumbnailLoaded carries the result of a ReadThumbnail
	// submission.
	EventThumbnailLoaded
	// EventImageLoaded carries the result of a ReadFile submission.
	EventImageLoaded
)

// String returns the event type name for logs and metrics labels.
func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventModified:
		return "modified"
	case EventRenamed:
		return "renamed"
	case EventThumbnailLoaded:
		return "thumbnail_loaded"
	case EventImageLoaded:
		return "image_loaded"
	default:
		return fmt.Sprintf("event(%d)", t)
	}
}

// Event is the single item type flowing on the consumer stream: either
// a normalized file change or a completed decode operation.
type Event struct {
	Type EventType

	// Path is the file the event concerns.
	Path string

	// OldPath is the previous path; set only for EventRenamed.
	OldPath string

	// Image holds the decoded pixels for a successful
	// EventThumbnailLoaded or EventImageLoaded.
	Image *image.NRGBA

	// Err holds the failure for an unsuccessful operation result,
	// typically a *codec.DecodeError. An error-carrying result is a
	// first-class state, not the absence of data.
	Err error
}

// IsFileChange reports whether the event is a normalized file change
// rather than an operation result.
func (e Event) IsFileChange() bool {
	switch e.Type {
	case EventAdded, EventRemoved, EventModified, EventRenamed:
		return true
	}
	return false
}

// opResult is a completed decode job heading into the funnel.
type opResult struct {
	typ  EventType
	path string
	img  *image.NRGBA
	err  error
}
