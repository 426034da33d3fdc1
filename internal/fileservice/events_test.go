package fileservice

import "testing"

func TestEventIsFileChange(t *testing.T) {
	tests := []struct {
		typ  EventType
		want bool
	}{
		{EventAdded, true},
		{EventRemoved, true},
		{EventModified, true},
		{EventRenamed, true},
		{EventThumbnailLoaded, false},
		{EventImageLoaded, false},
	}

	for _, tt := range tests {
		if got := (Event{Type: tt.typ}).IsFileChange(); got != tt.want {
			t.Errorf("IsFileChange(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventAdded, "added"},
		{EventRemoved, "removed"},
		{EventModified, "modified"},
		{EventRenamed, "renamed"},
		{EventThumbnailLoaded, "thumbnail_loaded"},
		{EventImageLoaded, "image_loaded"},
		{EventType(0), "event(0)"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", uint8(tt.typ), got, tt.want)
		}
	}
}
