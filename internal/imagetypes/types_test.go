package imagetypes

import (
	"testing"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "JPEG",
			path: "/photos/cat.jpg",
			want: true,
		},
		{
			name: "JPEG alternate extension",
			path: "cat.jpeg",
			want: true,
		},
		{
			name: "PNG",
			path: "shot.png",
			want: true,
		},
		{
			name: "WebP",
			path: "anim.webp",
			want: true,
		},
		{
			name: "Uppercase extension",
			path: "SCAN.TIF",
			want: true,
		},
		{
			name: "Text file",
			path: "notes.txt",
			want: false,
		},
		{
			name: "Video file",
			path: "clip.mp4",
			want: false,
		},
		{
			name: "No extension",
			path: "README",
			want: false,
		},
		{
			name: "Dotfile",
			path: ".gitignore",
			want: false,
		},
		{
			name: "Nonexistent path still classified",
			path: "/nowhere/gone.png",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.path); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "JPEG",
			path: "a.jpg",
			want: "image/jpeg",
		},
		{
			name: "PNG",
			path: "b.png",
			want: "image/png",
		},
		{
			name: "Unknown",
			path: "c.xyz",
			want: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetMimeType(tt.path); got != tt.want {
				t.Errorf("GetMimeType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
