package gcs

import "testing"

func TestFolderName(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "TIKTOK_samples/2024-06-01/", want: "2024-06-01"},
		{prefix: "TIKTOK_samples/2024-06-01", want: "2024-06-01"},
		{prefix: "a/b/c/", want: "c"},
		{prefix: "single/", want: "single"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := folderName(tt.prefix); got != tt.want {
				t.Errorf("folderName(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "samples/2024-06-01/12345.mp4", want: true},
		{name: "samples/2024-06-01/12345.MP4", want: true},
		{name: "samples/2024-06-01/notes.txt", want: false},
		{name: "samples/2024-06-01/thumb.jpg", want: false},
		{name: "samples/2024-06-01/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isVideo(tt.name); got != tt.want {
				t.Errorf("isVideo(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestVideoURI(t *testing.T) {
	got := VideoURI("main_il", "TIKTOK_samples/2024-06-01/12345.mp4")
	want := "gs://main_il/TIKTOK_samples/2024-06-01/12345.mp4"
	if got != want {
		t.Errorf("VideoURI = %q, want %q", got, want)
	}
}
