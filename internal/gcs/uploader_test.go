package gcs

import (
	"testing"
	"time"
)

func TestBatchObjectName(t *testing.T) {
	day := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		filePath string
		want     string
		wantErr  bool
	}{
		{
			name:     "plain video",
			filePath: "/tmp/downloads/7234567890123456789.mp4",
			want:     "TIKTOK_samples/2024-06-01/7234567890123456789.mp4",
		},
		{
			name:     "uppercase extension",
			filePath: "7234567890123456789.MP4",
			want:     "TIKTOK_samples/2024-06-01/7234567890123456789.MP4",
		},
		{
			name:     "not a video",
			filePath: "/tmp/notes.txt",
			wantErr:  true,
		},
		{
			name:     "unresolvable id",
			filePath: "/tmp/holiday-clip.mp4",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BatchObjectName("TIKTOK_samples/", day, tt.filePath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BatchObjectName error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BatchObjectName = %q, want %q", got, tt.want)
			}
		})
	}
}
