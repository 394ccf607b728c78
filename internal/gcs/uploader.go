package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/video-insights/internal/normalize"
)

const uploadTimeout = 5 * time.Minute

// BatchObjectName places a local video file into the dated batch folder the
// lister will pick up, e.g. TIKTOK_samples/2024-06-01/7234567890123456789.mp4.
// The file name must carry a resolvable video id: a file that cannot be
// identified at upload time would only be skipped by every later run.
func BatchObjectName(basePrefix string, day time.Time, filePath string) (string, error) {
	name := filepath.Base(filePath)
	if !strings.HasSuffix(strings.ToLower(name), videoExtension) {
		return "", fmt.Errorf("BatchObjectName: %q is not a %s file", name, videoExtension)
	}
	if _, err := normalize.ResolveVideoID(name); err != nil {
		return "", fmt.Errorf("BatchObjectName: %w", err)
	}
	return basePrefix + day.Format("2006-01-02") + "/" + name, nil
}

// UploadVideo writes a local video file into the bucket under objectName.
// Application Default Credentials are assumed.
func UploadVideo(ctx context.Context, client *storage.Client, bucket, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("UploadVideo: opening %q: %w", filePath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("UploadVideo: copying to gs://%s/%s: %w", bucket, objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("UploadVideo: finalizing gs://%s/%s: %w", bucket, objectName, err)
	}

	return nil
}
