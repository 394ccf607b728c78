package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/video-insights/internal/config"
	"github.com/dvloznov/video-insights/internal/gcs"
	"github.com/dvloznov/video-insights/internal/logger"
)

// upload-video places a local video into today's batch folder so the next
// analysis run picks it up.
func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		configPath string
		bucket     string
		basePrefix string
		filePath   string
		folderDate string
	)

	flag.StringVar(&configPath, "config", "", "Path to TOML config file (optional)")
	flag.StringVar(&bucket, "bucket", "", "GCS bucket name (overrides config)")
	flag.StringVar(&basePrefix, "prefix", "", "Base prefix for batch folders (overrides config)")
	flag.StringVar(&filePath, "file", "", "Path to local video file (required)")
	flag.StringVar(&folderDate, "date", "", "Batch folder date YYYY-MM-DD (defaults to today)")
	flag.Parse()

	if filePath == "" {
		log.Fatal().Msg("Usage: upload-video -file /path/to/VIDEO_ID.mp4 [-bucket BUCKET] [-date YYYY-MM-DD]")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if bucket != "" {
		cfg.Storage.Bucket = bucket
	}
	if basePrefix != "" {
		cfg.Storage.BasePrefix = basePrefix
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid timezone")
	}

	day := time.Now().In(loc)
	if folderDate != "" {
		day, err = time.ParseInLocation("2006-01-02", folderDate, loc)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -date, want YYYY-MM-DD")
		}
	}

	objectName, err := gcs.BatchObjectName(cfg.Storage.BasePrefix, day, filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("File is not an uploadable video")
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage client")
	}
	defer client.Close()

	log.Info().
		Str("bucket", cfg.Storage.Bucket).
		Str("object", objectName).
		Str("file", filePath).
		Msg("Uploading video to GCS")

	if err := gcs.UploadVideo(ctx, client, cfg.Storage.Bucket, objectName, filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", filePath, cfg.Storage.Bucket, objectName)
}
