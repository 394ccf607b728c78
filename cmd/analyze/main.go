package main

import (
	"context"
	"flag"
	"fmt"

	bq "cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/dvloznov/video-insights/internal/config"
	"github.com/dvloznov/video-insights/internal/gcs"
	"github.com/dvloznov/video-insights/internal/infra/bigquery"
	"github.com/dvloznov/video-insights/internal/logger"
	"github.com/dvloznov/video-insights/internal/pipeline"
	"github.com/dvloznov/video-insights/internal/schema"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		configPath    string
		projectID     string
		dataset       string
		bucket        string
		basePrefix    string
		schemaVersion string
		modelName     string
	)

	flag.StringVar(&configPath, "config", "", "Path to TOML config file (optional)")
	flag.StringVar(&projectID, "project", "", "GCP project id (overrides config)")
	flag.StringVar(&dataset, "dataset", "", "BigQuery dataset (overrides config)")
	flag.StringVar(&bucket, "bucket", "", "GCS bucket holding the video batches (overrides config)")
	flag.StringVar(&basePrefix, "prefix", "", "Base prefix the dated batch folders live under (overrides config)")
	flag.StringVar(&schemaVersion, "schema-version", "", "Rating schema generation, v1 or v2 (overrides config)")
	flag.StringVar(&modelName, "model", "", "Generative model name (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if projectID != "" {
		cfg.Project.ID = projectID
	}
	if dataset != "" {
		cfg.Project.Dataset = dataset
	}
	if bucket != "" {
		cfg.Storage.Bucket = bucket
	}
	if basePrefix != "" {
		cfg.Storage.BasePrefix = basePrefix
	}
	if schemaVersion != "" {
		cfg.Batch.SchemaVersion = schemaVersion
	}
	if modelName != "" {
		cfg.Model.Name = modelName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Analysis run failed")
	}

	fmt.Println("Analysis run completed successfully.")
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	sch, err := schema.ByVersion(cfg.Batch.SchemaVersion)
	if err != nil {
		return err
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("run: creating storage client: %w", err)
	}
	defer storageClient.Close()

	folder, objects, err := gcs.FindLatestBatch(ctx, storageClient, cfg.Storage.Bucket, cfg.Storage.BasePrefix)
	if err != nil {
		return err
	}
	if folder == "" {
		return fmt.Errorf("run: no upload folders under gs://%s/%s", cfg.Storage.Bucket, cfg.Storage.BasePrefix)
	}

	log.Info().
		Str("folder", folder).
		Int("videos", len(objects)).
		Str("schema_version", sch.Version).
		Msg("Found latest upload batch")

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.Project.ID,
		Location: cfg.Model.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return fmt.Errorf("run: creating genai client: %w", err)
	}

	bqClient, err := bq.NewClient(ctx, cfg.Project.ID)
	if err != nil {
		return fmt.Errorf("run: creating bigquery client: %w", err)
	}
	defer bqClient.Close()

	warehouse := bigquery.NewWarehouse(bqClient, cfg.Project.ID, cfg.Project.Dataset, log)
	if err := warehouse.EnsureResultsTable(ctx, cfg.Project.ResultsTable, sch); err != nil {
		return err
	}
	if err := warehouse.EnsureRunsTable(ctx); err != nil {
		return err
	}

	clock := pipeline.NewClock()
	runID, err := warehouse.StartAnalysisRun(ctx, folder, sch.Version, clock.Now().In(loc))
	if err != nil {
		return err
	}
	runLog := logger.WithRun(log, runID, folder)

	gen, err := pipeline.NewGeminiGenerator(genaiClient, cfg.Model, sch)
	if err != nil {
		return err
	}
	driver := pipeline.NewDriver(
		gen,
		sch,
		pipeline.RetryPolicy{MaxAttempts: cfg.Retry.MaxAttempts, Delay: cfg.RetryDelay()},
		cfg.ItemDelay(),
		clock,
		runLog,
	)

	records, summary := driver.Run(ctx, cfg.Storage.Bucket, objects)
	if len(records) == 0 {
		err := fmt.Errorf("run: no videos analyzed successfully (%d attempted)", summary.Total)
		warehouse.MarkAnalysisRunFailed(ctx, runID, clock.Now().In(loc), err)
		return err
	}

	loadedAt := clock.Now().In(loc)
	if err := warehouse.InsertResults(ctx, cfg.Project.ResultsTable, records, sch, loadedAt); err != nil {
		warehouse.MarkAnalysisRunFailed(ctx, runID, clock.Now().In(loc), err)
		return err
	}

	tables := bigquery.StarSchemaTables{
		MetadataTable: cfg.Project.MetadataTable,
		ResultsTable:  cfg.Project.ResultsTable,
	}
	if err := warehouse.BuildStarSchema(ctx, tables, clock.Now().In(loc)); err != nil {
		warehouse.MarkAnalysisRunFailed(ctx, runID, clock.Now().In(loc), err)
		return err
	}

	if err := warehouse.MarkAnalysisRunSucceeded(ctx, runID, clock.Now().In(loc), summary.Total, summary.Accumulated, summary.Skipped); err != nil {
		return err
	}

	runLog.Info().
		Int("accumulated", summary.Accumulated).
		Int("skipped", summary.Skipped).
		Msg("Batch loaded and star schema rebuilt")
	return nil
}
