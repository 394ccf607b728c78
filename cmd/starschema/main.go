package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	bq "cloud.google.com/go/bigquery"

	"github.com/dvloznov/video-insights/internal/config"
	"github.com/dvloznov/video-insights/internal/infra/bigquery"
	"github.com/dvloznov/video-insights/internal/logger"
)

// starschema rebuilds the dimension and fact tables from the metadata and
// results tables already in the dataset. Useful after a manual fix to the
// results table, without re-running any model calls.
func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		configPath string
		projectID  string
		dataset    string
	)

	flag.StringVar(&configPath, "config", "", "Path to TOML config file (optional)")
	flag.StringVar(&projectID, "project", "", "GCP project id (overrides config)")
	flag.StringVar(&dataset, "dataset", "", "BigQuery dataset (overrides config)")
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
	if cfg.Project.ID == "" {
		log.Fatal().Msg("Usage: starschema -project PROJECT_ID [-dataset DATASET] [-config config.toml]")
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid timezone")
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	bqClient, err := bq.NewClient(ctx, cfg.Project.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery client")
	}
	defer bqClient.Close()

	warehouse := bigquery.NewWarehouse(bqClient, cfg.Project.ID, cfg.Project.Dataset, log)

	exists, err := warehouse.TableExists(ctx, cfg.Project.ResultsTable)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check results table")
	}
	if !exists {
		log.Fatal().Str("table", cfg.Project.ResultsTable).Msg("Results table does not exist, run an analysis first")
	}

	tables := bigquery.StarSchemaTables{
		MetadataTable: cfg.Project.MetadataTable,
		ResultsTable:  cfg.Project.ResultsTable,
	}
	if err := warehouse.BuildStarSchema(ctx, tables, time.Now().In(loc)); err != nil {
		log.Fatal().Err(err).Msg("Star schema rebuild failed")
	}

	fmt.Println("Star schema rebuilt successfully.")
}
