package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// StarSchemaTables holds the table names the star schema is built from and
// into. The metadata table carries the scraped video/user/language columns;
// the results table carries the model ratings keyed by video_id.
type StarSchemaTables struct {
	MetadataTable string
	ResultsTable  string
}

// BuildStarSchema executes the fixed sequence of statements that rebuilds
// the dimension tables and the fact table from the metadata and results
// tables. Every statement is CREATE OR REPLACE, so the sequence is
// idempotent for a given load. Any error stops the sequence: these are
// schema/configuration bugs, not per-item data issues.
func (w *Warehouse) BuildStarSchema(ctx context.Context, tables StarSchemaTables, now time.Time) error {
	ts := now.Format(time.RFC3339)
	date := civil.DateOf(now).String()

	steps := []struct {
		sql         string
		description string
	}{
		{w.dimLangQuery(tables.MetadataTable, ts), "Create dim_lang table"},
		{w.dimUserQuery(tables.MetadataTable, ts), "Create dim_user table"},
		{w.dimVideoQuery(tables.MetadataTable, tables.ResultsTable, ts), "Create dim_video table"},
		{w.factVideoAnalyticsQuery(tables.MetadataTable, tables.ResultsTable, ts, date), "Create fact_video_analytics table"},
	}

	for _, step := range steps {
		if err := w.executeQuery(ctx, step.sql, step.description); err != nil {
			return fmt.Errorf("BuildStarSchema: %w", err)
		}
	}

	w.log.Info().
		Str("metadata_table", tables.MetadataTable).
		Str("results_table", tables.ResultsTable).
		Msg("Star schema populated")
	return nil
}

func (w *Warehouse) dimLangQuery(metadataTable, ts string) string {
	return fmt.Sprintf(`
	CREATE OR REPLACE TABLE `+"`%s`"+` AS
	SELECT ROW_NUMBER() OVER() as lang_id, lang, TIMESTAMP('%s') as created_at
	FROM (SELECT DISTINCT lang FROM `+"`%s`"+`) t;
	`, w.tableID("dim_lang"), ts, w.tableID(metadataTable))
}

func (w *Warehouse) dimUserQuery(metadataTable, ts string) string {
	return fmt.Sprintf(`
	CREATE OR REPLACE TABLE `+"`%s`"+` AS
	SELECT DISTINCT user_id, user, user_nickname, user_signature, user_followers, user_videos, TIMESTAMP('%s') as created_at
	FROM `+"`%s`"+`;
	`, w.tableID("dim_user"), ts, w.tableID(metadataTable))
}

func (w *Warehouse) dimVideoQuery(metadataTable, resultsTable, ts string) string {
	return fmt.Sprintf(`
	CREATE OR REPLACE TABLE `+"`%s`"+` AS
	SELECT
	    CAST(m.id AS INT64) as video_id,
	    m.text,
	    m.gcs_path,
	    a.timecode,
	    a.expectation_description,
	    a.violation_description,
	    TIMESTAMP('%s') as created_at
	FROM `+"`%s`"+` m
	JOIN `+"`%s`"+` a ON CAST(m.id AS INT64) = a.video_id;
	`, w.tableID("dim_video"), ts, w.tableID(metadataTable), w.tableID(resultsTable))
}

func (w *Warehouse) factVideoAnalyticsQuery(metadataTable, resultsTable, ts, date string) string {
	return fmt.Sprintf(`
	CREATE OR REPLACE TABLE `+"`%s`"+` AS
	SELECT
	    CAST(m.id AS INT64) as video_id,
	    m.user_id,
	    l.lang_id,
	    m.createTimeISO,
	    m.duration,
	    m.video_likes,
	    m.video_shares,
	    m.video_plays,
	    m.video_bookmarks,
	    m.video_comments,
	    a.unexpectedness_rating,
	    a.emotional_intensity,
	    a.expectation_probability,
	    a.sexual_content_rating,
	    DATE('%s') as analysis_date,
	    TIMESTAMP('%s') as created_at
	FROM `+"`%s`"+` m
	JOIN `+"`%s`"+` a ON CAST(m.id AS INT64) = a.video_id
	JOIN `+"`%s`"+` l ON m.lang = l.lang;
	`, w.tableID("fact_video_analytics"), date, ts,
		w.tableID(metadataTable), w.tableID(resultsTable), w.tableID("dim_lang"))
}
