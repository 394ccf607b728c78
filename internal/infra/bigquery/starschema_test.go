package bigquery

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testWarehouse() *Warehouse {
	return &Warehouse{
		projectID: "main_il",
		datasetID: "tiktok_data",
		log:       zerolog.Nop(),
	}
}

func TestTableID(t *testing.T) {
	w := testWarehouse()
	if got := w.tableID("ai_results"); got != "main_il.tiktok_data.ai_results" {
		t.Errorf("tableID = %q", got)
	}
}

func TestStarSchemaQueries(t *testing.T) {
	w := testWarehouse()
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	ts := now.Format(time.RFC3339)

	t.Run("dim_lang", func(t *testing.T) {
		sql := w.dimLangQuery("tiktok_videos_metadata", ts)
		for _, want := range []string{
			"CREATE OR REPLACE TABLE `main_il.tiktok_data.dim_lang`",
			"ROW_NUMBER() OVER() as lang_id",
			"SELECT DISTINCT lang FROM `main_il.tiktok_data.tiktok_videos_metadata`",
			"TIMESTAMP('2025-03-14T10:30:00Z')",
		} {
			if !strings.Contains(sql, want) {
				t.Errorf("dim_lang query missing %q:\n%s", want, sql)
			}
		}
	})

	t.Run("dim_user", func(t *testing.T) {
		sql := w.dimUserQuery("tiktok_videos_metadata", ts)
		for _, want := range []string{
			"CREATE OR REPLACE TABLE `main_il.tiktok_data.dim_user`",
			"SELECT DISTINCT user_id, user, user_nickname, user_signature, user_followers, user_videos",
		} {
			if !strings.Contains(sql, want) {
				t.Errorf("dim_user query missing %q:\n%s", want, sql)
			}
		}
	})

	t.Run("dim_video", func(t *testing.T) {
		sql := w.dimVideoQuery("tiktok_videos_metadata", "ai_results", ts)
		for _, want := range []string{
			"CREATE OR REPLACE TABLE `main_il.tiktok_data.dim_video`",
			"CAST(m.id AS INT64) as video_id",
			"JOIN `main_il.tiktok_data.ai_results` a ON CAST(m.id AS INT64) = a.video_id",
			"a.expectation_description",
		} {
			if !strings.Contains(sql, want) {
				t.Errorf("dim_video query missing %q:\n%s", want, sql)
			}
		}
	})

	t.Run("fact", func(t *testing.T) {
		sql := w.factVideoAnalyticsQuery("tiktok_videos_metadata", "ai_results", ts, "2025-03-14")
		for _, want := range []string{
			"CREATE OR REPLACE TABLE `main_il.tiktok_data.fact_video_analytics`",
			"a.unexpectedness_rating",
			"a.sexual_content_rating",
			"DATE('2025-03-14') as analysis_date",
			"JOIN `main_il.tiktok_data.dim_lang` l ON m.lang = l.lang",
			"m.video_plays",
		} {
			if !strings.Contains(sql, want) {
				t.Errorf("fact query missing %q:\n%s", want, sql)
			}
		}
	})
}
