package bigquery

import (
	"testing"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/video-insights/internal/normalize"
	"github.com/dvloznov/video-insights/internal/schema"
)

func TestResultsTableSchema(t *testing.T) {
	fields := ResultsTableSchema(schema.V1)

	wantLen := len(schema.V1.Fields) + 2
	if len(fields) != wantLen {
		t.Fatalf("schema has %d columns, want %d", len(fields), wantLen)
	}

	if fields[0].Name != "video_id" || fields[0].Type != bigquery.IntegerFieldType || !fields[0].Required {
		t.Errorf("first column = %+v, want required video_id INT64", fields[0])
	}
	last := fields[len(fields)-1]
	if last.Name != "created_at" || last.Type != bigquery.TimestampFieldType {
		t.Errorf("last column = %+v, want created_at TIMESTAMP", last)
	}

	byName := make(map[string]*bigquery.FieldSchema)
	for _, f := range fields {
		byName[f.Name] = f
	}

	cases := map[string]bigquery.FieldType{
		"unexpectedness_rating":   bigquery.IntegerFieldType,
		"expectation_probability": bigquery.FloatFieldType,
		"timecode":                bigquery.StringFieldType,
	}
	for name, want := range cases {
		f, ok := byName[name]
		if !ok {
			t.Errorf("column %q missing", name)
			continue
		}
		if f.Type != want {
			t.Errorf("column %q type = %v, want %v", name, f.Type, want)
		}
		if f.Required {
			t.Errorf("column %q should be nullable", name)
		}
	}
}

func TestResultSaverSave(t *testing.T) {
	loadedAt := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	rec := normalize.Record{
		VideoID: 7412345678901234567,
		Fields: map[string]schema.Value{
			"unexpectedness_rating":   schema.IntValue(4),
			"expectation_probability": schema.FloatValue(0.3),
			"timecode":                schema.TextValue("00:05-00:09"),
			"emotional_intensity":     schema.Unavailable(),
		},
	}

	saver := &ResultSaver{Record: rec, Schema: schema.V1, LoadedAt: loadedAt}
	row, insertID, err := saver.Save()
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if got := row["video_id"]; got != int64(7412345678901234567) {
		t.Errorf("video_id = %v, want 7412345678901234567", got)
	}
	if got := row["unexpectedness_rating"]; got != int64(4) {
		t.Errorf("unexpectedness_rating = %v, want 4", got)
	}
	if got := row["expectation_probability"]; got != 0.3 {
		t.Errorf("expectation_probability = %v, want 0.3", got)
	}
	if got := row["timecode"]; got != "00:05-00:09" {
		t.Errorf("timecode = %v, want 00:05-00:09", got)
	}

	// Unavailable and never-set fields both load as NULL, not zeros.
	for _, name := range []string{"emotional_intensity", "sexual_content_rating"} {
		got, ok := row[name]
		if !ok {
			t.Errorf("column %q missing from row", name)
			continue
		}
		if got != nil {
			t.Errorf("column %q = %v, want nil", name, got)
		}
	}

	if got := row["created_at"]; got != loadedAt {
		t.Errorf("created_at = %v, want %v", got, loadedAt)
	}

	wantID := "7412345678901234567-1741948200"
	if insertID != wantID {
		t.Errorf("insertID = %q, want %q", insertID, wantID)
	}
}

func TestResultSaverInsertIDStableForSameLoad(t *testing.T) {
	loadedAt := time.Now()
	rec := normalize.Record{VideoID: 42, Fields: map[string]schema.Value{}}

	a := &ResultSaver{Record: rec, Schema: schema.V1, LoadedAt: loadedAt}
	b := &ResultSaver{Record: rec, Schema: schema.V1, LoadedAt: loadedAt}

	_, idA, _ := a.Save()
	_, idB, _ := b.Save()
	if idA != idB {
		t.Errorf("insert ids differ for identical load: %q vs %q", idA, idB)
	}
}
