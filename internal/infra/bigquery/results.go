package bigquery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/video-insights/internal/normalize"
	"github.com/dvloznov/video-insights/internal/schema"
)

// ResultsTableSchema maps a response schema generation onto BigQuery columns:
// video_id INT64 REQUIRED, one nullable column per rated field, and a
// created_at load timestamp.
func ResultsTableSchema(sch schema.Schema) bigquery.Schema {
	fields := make(bigquery.Schema, 0, len(sch.Fields)+2)
	fields = append(fields, &bigquery.FieldSchema{
		Name:     "video_id",
		Type:     bigquery.IntegerFieldType,
		Required: true,
	})
	for _, f := range sch.Fields {
		fields = append(fields, &bigquery.FieldSchema{
			Name: f.Name,
			Type: columnType(f.Type),
		})
	}
	fields = append(fields, &bigquery.FieldSchema{
		Name: "created_at",
		Type: bigquery.TimestampFieldType,
	})
	return fields
}

func columnType(t schema.FieldType) bigquery.FieldType {
	switch t {
	case schema.TypeInt:
		return bigquery.IntegerFieldType
	case schema.TypeFloat:
		return bigquery.FloatFieldType
	default:
		return bigquery.StringFieldType
	}
}

// ResultSaver adapts one normalized record to the streaming inserter. An
// unavailable value becomes a NULL column, never a zero or empty string, so
// the sentinel round-trips distinctly through the warehouse.
type ResultSaver struct {
	Record   normalize.Record
	Schema   schema.Schema
	LoadedAt time.Time
}

// Save implements bigquery.ValueSaver.
func (s *ResultSaver) Save() (map[string]bigquery.Value, string, error) {
	row := make(map[string]bigquery.Value, len(s.Schema.Fields)+2)
	row["video_id"] = s.Record.VideoID
	row["created_at"] = s.LoadedAt
	for _, f := range s.Schema.Fields {
		v := s.Record.Fields[f.Name]
		if v.IsUnavailable() {
			row[f.Name] = nil
			continue
		}
		row[f.Name] = v.Interface()
	}

	// Dedupe key: re-running a load for the same video in the same second
	// must not double-insert.
	insertID := strconv.FormatInt(s.Record.VideoID, 10) + "-" + strconv.FormatInt(s.LoadedAt.Unix(), 10)
	return row, insertID, nil
}

// EnsureResultsTable creates the results table for the schema generation if
// it does not exist yet.
func (w *Warehouse) EnsureResultsTable(ctx context.Context, table string, sch schema.Schema) error {
	t := w.client.Dataset(w.datasetID).Table(table)
	err := t.Create(ctx, &bigquery.TableMetadata{Schema: ResultsTableSchema(sch)})
	if err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("EnsureResultsTable: creating %s: %w", w.tableID(table), err)
	}
	w.log.Info().Str("table", w.tableID(table)).Str("schema_version", sch.Version).Msg("Results table is ready")
	return nil
}

// InsertResults bulk-inserts the batch. Row-level failures are logged and
// reported but do not roll back rows that already made it in.
func (w *Warehouse) InsertResults(ctx context.Context, table string, records []normalize.Record, sch schema.Schema, loadedAt time.Time) error {
	savers := make([]*ResultSaver, len(records))
	for i, rec := range records {
		savers[i] = &ResultSaver{Record: rec, Schema: sch, LoadedAt: loadedAt}
	}

	inserter := w.client.Dataset(w.datasetID).Table(table).Inserter()
	err := inserter.Put(ctx, savers)
	if err == nil {
		w.log.Info().Int("rows", len(records)).Str("table", w.tableID(table)).Msg("Inserted analysis results")
		return nil
	}

	var multi bigquery.PutMultiError
	if errors.As(err, &multi) {
		for _, rowErr := range multi {
			w.log.Error().
				Int("row_index", rowErr.RowIndex).
				Errs("errors", rowErrors(rowErr)).
				Msg("Row insert failed")
		}
		return fmt.Errorf("InsertResults: %d of %d rows failed: %w", len(multi), len(records), err)
	}

	return fmt.Errorf("InsertResults: inserting into %s: %w", w.tableID(table), err)
}

func rowErrors(rowErr bigquery.RowInsertionError) []error {
	errs := make([]error, len(rowErr.Errors))
	for i, e := range rowErr.Errors {
		errs[i] = e
	}
	return errs
}
