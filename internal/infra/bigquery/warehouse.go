// Package bigquery is the warehouse side of the pipeline: the results table
// the normalized batch is loaded into, the analysis-run bookkeeping rows, and
// the fixed SQL sequence that populates the star schema.
package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
)

// Warehouse wraps a shared BigQuery client with the project/dataset scope
// every operation needs.
type Warehouse struct {
	client    *bigquery.Client
	projectID string
	datasetID string
	log       zerolog.Logger
}

// NewWarehouse builds a warehouse handle around an existing client. The
// client is owned by the caller.
func NewWarehouse(client *bigquery.Client, projectID, datasetID string, log zerolog.Logger) *Warehouse {
	return &Warehouse{
		client:    client,
		projectID: projectID,
		datasetID: datasetID,
		log:       log,
	}
}

// tableID returns the fully qualified `project.dataset.table` identifier.
func (w *Warehouse) tableID(table string) string {
	return fmt.Sprintf("%s.%s.%s", w.projectID, w.datasetID, table)
}

// TableExists reports whether a table is present in the dataset.
func (w *Warehouse) TableExists(ctx context.Context, table string) (bool, error) {
	_, err := w.client.Dataset(w.datasetID).Table(table).Metadata(ctx)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("TableExists: fetching metadata for %s: %w", w.tableID(table), err)
}

// executeQuery runs one DDL/DML statement and waits for it to finish. A
// malformed query here is a schema bug, not a data issue: the error
// propagates and stops the run.
func (w *Warehouse) executeQuery(ctx context.Context, sql, description string) error {
	q := w.client.Query(sql)

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("executeQuery: %s: running query: %w", description, err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("executeQuery: %s: waiting for job: %w", description, err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("executeQuery: %s: job error: %w", description, err)
	}

	w.log.Info().Str("description", description).Msg("Successfully executed")
	return nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

func isAlreadyExists(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusConflict
}
