package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
)

const runsTable = "analysis_runs"

// RunStatus values for analysis_runs.status.
const (
	RunStatusRunning = "RUNNING"
	RunStatusSuccess = "SUCCESS"
	RunStatusFailed  = "FAILED"
)

// EnsureRunsTable creates the analysis_runs table if it does not exist. One
// row records one batch invocation: which folder it read, which schema
// generation it used, and how the items fared.
func (w *Warehouse) EnsureRunsTable(ctx context.Context) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS `+"`%s`"+` (
			run_id             STRING NOT NULL,
			source_folder      STRING,
			schema_version     STRING,
			started_ts         TIMESTAMP NOT NULL,
			finished_ts        TIMESTAMP,
			status             STRING NOT NULL,
			error_message      STRING,
			videos_total       INT64,
			videos_accumulated INT64,
			videos_skipped     INT64
		)
	`, w.tableID(runsTable))

	return w.executeQuery(ctx, sql, "Ensure analysis_runs table")
}

// StartAnalysisRun inserts a RUNNING row and returns its run id.
func (w *Warehouse) StartAnalysisRun(ctx context.Context, sourceFolder, schemaVersion string, startedAt time.Time) (string, error) {
	runID := uuid.NewString()

	q := w.client.Query(fmt.Sprintf(`
		INSERT `+"`%s`"+` (
			run_id, source_folder, schema_version, started_ts, status
		)
		VALUES (
			@run_id, @source_folder, @schema_version, @started_ts, @status
		)
	`, w.tableID(runsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "source_folder", Value: sourceFolder},
		{Name: "schema_version", Value: schemaVersion},
		{Name: "started_ts", Value: startedAt},
		{Name: "status", Value: RunStatusRunning},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return "", fmt.Errorf("StartAnalysisRun: running insert query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("StartAnalysisRun: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return "", fmt.Errorf("StartAnalysisRun: job error: %w", err)
	}

	return runID, nil
}

// MarkAnalysisRunSucceeded finishes a run row with status=SUCCESS and the
// per-item counts.
func (w *Warehouse) MarkAnalysisRunSucceeded(ctx context.Context, runID string, finishedAt time.Time, total, accumulated, skipped int) error {
	q := w.client.Query(fmt.Sprintf(`
		UPDATE `+"`%s`"+`
		SET status = @status,
		    finished_ts = @finished_ts,
		    videos_total = @videos_total,
		    videos_accumulated = @videos_accumulated,
		    videos_skipped = @videos_skipped,
		    error_message = ""
		WHERE run_id = @run_id
	`, w.tableID(runsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: RunStatusSuccess},
		{Name: "finished_ts", Value: finishedAt},
		{Name: "videos_total", Value: int64(total)},
		{Name: "videos_accumulated", Value: int64(accumulated)},
		{Name: "videos_skipped", Value: int64(skipped)},
		{Name: "run_id", Value: runID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("MarkAnalysisRunSucceeded: running update query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("MarkAnalysisRunSucceeded: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("MarkAnalysisRunSucceeded: job error: %w", err)
	}

	return nil
}

// MarkAnalysisRunFailed finishes a run row with status=FAILED. It only logs
// its own failures: a bookkeeping error must not mask the error that brought
// the run down.
func (w *Warehouse) MarkAnalysisRunFailed(ctx context.Context, runID string, finishedAt time.Time, runErr error) {
	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := w.client.Query(fmt.Sprintf(`
		UPDATE `+"`%s`"+`
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, w.tableID(runsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: RunStatusFailed},
		{Name: "finished_ts", Value: finishedAt},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		w.log.Error().Err(err).Str("run_id", runID).Msg("MarkAnalysisRunFailed: running update query")
		return
	}

	status, err := job.Wait(ctx)
	if err != nil {
		w.log.Error().Err(err).Str("run_id", runID).Msg("MarkAnalysisRunFailed: waiting for job")
		return
	}
	if err := status.Err(); err != nil {
		w.log.Error().Err(err).Str("run_id", runID).Msg("MarkAnalysisRunFailed: job completed with error")
	}
}
