package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/dvloznov/video-insights/internal/gcs"
	"github.com/dvloznov/video-insights/internal/normalize"
	"github.com/dvloznov/video-insights/internal/schema"
)

// RunSummary is the per-run outcome handed to run tracking and the logs.
type RunSummary struct {
	Total       int
	Accumulated int
	Skipped     int
	Elapsed     time.Duration
}

// Driver walks the work-item list sequentially. One item is fully processed
// or skipped before the next begins; a skip never aborts the batch and never
// loses already-accumulated records.
type Driver struct {
	gen     Generator
	sch     schema.Schema
	retry   RetryPolicy
	clock   Clock
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewDriver wires a batch driver. itemDelay is the politeness pause applied
// after every item (success or skip) to respect upstream rate limits; zero
// disables it.
func NewDriver(gen Generator, sch schema.Schema, retry RetryPolicy, itemDelay time.Duration, clock Clock, log zerolog.Logger) *Driver {
	var limiter *rate.Limiter
	if itemDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(itemDelay), 1)
	}
	return &Driver{
		gen:     gen,
		sch:     sch,
		retry:   retry,
		clock:   clock,
		limiter: limiter,
		log:     log,
	}
}

// Run processes every object and returns the accumulated records in input
// order. An empty input returns an empty batch without touching the
// generator. The batch is append-only: a failure on item N is logged and item
// N+1 is still attempted.
func (d *Driver) Run(ctx context.Context, bucket string, objects []string) ([]normalize.Record, RunSummary) {
	started := d.clock.Now()
	records := make([]normalize.Record, 0, len(objects))
	skipped := 0

	for i, object := range objects {
		// Cooperative cancellation between items; no call spans more
		// than one item, so in-flight work needs no interruption.
		if ctx.Err() != nil {
			d.log.Warn().Err(ctx.Err()).Msg("Run cancelled, returning partial batch")
			skipped += len(objects) - i
			break
		}

		rec, ok := d.processItem(ctx, bucket, object)
		if ok {
			records = append(records, rec)
		} else {
			skipped++
		}

		if d.limiter != nil {
			_ = d.limiter.Wait(ctx)
		}
	}

	summary := RunSummary{
		Total:       len(objects),
		Accumulated: len(records),
		Skipped:     skipped,
		Elapsed:     d.clock.Now().Sub(started),
	}

	d.log.Info().
		Int("total", summary.Total).
		Int("accumulated", summary.Accumulated).
		Int("skipped", summary.Skipped).
		Dur("elapsed", summary.Elapsed).
		Msg("Batch run finished")

	return records, summary
}

// processItem drives one work item through calling, decoding, normalizing and
// identifying. It reports ok=false for any skip; the reason is logged here.
func (d *Driver) processItem(ctx context.Context, bucket, object string) (normalize.Record, bool) {
	uri := gcs.VideoURI(bucket, object)
	log := d.log.With().Str("video", object).Logger()

	log.Info().Msg("Processing video")

	raw, err := GenerateWithRetry(ctx, d.gen, uri, d.retry, d.clock, log)
	if err != nil && IsResourceExhausted(err) {
		// The retry budget is spent but the condition is still the
		// transient one. Give the quota window one more full round
		// before writing the item off.
		log.Warn().Err(err).Msg("Retry budget exhausted, one final round after delay")
		d.clock.Sleep(d.retry.Delay)
		raw, err = GenerateWithRetry(ctx, d.gen, uri, d.retry, d.clock, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("Generation failed, skipping video")
		return normalize.Record{}, false
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		log.Error().Err(err).Str("raw_response", raw).Msg("Response is not valid JSON, skipping video")
		return normalize.Record{}, false
	}

	fields := normalize.Normalize(parsed, d.sch, log)

	videoID, err := normalize.ResolveVideoID(object)
	if err != nil {
		log.Error().Err(err).Msg("Cannot resolve video id, skipping video")
		return normalize.Record{}, false
	}

	log.Info().Int64("video_id", videoID).Msg("Video analyzed")

	return normalize.Record{VideoID: videoID, Fields: fields}, true
}
