package normalize

import (
	"github.com/rs/zerolog"

	"github.com/dvloznov/video-insights/internal/schema"
)

// Record is one fully normalized analysis result. It carries the resolved
// video identity plus exactly the schema's fields, each either typed or
// unavailable. Records are never mutated after the batch driver builds them.
type Record struct {
	VideoID int64
	Fields  map[string]schema.Value
}

// Normalize converts a raw decoded model response into typed field values.
// The output contains exactly the schema's fields: missing fields become
// unavailable, extra fields the model over-generated are dropped silently.
// Pure and total; no I/O beyond the warning log inside coercion.
func Normalize(raw map[string]interface{}, sch schema.Schema, log zerolog.Logger) map[string]schema.Value {
	fields := make(map[string]schema.Value, len(sch.Fields))
	for _, f := range sch.Fields {
		fields[f.Name] = Coerce(raw[f.Name], f.Type, log)
	}
	return fields
}
