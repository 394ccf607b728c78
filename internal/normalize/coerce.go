// Package normalize turns raw Gemini JSON output into strictly typed records
// ready for the warehouse. The model's output is schema-guided but not
// schema-guaranteed: a declared-numeric field can come back as qualitative
// text, a boolean, or a list. Everything here degrades to the unavailable
// marker instead of failing the item.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/video-insights/internal/schema"
)

// Coerce converts a single decoded JSON value into the declared field type or
// the unavailable marker. It is total: every input has a defined output and
// it never panics.
func Coerce(raw interface{}, t schema.FieldType, log zerolog.Logger) schema.Value {
	if raw == nil {
		return schema.Unavailable()
	}

	// The model emits the literal sentinel when it cannot rate a dimension.
	// Accepting it for text fields too means a genuinely textual "N/A" is
	// indistinguishable from a missing value; that matches the warehouse
	// contract, where both land as NULL.
	if s, ok := raw.(string); ok && s == schema.SentinelText {
		return schema.Unavailable()
	}

	if list, ok := raw.([]interface{}); ok {
		log.Warn().Interface("value", list).Msg("Unexpected list value for scalar field")
		return schema.Unavailable()
	}

	switch t {
	case schema.TypeInt:
		return coerceInt(raw, log)
	case schema.TypeFloat:
		return coerceFloat(raw, log)
	case schema.TypeText:
		return coerceText(raw)
	default:
		log.Warn().Str("field_type", t.String()).Msg("Unknown field type")
		return schema.Unavailable()
	}
}

func coerceInt(raw interface{}, log zerolog.Logger) schema.Value {
	switch v := raw.(type) {
	case float64:
		// encoding/json decodes every number as float64. Ratings are
		// integral; a fractional value truncates.
		return schema.IntValue(int64(v))
	case int:
		return schema.IntValue(int64(v))
	case int64:
		return schema.IntValue(v)
	case bool:
		if v {
			return schema.IntValue(1)
		}
		return schema.IntValue(0)
	case string:
		n, err := strconv.ParseInt(remapBooleanText(v), 10, 64)
		if err != nil {
			log.Warn().Str("value", v).Err(err).Msg("Conversion to int failed")
			return schema.Unavailable()
		}
		return schema.IntValue(n)
	default:
		log.Warn().Interface("value", raw).Msgf("Cannot coerce %T to int", raw)
		return schema.Unavailable()
	}
}

func coerceFloat(raw interface{}, log zerolog.Logger) schema.Value {
	switch v := raw.(type) {
	case float64:
		return schema.FloatValue(v)
	case int:
		return schema.FloatValue(float64(v))
	case int64:
		return schema.FloatValue(float64(v))
	case bool:
		if v {
			return schema.FloatValue(1)
		}
		return schema.FloatValue(0)
	case string:
		f, err := strconv.ParseFloat(remapBooleanText(v), 64)
		if err != nil {
			log.Warn().Str("value", v).Err(err).Msg("Conversion to float failed")
			return schema.Unavailable()
		}
		return schema.FloatValue(f)
	default:
		log.Warn().Interface("value", raw).Msgf("Cannot coerce %T to float", raw)
		return schema.Unavailable()
	}
}

func coerceText(raw interface{}) schema.Value {
	switch v := raw.(type) {
	case string:
		return schema.TextValue(v)
	case float64, int, int64, bool:
		return schema.TextValue(fmt.Sprintf("%v", v))
	default:
		return schema.TextValue(fmt.Sprintf("%v", raw))
	}
}

// remapBooleanText maps boolean-like model output onto numerals so a
// true/false answer to a rated question still coerces ("true" -> 1).
func remapBooleanText(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return "1"
	case "false":
		return "0"
	default:
		return strings.TrimSpace(s)
	}
}
