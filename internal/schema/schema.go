package schema

import "fmt"

// FieldType is the declared type of a response field in the warehouse.
type FieldType int

const (
	TypeInt FieldType = iota
	TypeFloat
	TypeText
)

func (t FieldType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeText:
		return "TEXT"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field is one rated dimension the model must return.
type Field struct {
	Name string
	Type FieldType
}

// Schema describes one generation of the model response contract.
// Every field is required in the normalized output; a value the model
// failed to produce is stored as unavailable, never dropped.
type Schema struct {
	Version string
	Fields  []Field
}

// FieldNames returns the field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// V1 is the original seven-dimension response contract.
var V1 = Schema{
	Version: "v1",
	Fields: []Field{
		{Name: "unexpectedness_rating", Type: TypeInt},
		{Name: "emotional_intensity", Type: TypeInt},
		{Name: "timecode", Type: TypeText},
		{Name: "expectation_description", Type: TypeText},
		{Name: "violation_description", Type: TypeText},
		{Name: "expectation_probability", Type: TypeFloat},
		{Name: "sexual_content_rating", Type: TypeInt},
	},
}

// V2 is the extended twelve-dimension contract. Column names carry the
// ai_ prefix so they can live next to the source metadata columns in joins.
var V2 = Schema{
	Version: "v2",
	Fields: []Field{
		{Name: "ai_unexpectedness_rating", Type: TypeInt},
		{Name: "ai_unexpectedness_duration", Type: TypeInt},
		{Name: "ai_expectation_violation_description", Type: TypeText},
		{Name: "ai_emotional_intensity", Type: TypeInt},
		{Name: "ai_positivity", Type: TypeInt},
		{Name: "ai_negativity", Type: TypeInt},
		{Name: "ai_expected_desirability", Type: TypeInt},
		{Name: "ai_unexpected_desirability", Type: TypeInt},
		{Name: "ai_emotional_spatial_closeness", Type: TypeInt},
		{Name: "ai_cognitive_interruption", Type: TypeInt},
		{Name: "ai_perceived_realism", Type: TypeInt},
		{Name: "ai_sexual_content_rating", Type: TypeInt},
	},
}

// ByVersion returns the schema generation for a version string.
func ByVersion(version string) (Schema, error) {
	switch version {
	case V1.Version:
		return V1, nil
	case V2.Version:
		return V2, nil
	default:
		return Schema{}, fmt.Errorf("ByVersion: unknown schema version %q", version)
	}
}
