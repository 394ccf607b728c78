package schema

import "testing"

func TestByVersion(t *testing.T) {
	tests := []struct {
		version    string
		wantFields int
		wantErr    bool
	}{
		{version: "v1", wantFields: 7},
		{version: "v2", wantFields: 12},
		{version: "v3", wantErr: true},
		{version: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			s, err := ByVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ByVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(s.Fields) != tt.wantFields {
				t.Errorf("ByVersion(%q) has %d fields, want %d", tt.version, len(s.Fields), tt.wantFields)
			}
			if s.Version != tt.version {
				t.Errorf("ByVersion(%q).Version = %q", tt.version, s.Version)
			}
		})
	}
}

func TestFieldNamesOrder(t *testing.T) {
	names := V1.FieldNames()
	want := []string{
		"unexpectedness_rating",
		"emotional_intensity",
		"timecode",
		"expectation_description",
		"violation_description",
		"expectation_probability",
		"sexual_content_rating",
	}
	if len(names) != len(want) {
		t.Fatalf("V1.FieldNames() has %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("V1.FieldNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestValueInterface(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want interface{}
	}{
		{name: "unavailable is nil", v: Unavailable(), want: nil},
		{name: "zero value is nil", v: Value{}, want: nil},
		{name: "int", v: IntValue(4), want: int64(4)},
		{name: "float", v: FloatValue(0.25), want: 0.25},
		{name: "text", v: TextValue("00:12"), want: "00:12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Interface(); got != tt.want {
				t.Errorf("Interface() = %v (%T), want %v", got, got, tt.want)
			}
		})
	}
}

func TestValueDistinctFromZero(t *testing.T) {
	// The unavailable marker must not compare equal to legitimate zeroes.
	if Unavailable() == IntValue(0) {
		t.Error("Unavailable() compares equal to IntValue(0)")
	}
	if Unavailable() == TextValue("") {
		t.Error("Unavailable() compares equal to TextValue(\"\")")
	}
	if !Unavailable().IsUnavailable() {
		t.Error("Unavailable().IsUnavailable() = false")
	}
	if IntValue(0).IsUnavailable() {
		t.Error("IntValue(0).IsUnavailable() = true")
	}
}

func TestValueString(t *testing.T) {
	if got := Unavailable().String(); got != SentinelText {
		t.Errorf("Unavailable().String() = %q, want %q", got, SentinelText)
	}
	if got := IntValue(5).String(); got != "5" {
		t.Errorf("IntValue(5).String() = %q", got)
	}
	if got := FloatValue(0.5).String(); got != "0.5" {
		t.Errorf("FloatValue(0.5).String() = %q", got)
	}
}

func TestMatchesType(t *testing.T) {
	if !Unavailable().MatchesType(TypeInt) {
		t.Error("Unavailable() should match any declared type")
	}
	if !IntValue(3).MatchesType(TypeInt) {
		t.Error("IntValue should match TypeInt")
	}
	if IntValue(3).MatchesType(TypeText) {
		t.Error("IntValue should not match TypeText")
	}
}
