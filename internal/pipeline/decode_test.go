package pipeline

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "clean json untouched", raw: `{"a":"1"}`, want: `{"a":"1"}`},
		{name: "fenced json", raw: "```json\n{\"a\":\"1\"}\n```", want: `{"a":"1"}`},
		{name: "bare fences", raw: "```\n{\"a\":\"1\"}\n```", want: `{"a":"1"}`},
		{name: "prose around json", raw: "Here you go:\n{\"a\":\"1\"}\nHope this helps!", want: `{"a":"1"}`},
		{name: "whitespace trimmed", raw: "  {\"a\":\"1\"}  ", want: `{"a":"1"}`},
		{name: "no json at all", raw: "sorry, cannot analyze", want: "sorry, cannot analyze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.raw); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
