package pipeline

import (
	"testing"

	"github.com/dvloznov/video-insights/internal/schema"
)

func TestPromptBattery(t *testing.T) {
	v1, err := PromptBattery(schema.V1)
	if err != nil {
		t.Fatalf("PromptBattery(V1) error: %v", err)
	}
	if len(v1) != len(schema.V1.Fields) {
		t.Errorf("V1 battery has %d prompts for %d fields", len(v1), len(schema.V1.Fields))
	}

	v2, err := PromptBattery(schema.V2)
	if err != nil {
		t.Fatalf("PromptBattery(V2) error: %v", err)
	}
	if len(v2) != len(schema.V2.Fields) {
		t.Errorf("V2 battery has %d prompts for %d fields", len(v2), len(schema.V2.Fields))
	}

	if _, err := PromptBattery(schema.Schema{Version: "v9"}); err == nil {
		t.Error("PromptBattery for unknown version should fail")
	}
}
