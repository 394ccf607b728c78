package pipeline

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/dvloznov/video-insights/internal/config"
	"github.com/dvloznov/video-insights/internal/schema"
)

const videoMIMEType = "video/mp4"

// Generator produces the raw model response text for one video. The Gemini
// implementation lives below; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, videoURI string) (string, error)
}

// GeminiGenerator sends a video plus the rating battery to Gemini and returns
// the response body, which is expected (but not guaranteed) to be JSON
// conforming to the declared response schema.
type GeminiGenerator struct {
	client   *genai.Client
	model    config.ModelConfig
	battery  []string
	respSpec *genai.Schema
}

// NewGeminiGenerator builds a generator for one schema generation.
func NewGeminiGenerator(client *genai.Client, model config.ModelConfig, sch schema.Schema) (*GeminiGenerator, error) {
	battery, err := PromptBattery(sch)
	if err != nil {
		return nil, fmt.Errorf("NewGeminiGenerator: %w", err)
	}
	return &GeminiGenerator{
		client:   client,
		model:    model,
		battery:  battery,
		respSpec: responseSchema(sch),
	}, nil
}

// Generate runs one generation call. It does no retrying of its own; the
// caller owns the retry policy.
func (g *GeminiGenerator) Generate(ctx context.Context, videoURI string) (string, error) {
	parts := make([]*genai.Part, 0, len(g.battery)+2)
	parts = append(parts, &genai.Part{
		FileData: &genai.FileData{
			FileURI:  videoURI,
			MIMEType: videoMIMEType,
		},
	})
	parts = append(parts, &genai.Part{Text: jsonDiscipline})
	for _, prompt := range g.battery {
		parts = append(parts, &genai.Part{Text: prompt})
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](g.model.Temperature),
		TopP:             genai.Ptr[float32](g.model.TopP),
		MaxOutputTokens:  g.model.MaxOutputTokens,
		Seed:             genai.Ptr[int32](g.model.Seed),
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.respSpec,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model.Name, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("Generate: %s: %w", videoURI, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Generate: empty response from model for %s", videoURI)
	}
	return text, nil
}

// responseSchema declares every field as a string, matching the contract the
// warehouse side normalizes from: the model answers in text and the
// normalizer owns the typing.
func responseSchema(sch schema.Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(sch.Fields))
	required := make([]string, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		props[f.Name] = &genai.Schema{Type: genai.TypeString}
		required = append(required, f.Name)
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   required,
	}
}
