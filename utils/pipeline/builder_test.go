package pipeline

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestBuildSourceTransformSink(t *testing.T) {
	result, err := Build(BuildRequest{
		Source:     "bigquery",
		Sink:       "text",
		Transforms: []string{"filter"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	steps := result.Document.Pipeline.Transforms
	if len(steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(steps))
	}

	if steps[0].Name != "ReadData" || steps[0].Type != "ReadFromBigQuery" {
		t.Errorf("Unexpected source step: %+v", steps[0])
	}
	if steps[1].Name != "Filter1" || steps[1].Type != "Filter" {
		t.Errorf("Unexpected filter step: %+v", steps[1])
	}
	if steps[1].Input != "ReadData" {
		t.Errorf("Filter step should consume ReadData, got %q", steps[1].Input)
	}
	if steps[2].Name != "WriteData" || steps[2].Type != "WriteToText" {
		t.Errorf("Unexpected sink step: %+v", steps[2])
	}
	if steps[2].Input != "Filter1" {
		t.Errorf("Sink step should consume Filter1, got %q", steps[2].Input)
	}
}

func TestBuildUnrecognizedHintsAreSkipped(t *testing.T) {
	result, err := Build(BuildRequest{Source: "unknown-thing"})
	if err != nil {
		t.Fatalf("Build should not fail on unrecognized hints: %v", err)
	}
	if len(result.Document.Pipeline.Transforms) != 0 {
		t.Errorf("Expected no steps, got %d", len(result.Document.Pipeline.Transforms))
	}
}

func TestBuildTransformOrdinals(t *testing.T) {
	result, err := Build(BuildRequest{
		Source:     "csv",
		Transforms: []string{"combine", "unrecognized", "filter"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	steps := result.Document.Pipeline.Transforms
	if len(steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(steps))
	}
	// Ordinals follow the position in the request, so a skipped hint leaves a gap.
	if steps[1].Name != "Combine1" {
		t.Errorf("Expected Combine1, got %s", steps[1].Name)
	}
	if steps[2].Name != "Filter3" {
		t.Errorf("Expected Filter3, got %s", steps[2].Name)
	}
	if steps[2].Input != "Combine1" {
		t.Errorf("Filter should chain from Combine1, got %q", steps[2].Input)
	}
}

func TestBuildSinkOnlyFallsBackToReadData(t *testing.T) {
	result, err := Build(BuildRequest{Sink: "pubsub"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	steps := result.Document.Pipeline.Transforms
	if len(steps) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(steps))
	}
	if steps[0].Input != "ReadData" {
		t.Errorf("Sink without source should default input to ReadData, got %q", steps[0].Input)
	}
}

func TestBuildCaseInsensitiveSynonyms(t *testing.T) {
	tests := []struct {
		source   string
		wantType string
	}{
		{source: "BQ", wantType: "ReadFromBigQuery"},
		{source: "Pub/Sub", wantType: "ReadFromPubSub"},
		{source: "FILE", wantType: "ReadFromText"},
		{source: "Csv", wantType: "ReadFromCsv"},
	}

	for _, tt := range tests {
		result, err := Build(BuildRequest{Source: tt.source})
		if err != nil {
			t.Fatalf("Build(%q) failed: %v", tt.source, err)
		}
		steps := result.Document.Pipeline.Transforms
		if len(steps) != 1 || steps[0].Type != tt.wantType {
			t.Errorf("Build(%q) produced %+v, expected one %s step", tt.source, steps, tt.wantType)
		}
	}
}

func TestBuildYAMLRoundTrips(t *testing.T) {
	result, err := Build(BuildRequest{
		Source:     "pubsub",
		Sink:       "bigquery",
		Transforms: []string{"combine"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !strings.HasPrefix(result.YAML, "pipeline:") {
		t.Errorf("Serialized document should use the pipeline wrapper key:\n%s", result.YAML)
	}

	var parsed Document
	if err := yaml.Unmarshal([]byte(result.YAML), &parsed); err != nil {
		t.Fatalf("Generated YAML does not parse: %v", err)
	}
	if len(parsed.Pipeline.Transforms) != 3 {
		t.Errorf("Round-tripped document has %d steps, expected 3", len(parsed.Pipeline.Transforms))
	}

	// Generated drafts must pass their own validation.
	validation := Validate(result.YAML)
	if !validation.Valid {
		t.Errorf("Generated pipeline failed validation: %v", validation.Errors)
	}
}
