package pipeline

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	readStepName  = "ReadData"
	writeStepName = "WriteData"
)

// NextSteps is the guidance appended to every generated pipeline.
const NextSteps = `1. Replace placeholder values (your-project, your-dataset, etc.) with actual values
2. Customize transform configurations based on your specific requirements
3. Validate the pipeline using the validate tool
4. Test the pipeline with a small dataset first`

// BuildRequest holds the high-level hints a pipeline is generated from. All
// hints are free text matched case-insensitively against known synonyms;
// unrecognized hints are skipped rather than rejected.
type BuildRequest struct {
	Source      string
	Sink        string
	Transforms  []string
	Description string // accepted for forward compatibility, not yet used
}

// BuildResult is a generated draft pipeline with its YAML serialization.
type BuildResult struct {
	Document *Document
	YAML     string
}

// Build produces a best-effort draft pipeline from the request hints. It
// never fails on unrecognized source, sink, or transform names: those simply
// contribute no step. The only error path is serialization.
func Build(req BuildRequest) (*BuildResult, error) {
	doc := &Document{}

	if step, ok := sourceStep(req.Source); ok {
		doc.Pipeline.Transforms = append(doc.Pipeline.Transforms, step)
	}

	for i, hint := range req.Transforms {
		step, ok := transformStep(hint, i+1)
		if !ok {
			continue
		}
		step.Input = doc.LastStepName(readStepName)
		doc.Pipeline.Transforms = append(doc.Pipeline.Transforms, step)
	}

	if step, ok := sinkStep(req.Sink); ok {
		step.Input = doc.LastStepName(readStepName)
		doc.Pipeline.Transforms = append(doc.Pipeline.Transforms, step)
	}

	if doc.Pipeline.Transforms == nil {
		doc.Pipeline.Transforms = []Step{}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error serializing pipeline: %w", err)
	}

	return &BuildResult{Document: doc, YAML: string(out)}, nil
}

// sourceStep maps a source hint to a read step with placeholder configuration.
func sourceStep(hint string) (Step, bool) {
	switch strings.ToLower(hint) {
	case "bigquery", "bq":
		return Step{
			Name: readStepName,
			Type: "ReadFromBigQuery",
			Config: map[string]interface{}{
				"table": "your-project:your_dataset.your_table",
			},
		}, true
	case "pubsub", "pub/sub":
		return Step{
			Name: readStepName,
			Type: "ReadFromPubSub",
			Config: map[string]interface{}{
				"topic": "projects/your-project/topics/your-topic",
			},
		}, true
	case "text", "file":
		return Step{
			Name: readStepName,
			Type: "ReadFromText",
			Config: map[string]interface{}{
				"path": "gs://your-bucket/input/*",
			},
		}, true
	case "csv":
		return Step{
			Name: readStepName,
			Type: "ReadFromCsv",
			Config: map[string]interface{}{
				"path": "gs://your-bucket/input.csv",
			},
		}, true
	}
	return Step{}, false
}

// transformStep maps a processing hint to a transform step. The ordinal is
// the 1-based position of the hint in the request, used for naming.
func transformStep(hint string, ordinal int) (Step, bool) {
	switch strings.ToLower(hint) {
	case "filter":
		return Step{
			Name: fmt.Sprintf("Filter%d", ordinal),
			Type: "Filter",
			Config: map[string]interface{}{
				"condition": "# Add your filter condition here",
				"language":  "python",
			},
		}, true
	case "combine":
		return Step{
			Name: fmt.Sprintf("Combine%d", ordinal),
			Type: "Combine",
			Config: map[string]interface{}{
				"group_by": []interface{}{"# Add grouping fields"},
				"combine": map[string]interface{}{
					"count": map[string]interface{}{"count": "*"},
				},
			},
		}, true
	}
	return Step{}, false
}

// sinkStep maps a sink hint to a write step with placeholder configuration.
func sinkStep(hint string) (Step, bool) {
	switch strings.ToLower(hint) {
	case "bigquery", "bq":
		return Step{
			Name: writeStepName,
			Type: "WriteToBigQuery",
			Config: map[string]interface{}{
				"table":              "your-project:your_dataset.output_table",
				"create_disposition": "CREATE_IF_NEEDED",
				"write_disposition":  "WRITE_APPEND",
			},
		}, true
	case "pubsub", "pub/sub":
		return Step{
			Name: writeStepName,
			Type: "WriteToPubSub",
			Config: map[string]interface{}{
				"topic": "projects/your-project/topics/output-topic",
			},
		}, true
	case "text", "file":
		return Step{
			Name: writeStepName,
			Type: "WriteToText",
			Config: map[string]interface{}{
				"path": "gs://your-bucket/output/",
			},
		}, true
	}
	return Step{}, false
}
