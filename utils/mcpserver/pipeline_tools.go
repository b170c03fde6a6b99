package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/armon-kel/beamctl/utils/catalog"
	"github.com/armon-kel/beamctl/utils/pipeline"
)

// TextOutput is the payload shape shared by every tool: a single text report
// the calling model can read directly.
type TextOutput struct {
	Report string `json:"report"`
}

// runTool executes a tool body and converts any failure, including panics,
// into a readable report so a tool call never surfaces a protocol error.
func runTool(log *slog.Logger, name string, fn func() (string, error)) (out TextOutput) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("mcp/tool: recovered panic", "tool", name, "panic", r)
			out = TextOutput{Report: fmt.Sprintf("Error executing %s: %v", name, r)}
		}
	}()

	report, err := fn()
	if err != nil {
		return TextOutput{Report: fmt.Sprintf("Error executing %s: %v", name, err)}
	}
	return TextOutput{Report: report}
}

// addTextTool registers a tool whose handler produces a plain text report.
func addTextTool[In any](log *slog.Logger, server *mcp.Server, name, description string, fn func(ctx context.Context, in In) (string, error)) error {
	req, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("failed to create %s input schema: %w", name, err)
	}
	res, err := jsonschema.For[TextOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create %s output schema: %w", name, err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:         name,
		Description:  description,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, TextOutput, error) {
		log.Debug("mcp/tool: handling call", "tool", name)
		out := runTool(log, name, func() (string, error) {
			return fn(ctx, in)
		})
		return nil, out, nil
	})
	return nil
}

type ListTransformsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter by category: all, io, or transform. Defaults to all."`
}

type TransformDetailsInput struct {
	TransformName string `json:"transform_name" jsonschema:"Name of the transform, e.g. Filter or ReadFromBigQuery."`
}

type ValidateInput struct {
	YAMLContent string `json:"yaml_content" jsonschema:"The Beam YAML pipeline document to validate."`
}

type GenerateInput struct {
	Description     string   `json:"description,omitempty" jsonschema:"Free-text description of the desired pipeline."`
	SourceType      string   `json:"source_type,omitempty" jsonschema:"Data source hint, e.g. bigquery, pubsub, text, csv."`
	SinkType        string   `json:"sink_type,omitempty" jsonschema:"Data sink hint, e.g. bigquery, text, csv."`
	Transformations []string `json:"transformations,omitempty" jsonschema:"Transformation hints, e.g. filter, combine."`
}

type ConnectorSchemaInput struct {
	ConnectorName string `json:"connector_name" jsonschema:"Name of the IO connector, e.g. ReadFromBigQuery."`
}

func registerPipelineTools(log *slog.Logger, server *mcp.Server) error {
	if err := addTextTool(log, server, "get_beam_yaml_transforms",
		"List available Beam YAML transform types, optionally filtered by category (all, io, transform).",
		func(_ context.Context, in ListTransformsInput) (string, error) {
			category := in.Category
			if category == "" {
				category = string(catalog.CategoryAll)
			}
			return catalog.RenderKinds(catalog.Category(category)), nil
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "get_transform_details",
		"Get detailed documentation, configuration options, and usage examples for a specific Beam YAML transform.",
		func(_ context.Context, in TransformDetailsInput) (string, error) {
			if in.TransformName == "" {
				return "", fmt.Errorf("transform_name is required")
			}
			return catalog.RenderDoc(in.TransformName), nil
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "validate_beam_yaml",
		"Validate the structure of a Beam YAML pipeline document and report errors and warnings.",
		func(_ context.Context, in ValidateInput) (string, error) {
			if in.YAMLContent == "" {
				return "", fmt.Errorf("yaml_content is required")
			}
			return pipeline.Validate(in.YAMLContent).Render(), nil
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "generate_beam_yaml_pipeline",
		"Generate a Beam YAML pipeline document from source, sink, and transformation hints. Unrecognized hints are skipped.",
		func(_ context.Context, in GenerateInput) (string, error) {
			result, err := pipeline.Build(pipeline.BuildRequest{
				Source:      in.SourceType,
				Sink:        in.SinkType,
				Transforms:  in.Transformations,
				Description: in.Description,
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Generated Beam YAML Pipeline:\n\n```yaml\n%s```\n\nNext Steps:\n%s",
				result.YAML, pipeline.NextSteps), nil
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "get_io_connector_schema",
		"Get input/output schema and configuration reference for a Beam YAML IO connector.",
		func(_ context.Context, in ConnectorSchemaInput) (string, error) {
			if in.ConnectorName == "" {
				return "", fmt.Errorf("connector_name is required")
			}
			return catalog.RenderSchema(in.ConnectorName), nil
		}); err != nil {
		return err
	}

	return nil
}
