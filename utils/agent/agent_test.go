package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/armon-kel/beamctl/utils/mcpclient"
)

type fakeBlock struct {
	text  string
	id    string
	name  string
	input string
}

func (b fakeBlock) AsText() (string, bool) {
	return b.text, b.text != ""
}

func (b fakeBlock) AsToolUse() (string, string, []byte, bool) {
	if b.id == "" || b.name == "" {
		return "", "", nil, false
	}
	return b.id, b.name, []byte(b.input), true
}

func TestExtractToolUses(t *testing.T) {
	blocks := []ContentBlock{
		fakeBlock{text: "thinking..."},
		fakeBlock{id: "tu_1", name: "validate_beam_yaml", input: `{"yaml_content": "pipeline: {}"}`},
		fakeBlock{id: "", name: "orphan", input: `{}`},
		fakeBlock{id: "tu_2", name: "broken_json", input: `{not json`},
		fakeBlock{id: "tu_3", name: "get_transform_details", input: `{"transform_name": "Filter"}`},
	}

	uses := extractToolUses(blocks)
	require.Len(t, uses, 2)
	require.Equal(t, "tu_1", uses[0].ID)
	require.Equal(t, "validate_beam_yaml", uses[0].Name)
	require.Equal(t, "pipeline: {}", uses[0].Input["yaml_content"])
	require.Equal(t, "get_transform_details", uses[1].Name)
}

func TestTruncateResult(t *testing.T) {
	require.Equal(t, "short", truncateResult("short", 100))
	require.Equal(t, "unlimited", truncateResult("unlimited", 0))

	long := strings.Repeat("x", 200)
	out := truncateResult(long, 50)
	require.True(t, strings.HasPrefix(out, strings.Repeat("x", 50)))
	require.Contains(t, out, "[Result truncated from 200 to 50 characters")
}

func TestFilterTools(t *testing.T) {
	tools := []mcpclient.Tool{
		{Name: "validate_beam_yaml"},
		{Name: "check_dataflow_job_status"},
	}

	require.Equal(t, tools, filterTools(tools, nil))

	preset, err := GetPreset("pipeline")
	require.NoError(t, err)
	kept := filterTools(tools, preset.AllowsTool)
	require.Len(t, kept, 1)
	require.Equal(t, "validate_beam_yaml", kept[0].Name)
}

func TestToAnthropicTools(t *testing.T) {
	tools := []mcpclient.Tool{
		{
			Name:        "validate_beam_yaml",
			Description: "Validate a pipeline document.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"yaml_content": map[string]any{"type": "string"},
				},
			},
		},
	}

	out := toAnthropicTools(tools)
	require.Len(t, out, 1)
	require.Equal(t, "validate_beam_yaml", out[0].OfTool.Name)
	require.Contains(t, out[0].OfTool.InputSchema.Properties, "yaml_content")
}

func TestToGeminiSchema(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source_type": map[string]any{"type": "string", "description": "Data source hint."},
			"limit":       map[string]any{"type": "integer"},
			"transformations": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"source_type"},
	}

	out := toGeminiSchema(schema)
	require.NotNil(t, out)
	require.Len(t, out.Properties, 3)
	require.Equal(t, "Data source hint.", out.Properties["source_type"].Description)
	require.NotNil(t, out.Properties["transformations"].Items)
	require.Equal(t, []string{"source_type"}, out.Required)
}

func TestPresets(t *testing.T) {
	require.Equal(t, []string{"coordinator", "guide", "jobs", "pipeline"}, PresetNames())

	pipeline, err := GetPreset("pipeline")
	require.NoError(t, err)
	require.True(t, pipeline.AllowsTool("validate_beam_yaml"))
	require.False(t, pipeline.AllowsTool("cancel_dataflow_job"))

	coordinator, err := GetPreset("coordinator")
	require.NoError(t, err)
	require.True(t, coordinator.AllowsTool("cancel_dataflow_job"), "coordinator has no tool filter")

	_, err = GetPreset("nope")
	require.ErrorContains(t, err, "unknown agent")
}

func TestPromptsNameOnlyValidTransforms(t *testing.T) {
	require.Contains(t, PipelinePrompt, "LogForTesting")
	require.Contains(t, PipelinePrompt, "MapToFields")
	require.Contains(t, JobsPrompt, "default limit is 50")
}
