package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Preset names a role with its instructions and the tools it may call. An
// empty ToolFilter allows every tool the server exposes.
type Preset struct {
	Name        string
	Description string
	System      string
	ToolFilter  []string
}

var presets = map[string]Preset{
	"pipeline": {
		Name:        "pipeline",
		Description: "Generates and validates Beam YAML pipelines.",
		System:      PipelinePrompt,
		ToolFilter: []string{
			"get_beam_yaml_transforms",
			"get_transform_details",
			"validate_beam_yaml",
			"generate_beam_yaml_pipeline",
			"get_io_connector_schema",
		},
	},
	"guide": {
		Name:        "guide",
		Description: "Walks through pipeline creation step by step.",
		System:      GuidePrompt,
		ToolFilter: []string{
			"get_beam_yaml_transforms",
			"get_transform_details",
			"validate_beam_yaml",
			"generate_beam_yaml_pipeline",
			"get_io_connector_schema",
		},
	},
	"jobs": {
		Name:        "jobs",
		Description: "Monitors and manages Dataflow jobs.",
		System:      JobsPrompt,
		ToolFilter: []string{
			"check_dataflow_job_status",
			"list_dataflow_jobs",
			"get_dataflow_job_logs",
			"cancel_dataflow_job",
			"drain_dataflow_job",
			"submit_yaml_pipeline",
			"dry_run_yaml_pipeline",
		},
	},
	"coordinator": {
		Name:        "coordinator",
		Description: "Routes between pipeline authoring and job management.",
		System:      CoordinatorPrompt,
	},
}

// GetPreset looks up an agent preset by name.
func GetPreset(name string) (Preset, error) {
	preset, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown agent %q, available: %s", name, strings.Join(PresetNames(), ", "))
	}
	return preset, nil
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllowsTool reports whether the preset may call the named tool.
func (p Preset) AllowsTool(name string) bool {
	if len(p.ToolFilter) == 0 {
		return true
	}
	for _, allowed := range p.ToolFilter {
		if allowed == name {
			return true
		}
	}
	return false
}
