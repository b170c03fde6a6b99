package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/armon-kel/beamctl/utils/config"
)

// jobNamePattern matches valid Dataflow job names: lowercase letters, digits
// and dashes, starting with a letter, not ending with a dash, at most 63
// characters.
var jobNamePattern = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)

const maxJobNameLength = 63

// allowedRegions is the fixed set of regions jobs may be submitted to.
var allowedRegions = map[string]bool{
	"us-central1":          true,
	"us-east1":             true,
	"us-east4":             true,
	"us-west1":             true,
	"us-west2":             true,
	"europe-west1":         true,
	"europe-west2":         true,
	"europe-west4":         true,
	"asia-east1":           true,
	"asia-northeast1":      true,
	"asia-southeast1":      true,
	"australia-southeast1": true,
}

// AllowedRegions returns the sorted region allow-list.
func AllowedRegions() []string {
	regions := make([]string, 0, len(allowedRegions))
	for region := range allowedRegions {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// SubmitParams holds the deployment parameters for a YAML pipeline.
type SubmitParams struct {
	YAML    string
	JobName string
	Project string
	Region  string
}

// Validate checks the deployment parameters against the job name pattern and
// the region allow-list. Submission parameters are validated strictly, unlike
// pipeline generation hints.
func (p *SubmitParams) Validate() error {
	if strings.TrimSpace(p.YAML) == "" {
		return fmt.Errorf("pipeline YAML is required")
	}
	if p.Project == "" {
		return fmt.Errorf("project_id is required")
	}
	if p.JobName == "" {
		return fmt.Errorf("job name is required")
	}
	if len(p.JobName) > maxJobNameLength {
		return fmt.Errorf("job name must be at most %d characters", maxJobNameLength)
	}
	if !jobNamePattern.MatchString(p.JobName) {
		return fmt.Errorf("job name %q is invalid: must start with a lowercase letter and contain only lowercase letters, digits, and dashes", p.JobName)
	}
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if !allowedRegions[p.Region] {
		return fmt.Errorf("region %q is not in the allowed list: %s", p.Region, strings.Join(AllowedRegions(), ", "))
	}
	return nil
}

// SubmitResult reports the identifiers of a submitted job.
type SubmitResult struct {
	JobID      string
	JobName    string
	ConsoleURL string
	RawOutput  string
}

// Submit stages the pipeline YAML to a temporary file and launches it with
// the gcloud Dataflow YAML runner, returning the job id and console URL.
func (c *Client) Submit(ctx context.Context, params SubmitParams) (*SubmitResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	path, cleanup, err := stagePipelineFile(params.YAML)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	stdout, stderr, err := c.run(ctx,
		"dataflow", "yaml", "run", params.JobName,
		"--yaml-pipeline-file", path,
		"--project", params.Project,
		"--region", params.Region,
		"--format=json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to submit job %s:\n%s", params.JobName, stderr)
	}

	result := &SubmitResult{JobName: params.JobName, RawOutput: string(stdout)}
	result.JobID = extractJobID(stdout)
	if result.JobID != "" {
		result.ConsoleURL = fmt.Sprintf(
			"https://console.cloud.google.com/dataflow/jobs/%s/%s?project=%s",
			params.Region, result.JobID, params.Project)
	}
	return result, nil
}

// extractJobID pulls the job id out of the launch response. The response is
// normally JSON with either a top-level id or a nested job object; raw text
// output with an "id:" line is handled as a fallback.
func extractJobID(output []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(output, &payload); err == nil {
		if id, ok := payload["id"].(string); ok && id != "" {
			return id
		}
		if job, ok := payload["job"].(map[string]interface{}); ok {
			if id, ok := job["id"].(string); ok {
				return id
			}
		}
		return ""
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if rest, found := strings.CutPrefix(line, "id:"); found {
			return strings.Trim(strings.TrimSpace(rest), `"'`)
		}
	}
	return ""
}

// DryRunResult classifies the outcome of a pipeline dry run.
type DryRunResult struct {
	Passed bool
	Output string
}

// DryRun stages the pipeline YAML and runs the Beam YAML interpreter in
// dry-run mode, classifying its exit code as pass or fail.
func (c *Client) DryRun(ctx context.Context, yamlText string) (*DryRunResult, error) {
	if strings.TrimSpace(yamlText) == "" {
		return nil, fmt.Errorf("pipeline YAML is required")
	}

	path, cleanup, err := stagePipelineFile(yamlText)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.runner.Run(runCtx, "python3",
		"-m", "apache_beam.yaml.main",
		"--yaml_pipeline_file", path,
		"--dry_run", "True",
	)
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("dry run timed out after %s", c.timeout)
	}

	output := strings.TrimSpace(string(stdout) + "\n" + string(stderr))
	if err != nil {
		config.DebugLog("Dry run failed: %v", err)
		return &DryRunResult{Passed: false, Output: output}, nil
	}
	return &DryRunResult{Passed: true, Output: output}, nil
}

// stagePipelineFile writes pipeline YAML to a uniquely named temporary file.
func stagePipelineFile(yamlText string) (string, func(), error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("beamctl-pipeline-%s.yaml", uuid.NewString()))
	if err := os.WriteFile(path, []byte(yamlText), 0600); err != nil {
		return "", nil, fmt.Errorf("failed to stage pipeline file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil {
			config.DebugLog("Failed to remove staged pipeline file %s: %v", path, err)
		}
	}
	return path, cleanup, nil
}
