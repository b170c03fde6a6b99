package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/armon-kel/beamctl/utils/gcloud"
)

type JobStatusInput struct {
	JobID     string `json:"job_id" jsonschema:"The Dataflow job ID."`
	ProjectID string `json:"project_id,omitempty" jsonschema:"The GCP project ID."`
	Region    string `json:"region,omitempty" jsonschema:"The Dataflow region. Defaults to us-central1."`
}

type ListJobsInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"The GCP project ID."`
	Region    string `json:"region,omitempty" jsonschema:"The Dataflow region. Defaults to us-central1."`
	Status    string `json:"status,omitempty" jsonschema:"Filter by status: active, terminated, failed, or all."`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of jobs to return. Defaults to 50."`
}

type JobLogsInput struct {
	JobID     string `json:"job_id" jsonschema:"The Dataflow job ID."`
	ProjectID string `json:"project_id,omitempty" jsonschema:"The GCP project ID."`
	Severity  string `json:"severity,omitempty" jsonschema:"Minimum log severity: DEFAULT, INFO, WARNING, ERROR. Defaults to INFO."`
}

type SubmitInput struct {
	YAMLContent string `json:"yaml_content" jsonschema:"The Beam YAML pipeline document to submit."`
	JobName     string `json:"job_name" jsonschema:"Dataflow job name: lowercase letters, digits, and dashes."`
	ProjectID   string `json:"project_id,omitempty" jsonschema:"The GCP project ID."`
	Region      string `json:"region,omitempty" jsonschema:"The Dataflow region. Defaults to us-central1."`
}

type DryRunInput struct {
	YAMLContent string `json:"yaml_content" jsonschema:"The Beam YAML pipeline document to dry-run."`
}

func registerJobTools(log *slog.Logger, server *mcp.Server, client *gcloud.Client, defaultProject, defaultRegion string) error {
	project := func(in string) string {
		if in != "" {
			return in
		}
		return defaultProject
	}
	region := func(in string) string {
		if in != "" {
			return in
		}
		return defaultRegion
	}

	if err := addTextTool(log, server, "check_dataflow_job_status",
		"Get the current status of a Dataflow job, including failure details for failed jobs.",
		func(ctx context.Context, in JobStatusInput) (string, error) {
			return client.JobStatus(ctx, gcloud.JobParams{
				JobID:   in.JobID,
				Project: project(in.ProjectID),
				Region:  region(in.Region),
			})
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "list_dataflow_jobs",
		"List Dataflow jobs in a project, optionally filtered by status (active, terminated, failed, all).",
		func(ctx context.Context, in ListJobsInput) (string, error) {
			return client.ListJobs(ctx, gcloud.ListParams{
				Project: project(in.ProjectID),
				Region:  region(in.Region),
				Status:  in.Status,
				Limit:   in.Limit,
			})
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "get_dataflow_job_logs",
		"Read recent log entries for a Dataflow job at or above a minimum severity.",
		func(ctx context.Context, in JobLogsInput) (string, error) {
			return client.JobLogs(ctx, gcloud.LogsParams{
				JobID:    in.JobID,
				Project:  project(in.ProjectID),
				Severity: in.Severity,
			})
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "cancel_dataflow_job",
		"Cancel a running Dataflow job immediately.",
		func(ctx context.Context, in JobStatusInput) (string, error) {
			return client.CancelJob(ctx, gcloud.JobParams{
				JobID:   in.JobID,
				Project: project(in.ProjectID),
				Region:  region(in.Region),
			})
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "drain_dataflow_job",
		"Drain a streaming Dataflow job, letting it finish in-flight data before stopping.",
		func(ctx context.Context, in JobStatusInput) (string, error) {
			return client.DrainJob(ctx, gcloud.JobParams{
				JobID:   in.JobID,
				Project: project(in.ProjectID),
				Region:  region(in.Region),
			})
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "submit_yaml_pipeline",
		"Submit a Beam YAML pipeline as a Dataflow job. The job name and region are validated before submission.",
		func(ctx context.Context, in SubmitInput) (string, error) {
			result, err := client.Submit(ctx, gcloud.SubmitParams{
				YAML:    in.YAMLContent,
				JobName: in.JobName,
				Project: project(in.ProjectID),
				Region:  region(in.Region),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(`Dataflow Job Submitted:

Job Name: %s
Job ID: %s
Console: %s

Command Output:
%s`, result.JobName, orUnknown(result.JobID), orUnknown(result.ConsoleURL), result.RawOutput), nil
		}); err != nil {
		return err
	}

	if err := addTextTool(log, server, "dry_run_yaml_pipeline",
		"Run the Beam YAML interpreter in dry-run mode to check a pipeline without executing it.",
		func(ctx context.Context, in DryRunInput) (string, error) {
			result, err := client.DryRun(ctx, in.YAMLContent)
			if err != nil {
				return "", err
			}
			if result.Passed {
				return fmt.Sprintf("Dry run passed.\n\n%s", result.Output), nil
			}
			return fmt.Sprintf("Dry run failed.\n\n%s", result.Output), nil
		}); err != nil {
		return err
	}

	return nil
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
