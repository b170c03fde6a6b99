package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultRegion is used when a job operation does not specify a region.
const DefaultRegion = "us-central1"

// JobParams identifies a single Dataflow job.
type JobParams struct {
	JobID   string
	Project string
	Region  string
}

func (p *JobParams) applyDefaults() {
	if p.Region == "" {
		p.Region = DefaultRegion
	}
}

// JobInfo is the subset of job metadata surfaced in status reports.
type JobInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	State      string `json:"currentState"`
	Type       string `json:"type"`
	CreateTime string `json:"createTime"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Location   string `json:"location"`
}

// JobStatus describes a job and formats a status report, including the raw
// JSON payload for detailed analysis.
func (c *Client) JobStatus(ctx context.Context, params JobParams) (string, error) {
	params.applyDefaults()
	if params.JobID == "" || params.Project == "" {
		return "", fmt.Errorf("job_id and project_id are required")
	}

	stdout, stderr, err := c.run(ctx,
		"dataflow", "jobs", "describe", params.JobID,
		"--format=json",
		"--project", params.Project,
		"--region", params.Region,
	)
	if err != nil {
		return "", fmt.Errorf("failed to get job status for %s:\n%s", params.JobID, stderr)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return "", fmt.Errorf("failed to parse gcloud response: %w", err)
	}

	var info JobInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return "", fmt.Errorf("failed to parse gcloud response: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Dataflow Job Status Report:\n\n")
	fmt.Fprintf(&sb, "Job ID: %s\n", orNA(info.ID))
	fmt.Fprintf(&sb, "Job Name: %s\n", orNA(info.Name))
	fmt.Fprintf(&sb, "Current State: %s\n", orDefault(info.State, "UNKNOWN"))
	fmt.Fprintf(&sb, "Job Type: %s\n", orNA(info.Type))
	fmt.Fprintf(&sb, "Location: %s\n", orNA(info.Location))
	fmt.Fprintf(&sb, "Created: %s\n", orNA(info.CreateTime))
	fmt.Fprintf(&sb, "Started: %s\n", orNA(info.StartTime))
	fmt.Fprintf(&sb, "Ended: %s\n", orNA(info.EndTime))

	if errInfo := failedStageInfo(info.State, raw); errInfo != "" {
		fmt.Fprintf(&sb, "\nError Information:%s", errInfo)
	}

	pretty, _ := json.MarshalIndent(raw, "", "  ")
	fmt.Fprintf(&sb, "\n\nRaw Job Data (JSON):\n%s", pretty)
	return sb.String(), nil
}

// failedStageInfo collects stage failure details for failed jobs.
func failedStageInfo(state string, raw map[string]interface{}) string {
	if state != "JOB_STATE_FAILED" && state != "FAILED" {
		return ""
	}

	var sb strings.Builder
	if stages, ok := raw["stageStates"].([]interface{}); ok {
		for _, s := range stages {
			stage, ok := s.(map[string]interface{})
			if !ok {
				continue
			}
			if stage["executionState"] == "JOB_STATE_FAILED" {
				name, _ := stage["name"].(string)
				if name == "" {
					name = "Unknown"
				}
				fmt.Fprintf(&sb, "\nStage '%s' failed", name)
			}
		}
	}
	return sb.String()
}

// ListParams controls job listing.
type ListParams struct {
	Project string
	Region  string
	Status  string // active, terminated, failed, or all
	Limit   int
}

// ListJobs lists Dataflow jobs with optional status filtering. There is no
// native failed filter, so failed jobs are fetched as terminated and filtered
// locally.
func (c *Client) ListJobs(ctx context.Context, params ListParams) (string, error) {
	if params.Project == "" {
		return "", fmt.Errorf("project_id is required")
	}
	if params.Region == "" {
		params.Region = DefaultRegion
	}
	if params.Status == "" {
		params.Status = "all"
	}
	if params.Limit <= 0 {
		params.Limit = 50
	}

	args := []string{
		"dataflow", "jobs", "list",
		"--format=json",
		fmt.Sprintf("--limit=%d", params.Limit),
		"--project", params.Project,
		"--region", params.Region,
	}

	filterFailed := params.Status == "failed"
	if filterFailed {
		args = append(args, "--status", "terminated")
	} else if params.Status != "all" {
		args = append(args, "--status", params.Status)
	}

	stdout, stderr, err := c.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to list Dataflow jobs:\n%s", stderr)
	}

	var jobs []map[string]interface{}
	if err := json.Unmarshal(stdout, &jobs); err != nil {
		return "", fmt.Errorf("failed to parse gcloud response: %w", err)
	}

	if filterFailed {
		var failed []map[string]interface{}
		for _, job := range jobs {
			state, _ := job["state"].(string)
			if state := strings.ToUpper(state); state == "JOB_STATE_FAILED" || state == "FAILED" {
				failed = append(failed, job)
			}
		}
		jobs = failed
	}

	if len(jobs) == 0 {
		return fmt.Sprintf("No Dataflow jobs found with status '%s'.", params.Status), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dataflow Jobs (status: %s, showing up to %d jobs):\n\n", params.Status, params.Limit)
	for _, job := range jobs {
		fmt.Fprintf(&sb, "- Job ID: %s\n", stringField(job, "id"))
		fmt.Fprintf(&sb, "  Name: %s\n", stringField(job, "name"))
		fmt.Fprintf(&sb, "  State: %s\n", orDefault(stringField(job, "state"), "UNKNOWN"))
		fmt.Fprintf(&sb, "  Type: %s\n", stringField(job, "type"))
		fmt.Fprintf(&sb, "  Created: %s\n\n", stringField(job, "createTime"))
	}
	return sb.String(), nil
}

// LogsParams controls job log retrieval.
type LogsParams struct {
	JobID    string
	Project  string
	Severity string // minimum severity, defaults to INFO
}

// JobLogs reads recent log entries for a job via gcloud logging. The logging
// surface has no region parameter; severity is part of the filter query.
func (c *Client) JobLogs(ctx context.Context, params LogsParams) (string, error) {
	if params.JobID == "" || params.Project == "" {
		return "", fmt.Errorf("job_id and project_id are required")
	}
	if params.Severity == "" {
		params.Severity = "INFO"
	}

	filter := fmt.Sprintf(
		`resource.type="dataflow_step" AND resource.labels.job_id="%s" AND severity>=%s`,
		params.JobID, params.Severity)

	stdout, stderr, err := c.run(ctx,
		"logging", "read", filter,
		"--format=json",
		"--limit=50",
		"--project", params.Project,
	)
	if err != nil {
		return "", fmt.Errorf("failed to get logs for job %s:\n%s", params.JobID, stderr)
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal(stdout, &entries); err != nil {
		return "", fmt.Errorf("failed to parse gcloud response: %w", err)
	}

	if len(entries) == 0 {
		return fmt.Sprintf("No logs found for job %s with severity %s or higher.",
			params.JobID, params.Severity), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dataflow Job Logs for %s (severity: %s+):\n\n", params.JobID, params.Severity)
	for _, entry := range entries {
		message := stringField(entry, "textPayload")
		if message == "" {
			if payload, ok := entry["jsonPayload"].(map[string]interface{}); ok {
				message = stringField(payload, "message")
			}
		}
		if message == "" {
			message = "No message"
		}
		fmt.Fprintf(&sb, "[%s] %s: %s\n",
			stringField(entry, "timestamp"),
			orDefault(stringField(entry, "severity"), "UNKNOWN"),
			message)
	}
	return sb.String(), nil
}

// CancelJob requests immediate cancellation of a running job.
func (c *Client) CancelJob(ctx context.Context, params JobParams) (string, error) {
	params.applyDefaults()
	if params.JobID == "" || params.Project == "" {
		return "", fmt.Errorf("job_id and project_id are required")
	}

	stdout, stderr, err := c.run(ctx,
		"dataflow", "jobs", "cancel", params.JobID,
		"--project", params.Project,
		"--region", params.Region,
	)
	if err != nil {
		return "", fmt.Errorf("failed to cancel job %s:\n%s", params.JobID, stderr)
	}

	return fmt.Sprintf(`Dataflow Job Cancellation Request:

Job ID: %s
Project: %s
Region: %s
Status: Cancellation request submitted successfully

Note: The job may take some time to fully cancel. Check the job status to
monitor the cancellation progress.

Command Output:
%s`, params.JobID, params.Project, params.Region, stdout), nil
}

// DrainJob requests a graceful shutdown of a streaming job. Unlike cancel,
// draining lets the job finish processing in-flight data first.
func (c *Client) DrainJob(ctx context.Context, params JobParams) (string, error) {
	params.applyDefaults()
	if params.JobID == "" || params.Project == "" {
		return "", fmt.Errorf("job_id and project_id are required")
	}

	stdout, stderr, err := c.run(ctx,
		"dataflow", "jobs", "drain", params.JobID,
		"--project", params.Project,
		"--region", params.Region,
	)
	if err != nil {
		return "", fmt.Errorf("failed to drain job %s:\n%s", params.JobID, stderr)
	}

	return fmt.Sprintf(`Dataflow Job Drain Request:

Job ID: %s
Project: %s
Region: %s
Status: Drain request submitted successfully

Note: Draining allows the streaming job to finish processing current data and
stop gracefully. Check the job status to monitor the drain progress.

Command Output:
%s`, params.JobID, params.Project, params.Region, stdout), nil
}

func stringField(m map[string]interface{}, key string) string {
	value, _ := m[key].(string)
	return value
}

func orNA(value string) string {
	return orDefault(value, "N/A")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
