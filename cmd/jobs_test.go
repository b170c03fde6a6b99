package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/armon-kel/beamctl/utils/gcloud"
)

type stubRunner struct {
	stdout string
	args   []string
}

func (r *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.args = args
	return []byte(r.stdout), nil, nil
}

func withStubGcloud(t *testing.T, stdout string) *stubRunner {
	t.Helper()
	runner := &stubRunner{stdout: stdout}
	orig := newGcloudClient
	newGcloudClient = func() *gcloud.Client {
		return gcloud.NewClientWithRunner(runner)
	}
	t.Cleanup(func() { newGcloudClient = orig })
	return runner
}

func TestJobsStatusCommand(t *testing.T) {
	runner := withStubGcloud(t, `{"id": "j1", "name": "demo", "currentState": "JOB_STATE_RUNNING", "type": "JOB_TYPE_STREAMING", "createTime": "2026-01-01T00:00:00Z", "location": "us-central1"}`)

	out := executeCommand(t, "jobs", "status", "j1", "--project", "proj-1", "--region", "us-central1")
	if !strings.Contains(out, "JOB_STATE_RUNNING") {
		t.Errorf("status output missing job state:\n%s", out)
	}
	if got := strings.Join(runner.args[:3], " "); got != "dataflow jobs describe" {
		t.Errorf("unexpected gcloud invocation: %v", runner.args)
	}
}

func TestJobsListCommand(t *testing.T) {
	runner := withStubGcloud(t, `[]`)

	out := executeCommand(t, "jobs", "list", "--project", "proj-1", "--status", "active")
	if !strings.Contains(out, "No Dataflow jobs found with status 'active'.") {
		t.Errorf("unexpected list output:\n%s", out)
	}
	found := false
	for i, arg := range runner.args {
		if arg == "--status" && i+1 < len(runner.args) && runner.args[i+1] == "active" {
			found = true
		}
	}
	if !found {
		t.Errorf("status filter not passed to gcloud: %v", runner.args)
	}
}

func TestJobsCancelCommand(t *testing.T) {
	runner := withStubGcloud(t, "Cancelled job [j2]")

	out := executeCommand(t, "jobs", "cancel", "j2", "--project", "proj-1", "--region", "us-central1")
	if !strings.Contains(out, "j2") {
		t.Errorf("cancel output missing job id:\n%s", out)
	}
	if runner.args[2] != "cancel" {
		t.Errorf("unexpected gcloud invocation: %v", runner.args)
	}
}
