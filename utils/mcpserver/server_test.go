package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/armon-kel/beamctl/utils/gcloud"
)

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

type stubRunner struct {
	stdout string
	stderr string
	err    error
}

func (s *stubRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	return []byte(s.stdout), []byte(s.stderr), s.err
}

// testSession connects an in-memory client to a freshly built server and
// returns the client session.
func testSession(t *testing.T, cfg Config) *mcp.ClientSession {
	t.Helper()

	s, err := New(cfg)
	require.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := t.Context()
	serverSession, err := s.mcp.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func callToolText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()

	result, err := session.CallTool(t.Context(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)

	out, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok, "expected structured output, got %T", result.StructuredContent)
	report, ok := out["report"].(string)
	require.True(t, ok, "expected report field, got %v", out)
	return report
}

func TestConfigValidate(t *testing.T) {
	t.Run("requires logger", func(t *testing.T) {
		cfg := Config{}
		require.Error(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg := Config{Logger: testLogger(t)}
		require.NoError(t, cfg.Validate())
		require.Equal(t, "dev", cfg.Version)
		require.Equal(t, defaultReadHeaderTimeout, cfg.ReadHeaderTimeout)
		require.Equal(t, defaultShutdownTimeout, cfg.ShutdownTimeout)
	})
}

func TestServerExposesTools(t *testing.T) {
	session := testSession(t, Config{
		Logger: testLogger(t),
		Gcloud: gcloud.NewClientWithRunner(&stubRunner{stdout: "{}"}),
	})

	result, err := session.ListTools(t.Context(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"get_beam_yaml_transforms",
		"get_transform_details",
		"validate_beam_yaml",
		"generate_beam_yaml_pipeline",
		"get_io_connector_schema",
		"check_dataflow_job_status",
		"list_dataflow_jobs",
		"get_dataflow_job_logs",
		"cancel_dataflow_job",
		"drain_dataflow_job",
		"submit_yaml_pipeline",
		"dry_run_yaml_pipeline",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestServerWithoutGcloudOmitsJobTools(t *testing.T) {
	session := testSession(t, Config{Logger: testLogger(t)})

	result, err := session.ListTools(t.Context(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	for _, tool := range result.Tools {
		require.NotContains(t, tool.Name, "dataflow", "job tool registered without a gcloud client")
	}
	require.Len(t, result.Tools, 5)
}

func TestPipelineToolCalls(t *testing.T) {
	session := testSession(t, Config{Logger: testLogger(t)})

	t.Run("list transforms", func(t *testing.T) {
		report := callToolText(t, session, "get_beam_yaml_transforms", map[string]any{})
		require.Contains(t, report, "Available Beam YAML Transforms:")
		require.Contains(t, report, "Filter")
		require.Contains(t, report, "ReadFromBigQuery")
	})

	t.Run("list io category", func(t *testing.T) {
		report := callToolText(t, session, "get_beam_yaml_transforms", map[string]any{
			"category": "io",
		})
		require.Contains(t, report, "ReadFromText")
		require.NotContains(t, report, "AnomalyDetection")
	})

	t.Run("transform details", func(t *testing.T) {
		report := callToolText(t, session, "get_transform_details", map[string]any{
			"transform_name": "Filter",
		})
		require.Contains(t, report, "Filter")
		require.Contains(t, report, "condition")
	})

	t.Run("details soft miss", func(t *testing.T) {
		report := callToolText(t, session, "get_transform_details", map[string]any{
			"transform_name": "NoSuchTransform",
		})
		require.Contains(t, report, "not found in local cache")
	})

	t.Run("validate", func(t *testing.T) {
		report := callToolText(t, session, "validate_beam_yaml", map[string]any{
			"yaml_content": "pipeline:\n  transforms:\n    - name: ReadData\n      type: ReadFromText\n",
		})
		require.Contains(t, report, "validation passed")
	})

	t.Run("validate reports errors", func(t *testing.T) {
		report := callToolText(t, session, "validate_beam_yaml", map[string]any{
			"yaml_content": "{: not yaml",
		})
		require.Contains(t, report, "Validation failed:")
	})

	t.Run("generate", func(t *testing.T) {
		report := callToolText(t, session, "generate_beam_yaml_pipeline", map[string]any{
			"source_type":     "bigquery",
			"sink_type":       "text",
			"transformations": []string{"filter"},
		})
		require.Contains(t, report, "Generated Beam YAML Pipeline:")
		require.Contains(t, report, "ReadFromBigQuery")
		require.Contains(t, report, "Next Steps:")
	})

	t.Run("connector schema", func(t *testing.T) {
		report := callToolText(t, session, "get_io_connector_schema", map[string]any{
			"connector_name": "ReadFromPubSub",
		})
		require.Contains(t, report, "ReadFromPubSub")
	})

	t.Run("missing argument becomes report", func(t *testing.T) {
		report := callToolText(t, session, "get_transform_details", map[string]any{
			"transform_name": "",
		})
		require.Contains(t, report, "Error executing get_transform_details:")
	})
}

func TestJobToolCalls(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		session := testSession(t, Config{
			Logger:         testLogger(t),
			Gcloud:         gcloud.NewClientWithRunner(&stubRunner{stdout: `{"id": "job-1", "currentState": "JOB_STATE_DONE"}`}),
			DefaultProject: "my-project",
		})

		report := callToolText(t, session, "check_dataflow_job_status", map[string]any{
			"job_id": "job-1",
		})
		require.Contains(t, report, "Current State: JOB_STATE_DONE")
	})

	t.Run("command failure becomes report", func(t *testing.T) {
		session := testSession(t, Config{
			Logger:         testLogger(t),
			Gcloud:         gcloud.NewClientWithRunner(&stubRunner{stderr: "not found", err: fmt.Errorf("exit status 1")}),
			DefaultProject: "my-project",
		})

		report := callToolText(t, session, "check_dataflow_job_status", map[string]any{
			"job_id": "job-1",
		})
		require.Contains(t, report, "Error executing check_dataflow_job_status:")
		require.Contains(t, report, "not found")
	})

	t.Run("submit validation failure becomes report", func(t *testing.T) {
		session := testSession(t, Config{
			Logger:         testLogger(t),
			Gcloud:         gcloud.NewClientWithRunner(&stubRunner{stdout: "{}"}),
			DefaultProject: "my-project",
		})

		report := callToolText(t, session, "submit_yaml_pipeline", map[string]any{
			"yaml_content": "pipeline: {}",
			"job_name":     "Bad_Name",
		})
		require.Contains(t, report, "Error executing submit_yaml_pipeline:")
		require.Contains(t, report, "is invalid")
	})
}

func TestRunToolRecoversPanic(t *testing.T) {
	out := runTool(testLogger(t), "boom_tool", func() (string, error) {
		panic("unexpected state")
	})
	require.Equal(t, "Error executing boom_tool: unexpected state", out.Report)
}

func TestAuthMiddleware(t *testing.T) {
	s, err := New(Config{
		Logger:        testLogger(t),
		AllowedTokens: []string{"secret-token"},
		ListenAddr:    "127.0.0.1:0",
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			s.http.Handler.ServeHTTP(rr, req)
			require.Equal(t, tt.want, rr.Code)
			require.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}

	t.Run("healthz is open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()
		s.http.Handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "ok\n", rr.Body.String())
	})
}
