package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs the root command with the given args and returns the
// captured output.
func executeCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	out := executeCommand(t, "version")
	if !strings.HasPrefix(out, "beamctl ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestTransformsList(t *testing.T) {
	out := executeCommand(t, "transforms", "list")
	for _, want := range []string{"ReadFromPubSub", "MapToFields", "WriteToBigQuery"} {
		if !strings.Contains(out, want) {
			t.Errorf("transforms list missing %s:\n%s", want, out)
		}
	}
}

func TestTransformsListCategory(t *testing.T) {
	out := executeCommand(t, "transforms", "list", "--category", "io")
	if !strings.Contains(out, "ReadFromPubSub") {
		t.Errorf("io category missing ReadFromPubSub:\n%s", out)
	}
	if strings.Contains(out, "MapToFields") {
		t.Errorf("io category should not list MapToFields:\n%s", out)
	}
}

func TestTransformsDescribe(t *testing.T) {
	out := executeCommand(t, "transforms", "describe", "MapToFields")
	if !strings.Contains(out, "MapToFields") {
		t.Errorf("describe output missing transform name:\n%s", out)
	}
}

func TestTransformsSchema(t *testing.T) {
	out := executeCommand(t, "transforms", "schema", "ReadFromPubSub")
	if !strings.Contains(out, "ReadFromPubSub") {
		t.Errorf("schema output missing connector name:\n%s", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	out := executeCommand(t, "generate", "--source", "pubsub", "--sink", "bigquery", "--transform", "filter")
	for _, want := range []string{
		"Generated Beam YAML Pipeline:",
		"ReadFromPubSub",
		"WriteToBigQuery",
		"Filter",
		"Next Steps:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generate output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	pipelineYAML := `pipeline:
  transforms:
    - name: ReadData
      type: ReadFromPubSub
      config:
        topic: projects/p/topics/t
    - name: WriteData
      type: WriteToBigQuery
      input: ReadData
      config:
        table: p.d.t
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(pipelineYAML), 0644); err != nil {
		t.Fatal(err)
	}

	out := executeCommand(t, "validate", path)
	if !strings.Contains(out, "YAML pipeline validation passed!") {
		t.Errorf("unexpected validate output:\n%s", out)
	}
}

func TestGenerateSkipsUnknownHints(t *testing.T) {
	out := executeCommand(t, "generate", "--source", "pubsub", "--sink", "carrier-pigeon")
	if !strings.Contains(out, "ReadFromPubSub") {
		t.Errorf("generate output missing source step:\n%s", out)
	}
	if strings.Contains(out, "carrier-pigeon") {
		t.Errorf("unknown sink hint leaked into output:\n%s", out)
	}
}
