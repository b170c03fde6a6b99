package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPipelineFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte("pipeline:\n  transforms: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadPipelineFile(path)
	if err != nil {
		t.Fatalf("ReadPipelineFile() error: %v", err)
	}
	if !strings.Contains(string(data), "transforms") {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestReadPipelineFileMissing(t *testing.T) {
	_, err := ReadPipelineFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
