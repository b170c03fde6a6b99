package fileutil

import (
	"fmt"
	"os"
)

// MaxPipelineFileSize caps pipeline documents read from disk (10MB). Real
// pipeline documents are a few kilobytes; anything near the cap is almost
// certainly the wrong file.
const MaxPipelineFileSize = 10 * 1024 * 1024

// CheckFileSize verifies that a file is within the pipeline document size cap.
func CheckFileSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error checking file size: %w", err)
	}
	if info.Size() > MaxPipelineFileSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", info.Size(), MaxPipelineFileSize)
	}
	return nil
}

// ReadPipelineFile reads a pipeline document after checking its size.
func ReadPipelineFile(path string) ([]byte, error) {
	if err := CheckFileSize(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}
