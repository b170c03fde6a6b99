package gcloud

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/armon-kel/beamctl/utils/config"
)

const defaultTimeout = 300 * time.Second

// CommandRunner abstracts subprocess execution so job operations can be
// tested without a gcloud installation.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Timeout returns the gcloud command timeout from the GCLOUD_TIMEOUT
// environment variable (seconds), defaulting to 300 seconds.
func Timeout() time.Duration {
	if raw := os.Getenv("GCLOUD_TIMEOUT"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		config.DebugLog("Ignoring invalid GCLOUD_TIMEOUT value: %s", os.Getenv("GCLOUD_TIMEOUT"))
	}
	return defaultTimeout
}

// Client wraps the gcloud CLI for Dataflow job operations.
type Client struct {
	runner  CommandRunner
	timeout time.Duration
}

// NewClient creates a client that shells out to the real gcloud binary.
func NewClient() *Client {
	return &Client{runner: execRunner{}, timeout: Timeout()}
}

// NewClientWithRunner creates a client with a custom command runner.
func NewClientWithRunner(runner CommandRunner) *Client {
	return &Client{runner: runner, timeout: Timeout()}
}

// run executes a gcloud invocation under the client's timeout.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	config.DebugLog("Running gcloud %v", args)
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	stdout, stderr, err := c.runner.Run(runCtx, "gcloud", args...)
	if runCtx.Err() == context.DeadlineExceeded {
		return stdout, stderr, fmt.Errorf("gcloud command timed out after %s", c.timeout)
	}
	return stdout, stderr, err
}
