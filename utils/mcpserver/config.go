package mcpserver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/armon-kel/beamctl/utils/gcloud"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)

// Config configures the combined pipeline and job tool server.
type Config struct {
	Logger  *slog.Logger
	Version string

	// Gcloud backs the Dataflow job tools. When nil the job tools are not
	// registered and the server only exposes the pipeline tools.
	Gcloud *gcloud.Client

	// DefaultProject and DefaultRegion fill in job tool calls that omit them.
	DefaultProject string
	DefaultRegion  string

	ListenAddr        string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	AllowedTokens     []string // bearer tokens accepted on the HTTP transport
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	return nil
}
