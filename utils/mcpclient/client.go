package mcpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultRequestTimeout = 120 * time.Second
	maxCallRetries        = 4
)

var clientImplementation = &mcp.Implementation{
	Name:    "beamctl",
	Version: "1.0.0",
}

// Config selects the server transport: Command spawns a stdio server
// subprocess, Endpoint connects to a streamable HTTP server. Exactly one of
// the two must be set.
type Config struct {
	Logger *slog.Logger

	Command        []string
	Endpoint       string
	RequestTimeout time.Duration
	Token          string // optional bearer token for the HTTP transport
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if len(c.Command) == 0 && c.Endpoint == "" {
		return fmt.Errorf("either a server command or an endpoint is required")
	}
	if len(c.Command) > 0 && c.Endpoint != "" {
		return fmt.Errorf("server command and endpoint are mutually exclusive")
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

// Client is an MCP client session with automatic reconnect on transport
// failures.
type Client struct {
	log       *slog.Logger
	cfg       *Config
	session   *mcp.ClientSession
	sessionMu sync.RWMutex
	mcpClient *mcp.Client
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		log:       cfg.Logger,
		cfg:       &cfg,
		mcpClient: mcp.NewClient(clientImplementation, nil),
	}

	if err := client.connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) transport() mcp.Transport {
	if len(c.cfg.Command) > 0 {
		cmd := exec.Command(c.cfg.Command[0], c.cfg.Command[1:]...)
		return &mcp.CommandTransport{Command: cmd}
	}

	httpClient := &http.Client{Timeout: c.cfg.RequestTimeout}
	if c.cfg.Token != "" {
		httpClient.Transport = &tokenTransport{
			base:  http.DefaultTransport,
			token: c.cfg.Token,
		}
	}
	return &mcp.StreamableClientTransport{
		Endpoint:   c.cfg.Endpoint,
		HTTPClient: httpClient,
	}
}

func (c *Client) connect(ctx context.Context) error {
	session, err := c.mcpClient.Connect(ctx, c.transport(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to MCP server: %w", err)
	}

	c.sessionMu.Lock()
	if c.session != nil {
		c.session.Close()
	}
	c.session = session
	c.sessionMu.Unlock()

	c.log.Debug("mcp/client: connected to server")
	return nil
}

func (c *Client) reconnect(ctx context.Context) error {
	c.log.Warn("mcp/client: attempting to reconnect")
	c.sessionMu.Lock()
	if c.session != nil {
		c.session.Close()
		c.session = nil
	}
	c.sessionMu.Unlock()

	return c.connect(ctx)
}

func (c *Client) currentSession(ctx context.Context) (*mcp.ClientSession, error) {
	c.sessionMu.RLock()
	session := c.session
	c.sessionMu.RUnlock()
	if session != nil {
		return session, nil
	}

	if err := c.reconnect(ctx); err != nil {
		return nil, fmt.Errorf("session not connected and reconnect failed: %w", err)
	}

	c.sessionMu.RLock()
	session = c.session
	c.sessionMu.RUnlock()
	if session == nil {
		return nil, fmt.Errorf("session still not connected after reconnect")
	}
	return session, nil
}

// isConnectionError reports whether an error warrants a reconnect.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection closed") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "client is closing") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset")
}

// Tool is the subset of tool metadata agents need for tool declarations.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	session, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	result, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		if !isConnectionError(err) {
			return nil, err
		}
		c.log.Warn("mcp/client: connection error, attempting reconnect", "error", err)
		if reconnectErr := c.reconnect(ctx); reconnectErr != nil {
			return nil, fmt.Errorf("failed to reconnect: %w (original error: %w)", reconnectErr, err)
		}
		session, err = c.currentSession(ctx)
		if err != nil {
			return nil, err
		}
		result, err = session.ListTools(ctx, &mcp.ListToolsParams{})
		if err != nil {
			return nil, fmt.Errorf("failed after reconnect: %w", err)
		}
	}

	tools := make([]Tool, 0, len(result.Tools))
	for _, t := range result.Tools {
		inputSchema, _ := t.InputSchema.(map[string]any)
		tools = append(tools, Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: inputSchema,
		})
	}

	c.log.Debug("mcp/client: found tools", "count", len(tools))
	return tools, nil
}

// CallToolText calls a tool and flattens its text content. The second return
// value reports whether the server flagged the result as an error.
func (c *Client) CallToolText(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	c.log.Debug("mcp/client: calling tool", "name", name)

	result, err := backoff.Retry(ctx, func() (*mcp.CallToolResult, error) {
		session, err := c.currentSession(ctx)
		if err != nil {
			return nil, err
		}

		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		})
		if err != nil && isConnectionError(err) {
			c.log.Warn("mcp/client: connection error, attempting reconnect", "error", err)
			if reconnectErr := c.reconnect(ctx); reconnectErr != nil {
				return nil, fmt.Errorf("failed to reconnect: %w (original error: %w)", reconnectErr, err)
			}
			session, sessErr := c.currentSession(ctx)
			if sessErr != nil {
				return nil, sessErr
			}
			return session.CallTool(ctx, &mcp.CallToolParams{
				Name:      name,
				Arguments: args,
			})
		}
		return result, err
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxCallRetries))
	if err != nil {
		return "", true, fmt.Errorf("failed to call tool after retries: %w", err)
	}

	var textParts []string
	for _, content := range result.Content {
		if textContent, ok := content.(*mcp.TextContent); ok {
			textParts = append(textParts, textContent.Text)
		}
	}
	text := strings.Join(textParts, "\n")

	if result.IsError {
		c.log.Warn("mcp/client: tool returned error result", "error", text)
	} else {
		c.log.Debug("mcp/client: called tool", "chars", len(text))
	}
	return text, result.IsError, nil
}

func (c *Client) Close() error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

// tokenTransport adds the Authorization header to every request.
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.token))
	return t.base.RoundTrip(req)
}
