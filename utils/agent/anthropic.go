package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/armon-kel/beamctl/utils/mcpclient"
)

const (
	defaultMaxToolResultLen = 20000
	defaultMaxRounds        = 10
	defaultMaxTokens        = 4096
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = anthropic.ModelClaudeSonnet4_5_20250929

type AnthropicAgentConfig struct {
	Logger           *slog.Logger
	Client           anthropic.Client
	Model            anthropic.Model
	MaxTokens        int64
	MaxRounds        int
	MaxToolResultLen int
	System           string
	// ToolFilter restricts which MCP tools are exposed to the model. Nil
	// exposes everything.
	ToolFilter func(string) bool
}

func (c *AnthropicAgentConfig) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultAnthropicModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.MaxRounds == 0 {
		c.MaxRounds = defaultMaxRounds
	}
	if c.MaxToolResultLen == 0 {
		c.MaxToolResultLen = defaultMaxToolResultLen
	}
}

// AnthropicAgent runs the tool-calling loop against Claude models.
type AnthropicAgent struct {
	cfg *AnthropicAgentConfig
}

func NewAnthropicAgent(cfg *AnthropicAgentConfig) *AnthropicAgent {
	cfg.applyDefaults()
	return &AnthropicAgent{cfg: cfg}
}

type anthropicMessage struct {
	msg anthropic.MessageParam
}

func (m anthropicMessage) ToParam() any {
	return m.msg
}

// NewUserMessage wraps a user text message for the Anthropic agent.
func NewUserMessage(text string) Message {
	return anthropicMessage{msg: anthropic.NewUserMessage(anthropic.NewTextBlock(text))}
}

type anthropicResponse struct {
	resp *anthropic.Message
}

func (r anthropicResponse) Content() []ContentBlock {
	blocks := make([]ContentBlock, len(r.resp.Content))
	for i, blk := range r.resp.Content {
		blocks[i] = anthropicContentBlock{blk}
	}
	return blocks
}

func (r anthropicResponse) ToMessage() Message {
	return anthropicMessage{msg: r.resp.ToParam()}
}

type anthropicContentBlock struct {
	blk anthropic.ContentBlockUnion
}

func (b anthropicContentBlock) AsText() (string, bool) {
	text := b.blk.AsText()
	if text.Text == "" {
		return "", false
	}
	return text.Text, true
}

func (b anthropicContentBlock) AsToolUse() (string, string, []byte, bool) {
	tu := b.blk.AsToolUse()
	if tu.ID == "" || tu.Name == "" {
		return "", "", nil, false
	}
	return tu.ID, tu.Name, tu.Input, true
}

// Run executes the tool-calling loop until the model stops requesting tools
// or the round limit is reached.
func (a *AnthropicAgent) Run(ctx context.Context, client *mcpclient.Client, initialMessages []Message, output io.Writer) (*RunResult, error) {
	msgs := make([]anthropic.MessageParam, len(initialMessages))
	for i, msg := range initialMessages {
		msgs[i] = msg.ToParam().(anthropic.MessageParam)
	}

	fullConversation := make([]Message, len(initialMessages))
	copy(fullConversation, initialMessages)

	mcpTools, err := client.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tools: %w", err)
	}
	tools := toAnthropicTools(filterTools(mcpTools, a.cfg.ToolFilter))

	for round := 0; round < a.cfg.MaxRounds; round++ {
		roundNum := round + 1
		if a.cfg.Logger != nil {
			a.cfg.Logger.Debug("agent: starting round", "round", roundNum, "max_rounds", a.cfg.MaxRounds)
		}

		params := anthropic.MessageNewParams{
			Model:     a.cfg.Model,
			MaxTokens: a.cfg.MaxTokens,
			Messages:  msgs,
			Tools:     tools,
		}
		if a.cfg.System != "" {
			params.System = []anthropic.TextBlockParam{{Text: a.cfg.System}}
		}

		resp, err := a.cfg.Client.Messages.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to get response: %w", err)
		}

		response := anthropicResponse{resp: resp}
		assistantMsg := response.ToMessage()
		msgs = append(msgs, assistantMsg.ToParam().(anthropic.MessageParam))
		fullConversation = append(fullConversation, assistantMsg)

		toolUses := extractToolUses(response.Content())
		if len(toolUses) == 0 {
			var finalText string
			for _, blk := range response.Content() {
				if text, ok := blk.AsText(); ok {
					finalText += text
					if output != nil {
						fmt.Fprint(output, text)
					}
				}
			}
			if output != nil {
				fmt.Fprintln(output)
			}
			return &RunResult{
				FinalText:        strings.TrimSpace(finalText),
				FullConversation: fullConversation,
			}, nil
		}

		if a.cfg.Logger != nil {
			a.cfg.Logger.Debug("agent: executing tool calls", "round", roundNum, "count", len(toolUses))
		}

		toolResults := executeTools(ctx, client, toolUses, a.cfg.MaxToolResultLen)
		toolResultMsg := anthropic.NewUserMessage(toolResults...)
		msgs = append(msgs, toolResultMsg)
		fullConversation = append(fullConversation, anthropicMessage{msg: toolResultMsg})
	}

	return nil, fmt.Errorf("exceeded maximum rounds (%d)", a.cfg.MaxRounds)
}

// toAnthropicTools converts MCP tool metadata to Anthropic tool parameters.
func toAnthropicTools(tools []mcpclient.Tool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		props, _ := t.InputSchema["properties"].(map[string]any)
		required, _ := t.InputSchema["required"].([]string)
		toolParam := anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.Opt(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: props,
				Required:   required,
			},
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return out
}

// executeTools runs tool calls in parallel and returns result blocks in the
// request order.
func executeTools(ctx context.Context, client *mcpclient.Client, toolUses []ToolUse, maxLen int) []anthropic.ContentBlockParamUnion {
	type toolResult struct {
		out   string
		isErr bool
	}

	results := make([]toolResult, len(toolUses))
	var wg sync.WaitGroup
	for i, tu := range toolUses {
		wg.Add(1)
		go func(idx int, toolUse ToolUse) {
			defer wg.Done()
			out, isErr, callErr := client.CallToolText(ctx, toolUse.Name, toolUse.Input)
			if callErr != nil {
				out = fmt.Sprintf("%s\n(error: %v)", out, callErr)
				isErr = true
			}
			results[idx] = toolResult{out: out, isErr: isErr}
		}(i, tu)
	}
	wg.Wait()

	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(toolUses))
	for i, result := range results {
		out := truncateResult(result.out, maxLen)
		blocks = append(blocks, anthropic.NewToolResultBlock(toolUses[i].ID, out, result.isErr))
	}
	return blocks
}

// truncateResult caps a tool result and appends a notice when content was cut.
func truncateResult(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	return fmt.Sprintf("%s\n\n[Result truncated from %d to %d characters to avoid token limits]",
		text[:maxLen], len(text), maxLen)
}
