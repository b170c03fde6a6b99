package agent

import (
	"context"
	"encoding/json"
	"io"

	"github.com/armon-kel/beamctl/utils/mcpclient"
)

// Message is a provider-agnostic conversation entry.
type Message interface {
	// ToParam converts the message to a provider-specific parameter type.
	ToParam() any
}

// Response is a single LLM reply.
type Response interface {
	Content() []ContentBlock
	// ToMessage converts the response to a Message for the conversation history.
	ToMessage() Message
}

// ContentBlock is one piece of a response: text or a tool call.
type ContentBlock interface {
	AsText() (text string, ok bool)
	AsToolUse() (id, name string, input []byte, ok bool)
}

// ToolUse is a tool invocation requested by the model.
type ToolUse struct {
	ID    string
	Name  string
	Input map[string]any
}

// RunResult is the outcome of a tool-calling loop.
type RunResult struct {
	FinalText string
	// FullConversation includes tool calls and results, usable to continue
	// the conversation in a later run.
	FullConversation []Message
}

// Agent runs a tool-calling loop against an MCP session until the model
// produces a final text answer.
type Agent interface {
	Run(ctx context.Context, client *mcpclient.Client, initialMessages []Message, output io.Writer) (*RunResult, error)
}

// filterTools keeps only the tools the allow function accepts. A nil allow
// function keeps everything.
func filterTools(tools []mcpclient.Tool, allow func(string) bool) []mcpclient.Tool {
	if allow == nil {
		return tools
	}
	kept := make([]mcpclient.Tool, 0, len(tools))
	for _, tool := range tools {
		if allow(tool.Name) {
			kept = append(kept, tool)
		}
	}
	return kept
}

// extractToolUses collects well-formed tool calls from response content.
func extractToolUses(content []ContentBlock) []ToolUse {
	var toolUses []ToolUse
	for _, blk := range content {
		id, name, inputBytes, ok := blk.AsToolUse()
		if !ok || id == "" || name == "" {
			continue
		}
		var input map[string]any
		if err := json.Unmarshal(inputBytes, &input); err != nil {
			continue
		}
		toolUses = append(toolUses, ToolUse{ID: id, Name: name, Input: input})
	}
	return toolUses
}
