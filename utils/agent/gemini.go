package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/armon-kel/beamctl/utils/mcpclient"
)

const DefaultGeminiModel = "gemini-2.5-pro"

type GeminiAgentConfig struct {
	Logger     *slog.Logger
	APIKey     string
	Model      string
	MaxRounds  int
	System     string
	ToolFilter func(string) bool
}

func (c *GeminiAgentConfig) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultGeminiModel
	}
	if c.MaxRounds == 0 {
		c.MaxRounds = defaultMaxRounds
	}
}

// GeminiAgent runs the tool-calling loop against Gemini models using
// function declarations derived from the MCP tool schemas.
type GeminiAgent struct {
	cfg *GeminiAgentConfig
}

func NewGeminiAgent(cfg *GeminiAgentConfig) *GeminiAgent {
	cfg.applyDefaults()
	return &GeminiAgent{cfg: cfg}
}

type geminiMessage struct {
	part genai.Part
}

func (m geminiMessage) ToParam() any {
	return m.part
}

// NewGeminiUserMessage wraps a user text message for the Gemini agent.
func NewGeminiUserMessage(text string) Message {
	return geminiMessage{part: genai.Text(text)}
}

func (a *GeminiAgent) Run(ctx context.Context, client *mcpclient.Client, initialMessages []Message, output io.Writer) (*RunResult, error) {
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("google API key is required")
	}

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(a.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer genaiClient.Close()

	mcpTools, err := client.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tools: %w", err)
	}

	model := genaiClient.GenerativeModel(a.cfg.Model)
	model.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiDeclarations(filterTools(mcpTools, a.cfg.ToolFilter))}}
	if a.cfg.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(a.cfg.System)}}
	}

	session := model.StartChat()

	parts := make([]genai.Part, 0, len(initialMessages))
	fullConversation := make([]Message, len(initialMessages))
	copy(fullConversation, initialMessages)
	for _, msg := range initialMessages {
		part, ok := msg.ToParam().(genai.Part)
		if !ok {
			return nil, fmt.Errorf("message %T is not a Gemini message", msg)
		}
		parts = append(parts, part)
	}

	for round := 0; round < a.cfg.MaxRounds; round++ {
		if a.cfg.Logger != nil {
			a.cfg.Logger.Debug("agent: starting round", "round", round+1, "max_rounds", a.cfg.MaxRounds)
		}

		resp, err := session.SendMessage(ctx, parts...)
		if err != nil {
			return nil, fmt.Errorf("failed to get response: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return nil, fmt.Errorf("empty response from model")
		}

		var finalText strings.Builder
		var calls []genai.FunctionCall
		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				finalText.WriteString(string(p))
			case genai.FunctionCall:
				calls = append(calls, p)
			}
		}

		if len(calls) == 0 {
			text := strings.TrimSpace(finalText.String())
			if output != nil {
				fmt.Fprintln(output, text)
			}
			fullConversation = append(fullConversation, geminiMessage{part: genai.Text(text)})
			return &RunResult{
				FinalText:        text,
				FullConversation: fullConversation,
			}, nil
		}

		parts = parts[:0]
		for _, call := range calls {
			if a.cfg.Logger != nil {
				a.cfg.Logger.Debug("agent: executing tool call", "name", call.Name)
			}
			out, isErr, callErr := client.CallToolText(ctx, call.Name, call.Args)
			if callErr != nil {
				out = fmt.Sprintf("%s\n(error: %v)", out, callErr)
				isErr = true
			}
			response := map[string]any{"result": truncateResult(out, defaultMaxToolResultLen)}
			if isErr {
				response["error"] = true
			}
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: response,
			})
		}
	}

	return nil, fmt.Errorf("exceeded maximum rounds (%d)", a.cfg.MaxRounds)
}

// toGeminiDeclarations converts MCP tool metadata to Gemini function
// declarations.
func toGeminiDeclarations(tools []mcpclient.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toGeminiSchema(t.InputSchema),
		})
	}
	return decls
}

// toGeminiSchema converts a JSON schema object to the genai schema type. Only
// the subset used by the tool inputs is mapped.
func toGeminiSchema(schema map[string]any) *genai.Schema {
	if len(schema) == 0 {
		return &genai.Schema{Type: genai.TypeObject}
	}

	out := &genai.Schema{Type: geminiType(schema["type"])}
	if desc, ok := schema["description"].(string); ok {
		out.Description = desc
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			propSchema, ok := prop.(map[string]any)
			if !ok {
				continue
			}
			out.Properties[name] = toGeminiSchema(propSchema)
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		out.Items = toGeminiSchema(items)
	}
	if required, ok := schema["required"].([]any); ok {
		for _, name := range required {
			if s, ok := name.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}
	return out
}

func geminiType(value any) genai.Type {
	t, _ := value.(string)
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object", "":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
