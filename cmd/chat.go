package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/armon-kel/beamctl/utils/agent"
	"github.com/armon-kel/beamctl/utils/config"
	"github.com/armon-kel/beamctl/utils/mcpclient"
)

var (
	chatAgent    string
	chatProvider string
	chatModel    string
	chatEndpoint string
	chatToken    string
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Chat with an LLM agent wired to the pipeline and job tools",
	Long: `Chat with an LLM agent that can call the transform catalog, pipeline
generation and validation, and Dataflow job tools over MCP. With a prompt
argument the agent answers once and exits; without one an interactive
session starts. By default a server subprocess is spawned; --endpoint
connects to a running HTTP server instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		preset, err := agent.GetPreset(chatAgent)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Error loading environment configuration: %v", err)
		}

		ctx := context.Background()
		client, err := newChatClient(ctx)
		if err != nil {
			log.Fatalf("Error connecting to MCP server: %v", err)
		}
		defer client.Close()

		runner, newMessage, err := newChatAgent(preset, envConfig)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		if len(args) > 0 {
			prompt := strings.Join(args, " ")
			if _, err := runner.Run(ctx, client, []agent.Message{newMessage(prompt)}, cmd.OutOrStdout()); err != nil {
				log.Fatalf("Agent error: %v", err)
			}
			return
		}

		runChatLoop(ctx, cmd, runner, client, newMessage)
	},
}

// newChatClient connects to the MCP tool server, spawning this binary as a
// stdio server subprocess unless an HTTP endpoint was given.
func newChatClient(ctx context.Context) (*mcpclient.Client, error) {
	cfg := mcpclient.Config{
		Logger: newLogger(),
		Token:  chatToken,
	}
	if chatEndpoint != "" {
		cfg.Endpoint = chatEndpoint
	} else {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate beamctl binary: %w", err)
		}
		cfg.Command = []string{self, "serve", "--stdio"}
	}
	return mcpclient.New(ctx, cfg)
}

// newChatAgent builds the agent for the selected provider along with the
// matching user message constructor.
func newChatAgent(preset agent.Preset, envConfig *config.EnvConfig) (agent.Agent, func(string) agent.Message, error) {
	logger := newLogger()

	switch chatProvider {
	case "anthropic":
		apiKey := envConfig.GetProviderAPIKey("anthropic")
		if apiKey == "" {
			return nil, nil, fmt.Errorf("anthropic API key not configured, run 'beamctl configure' or set ANTHROPIC_API_KEY")
		}
		cfg := &agent.AnthropicAgentConfig{
			Logger:     logger,
			Client:     anthropic.NewClient(option.WithAPIKey(apiKey)),
			Model:      anthropic.Model(chatModel),
			System:     preset.System,
			ToolFilter: preset.AllowsTool,
		}
		return agent.NewAnthropicAgent(cfg), agent.NewUserMessage, nil
	case "google":
		apiKey := envConfig.GetProviderAPIKey("google")
		if apiKey == "" {
			return nil, nil, fmt.Errorf("google API key not configured, run 'beamctl configure' or set GOOGLE_API_KEY")
		}
		cfg := &agent.GeminiAgentConfig{
			Logger:     logger,
			APIKey:     apiKey,
			Model:      chatModel,
			System:     preset.System,
			ToolFilter: preset.AllowsTool,
		}
		return agent.NewGeminiAgent(cfg), agent.NewGeminiUserMessage, nil
	}
	return nil, nil, fmt.Errorf("unknown provider %q, available: anthropic, google", chatProvider)
}

// runChatLoop reads prompts from stdin until EOF or "exit", feeding the
// accumulated conversation back into each run.
func runChatLoop(ctx context.Context, cmd *cobra.Command, runner agent.Agent, client *mcpclient.Client, newMessage func(string) agent.Message) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Chatting with the %s agent. Type 'exit' to quit.\n", chatAgent)

	var conversation []agent.Message
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			break
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if prompt == "exit" || prompt == "quit" {
			break
		}

		result, err := runner.Run(ctx, client, append(conversation, newMessage(prompt)), out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Agent error: %v\n", err)
			continue
		}
		conversation = result.FullConversation
	}
}

func init() {
	chatCmd.Flags().StringVar(&chatAgent, "agent", "coordinator", "agent preset: "+strings.Join(agent.PresetNames(), ", "))
	chatCmd.Flags().StringVar(&chatProvider, "provider", "anthropic", "LLM provider: anthropic or google")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "model name (provider default when empty)")
	chatCmd.Flags().StringVar(&chatEndpoint, "endpoint", "", "MCP HTTP endpoint of a running server")
	chatCmd.Flags().StringVar(&chatToken, "token", "", "bearer token for the MCP endpoint")
	rootCmd.AddCommand(chatCmd)
}
