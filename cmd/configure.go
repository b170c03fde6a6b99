package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/armon-kel/beamctl/utils/config"
	"github.com/armon-kel/beamctl/utils/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var listFlag bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure LLM providers and Dataflow defaults",
	Long: `Configure provider API keys, default models, and Dataflow project
and region defaults. Settings are stored in the environment file named by
BEAMCTL_ENV (default .beamctl.env).`,
	Run: func(cmd *cobra.Command, args []string) {
		if listFlag {
			listConfiguration()
			return
		}

		configPath := config.GetEnvPath()
		envConfig, err := config.LoadEnvConfig(configPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Fatalf("Error loading environment configuration: %v", err)
			}
			envConfig = &config.EnvConfig{}
		}

		reader := bufio.NewReader(os.Stdin)

		fmt.Printf("Available providers: %s\n", strings.Join(models.ListRegisteredProviders(), ", "))
		providerName := promptLine(reader, "Provider to configure (empty to skip): ")
		if providerName != "" {
			if models.GetProviderByName(providerName) == nil {
				log.Fatalf("Unknown provider %q", providerName)
			}
			configureProvider(reader, envConfig, providerName)
		}

		if promptLine(reader, "Configure Dataflow defaults? (y/N): ") == "y" {
			if project := promptLine(reader, "Default GCP project: "); project != "" {
				envConfig.Dataflow.Project = project
			}
			if region := promptLine(reader, "Default Dataflow region: "); region != "" {
				envConfig.Dataflow.Region = region
			}
		}

		if err := config.SaveEnvConfig(configPath, envConfig); err != nil {
			log.Fatalf("Error saving configuration: %v", err)
		}
		fmt.Printf("Configuration saved to %s\n", configPath)
	},
}

func configureProvider(reader *bufio.Reader, envConfig *config.EnvConfig, providerName string) {
	fmt.Print("API key (input hidden): ")
	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Error reading API key: %v", err)
	}

	provider := config.Provider{APIKey: strings.TrimSpace(string(keyBytes))}
	if model := promptLine(reader, "Default model (empty for provider default): "); model != "" {
		provider.DefaultModel = model
	}
	envConfig.AddProvider(providerName, provider)
}

func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func listConfiguration() {
	configPath := config.GetEnvPath()
	envConfig, err := config.LoadEnvConfig(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("No configuration found at %s\n", configPath)
			return
		}
		log.Fatalf("Error loading environment configuration: %v", err)
	}

	fmt.Printf("Configuration (%s):\n\n", configPath)
	if len(envConfig.Providers) == 0 {
		fmt.Println("Providers: none configured")
	} else {
		fmt.Println("Providers:")
		for name, provider := range envConfig.Providers {
			status := "no API key"
			if provider != nil && provider.APIKey != "" {
				status = "API key set"
			}
			model := ""
			if provider != nil && provider.DefaultModel != "" {
				model = ", default model " + provider.DefaultModel
			}
			fmt.Printf("  %s: %s%s\n", name, status, model)
		}
	}

	fmt.Println()
	if envConfig.Dataflow.Project != "" || envConfig.Dataflow.Region != "" {
		fmt.Printf("Dataflow: project=%s region=%s\n", envConfig.Dataflow.Project, envConfig.Dataflow.Region)
	} else {
		fmt.Println("Dataflow: no defaults configured")
	}

	server := envConfig.GetServerConfig()
	fmt.Printf("Server: listen=%s auth=%v\n", server.ListenAddr, server.AuthEnabled)
}

func init() {
	configureCmd.Flags().BoolVar(&listFlag, "list", false, "list the current configuration")
	rootCmd.AddCommand(configureCmd)
}
