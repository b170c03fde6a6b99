package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/armon-kel/beamctl/utils/config"
	"github.com/armon-kel/beamctl/utils/fileutil"
	"github.com/armon-kel/beamctl/utils/models"
	"github.com/spf13/cobra"
)

var explainModel string

var explainCmd = &cobra.Command{
	Use:   "explain <pipeline.yaml>",
	Short: "Explain a Beam YAML pipeline using an LLM",
	Long: `Send a pipeline document to an LLM and print a plain-language
explanation of what it does. The provider is detected from the model name.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yamlText, err := fileutil.ReadPipelineFile(args[0])
		if err != nil {
			log.Fatalf("Error reading pipeline file: %v", err)
		}

		provider := models.DetectProvider(explainModel)
		if provider == nil {
			log.Fatalf("No provider found for model %q", explainModel)
		}

		envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Error loading environment configuration: %v", err)
		}
		apiKey := envConfig.GetProviderAPIKey(provider.Name())
		if err := provider.Configure(apiKey); err != nil {
			log.Fatalf("Error configuring provider %s: %v", provider.Name(), err)
		}
		provider.SetVerbose(verbose || debug)

		prompt := fmt.Sprintf(`Explain the following Apache Beam YAML pipeline in plain language.
Describe where data is read from, how each transform changes it, and where
the results are written. Point out placeholder values that still need to be
filled in.

%s`, string(yamlText))

		response, err := provider.SendPrompt(context.Background(), explainModel, prompt)
		if err != nil {
			log.Fatalf("Error from provider %s: %v", provider.Name(), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), response)
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainModel, "model", "claude-sonnet-4-5", "model name, used to detect the provider")
	rootCmd.AddCommand(explainCmd)
}
