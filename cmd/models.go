package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/armon-kel/beamctl/utils/config"
	"github.com/armon-kel/beamctl/utils/models"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List available models for the configured providers",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Error loading environment configuration: %v", err)
		}

		providers := models.ListRegisteredProviders()
		if len(args) == 1 {
			providers = args[:1]
		}

		out := cmd.OutOrStdout()
		for _, name := range providers {
			names, err := models.ListModelsForProvider(name, envConfig.GetProviderAPIKey(name))
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", name, err)
				continue
			}
			fmt.Fprintf(out, "%s:\n", name)
			for _, model := range names {
				fmt.Fprintf(out, "  %s\n", model)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
