package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/armon-kel/beamctl/utils/config"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "beamctl",
	Short: "Build, validate, and run Beam YAML pipelines on Dataflow",
	Long: `beamctl is a command line tool for working with Apache Beam YAML
pipelines: browsing the transform catalog, generating and validating
pipeline documents, managing Dataflow jobs, and chatting with LLM agents
wired to the same tools over MCP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Verbose = verbose
		config.Debug = debug
		// Pick up API keys from a local .env file when present.
		if err := godotenv.Load(); err == nil {
			config.DebugLog("Loaded environment variables from .env")
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
}

// newLogger builds the slog logger used by the MCP server, client, and
// agent packages. Level tracks the persistent verbosity flags.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose || debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}

func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			fmt.Printf("Run 'beamctl --help' to see the available commands.\n")
		}
		fmt.Fprintln(os.Stderr, errMsg)
		os.Exit(1)
	}
}
