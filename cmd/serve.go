package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/armon-kel/beamctl/utils/config"
	"github.com/armon-kel/beamctl/utils/gcloud"
	"github.com/armon-kel/beamctl/utils/mcpserver"
	"github.com/spf13/cobra"
)

var (
	serveStdio   bool
	serveListen  string
	serveNoJobs  bool
	serveProject string
	serveRegion  string
)

// newGcloudClient is swapped in tests for a client with a fake runner.
var newGcloudClient = gcloud.NewClient

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server exposing pipeline and Dataflow job tools",
	Long: `Start an MCP server that exposes the transform catalog, pipeline
generation and validation, and Dataflow job management as tools. By default
the server speaks streamable HTTP; with --stdio it serves a single session
over stdin/stdout for use as a subprocess.`,
	Run: func(cmd *cobra.Command, args []string) {
		envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Fatalf("Error loading environment configuration: %v", err)
			}
			envConfig = &config.EnvConfig{}
		}

		cfg := serverConfig(envConfig)

		srv, err := mcpserver.New(cfg)
		if err != nil {
			log.Fatalf("Error creating server: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		if serveStdio {
			err = srv.RunStdio(ctx)
		} else {
			err = srv.Run(ctx)
		}
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

// serverConfig assembles the MCP server configuration from the environment
// file, flags, and process environment. Flags win over the file.
func serverConfig(envConfig *config.EnvConfig) mcpserver.Config {
	serverCfg := envConfig.GetServerConfig()

	listen := serverCfg.ListenAddr
	if serveListen != "" {
		listen = serveListen
	}

	project := envConfig.Dataflow.Project
	if serveProject != "" {
		project = serveProject
	}
	region := envConfig.Dataflow.Region
	if serveRegion != "" {
		region = serveRegion
	}

	var tokens []string
	if serverCfg.AuthEnabled && serverCfg.BearerToken != "" {
		tokens = append(tokens, serverCfg.BearerToken)
	}
	if raw := os.Getenv("MCP_ALLOWED_TOKENS"); raw != "" {
		for _, token := range strings.Split(raw, ",") {
			if token = strings.TrimSpace(token); token != "" {
				tokens = append(tokens, token)
			}
		}
	}

	cfg := mcpserver.Config{
		Logger:        newLogger(),
		Version:       Version,
		ListenAddr:    listen,
		AllowedTokens: tokens,
	}
	if !serveNoJobs {
		cfg.Gcloud = newGcloudClient()
		cfg.DefaultProject = project
		cfg.DefaultRegion = region
	}
	return cfg
}

func init() {
	serveCmd.Flags().BoolVar(&serveStdio, "stdio", false, "serve a single MCP session over stdin/stdout")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "HTTP listen address (default from env file or "+config.DefaultListenAddr+")")
	serveCmd.Flags().BoolVar(&serveNoJobs, "no-jobs", false, "do not register the gcloud-backed Dataflow job tools")
	serveCmd.Flags().StringVar(&serveProject, "project", "", "default GCP project for job tools")
	serveCmd.Flags().StringVar(&serveRegion, "region", "", "default Dataflow region for job tools")
	rootCmd.AddCommand(serveCmd)
}
