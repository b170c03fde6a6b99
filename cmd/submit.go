package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/armon-kel/beamctl/utils/fileutil"
	"github.com/armon-kel/beamctl/utils/gcloud"
	"github.com/spf13/cobra"
)

var (
	submitName   string
	submitDryRun bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <pipeline.yaml>",
	Short: "Submit a Beam YAML pipeline to Dataflow",
	Long: `Submit a pipeline document to Dataflow via the gcloud YAML runner.
Job names must start with a lowercase letter, contain only lowercase
letters, digits, and hyphens, and be at most 63 characters. With --dry-run
the pipeline is checked locally instead of submitted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yamlText, err := fileutil.ReadPipelineFile(args[0])
		if err != nil {
			log.Fatalf("Error reading pipeline file: %v", err)
		}

		client := newGcloudClient()
		ctx := context.Background()

		if submitDryRun {
			result, err := client.DryRun(ctx, string(yamlText))
			if err != nil {
				log.Fatalf("Error running dry run: %v", err)
			}
			if result.Passed {
				fmt.Fprintln(cmd.OutOrStdout(), "Dry run passed.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Dry run failed.")
			}
			if strings.TrimSpace(result.Output) != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", result.Output)
			}
			if !result.Passed {
				os.Exit(1)
			}
			return
		}

		project, region := dataflowDefaults()
		result, err := client.Submit(ctx, gcloud.SubmitParams{
			YAML:    string(yamlText),
			JobName: submitName,
			Project: project,
			Region:  region,
		})
		if err != nil {
			log.Fatalf("Error submitting pipeline: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Dataflow Job Submitted:\n- Job Name: %s\n- Job ID: %s\n- Console: %s\n", result.JobName, result.JobID, result.ConsoleURL)
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitName, "name", "", "Dataflow job name")
	submitCmd.Flags().StringVar(&jobsProject, "project", "", "GCP project ID (default from env file)")
	submitCmd.Flags().StringVar(&jobsRegion, "region", "", "Dataflow region (default "+gcloud.DefaultRegion+")")
	submitCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "check the pipeline locally instead of submitting")
	rootCmd.AddCommand(submitCmd)
}
