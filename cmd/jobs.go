package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/armon-kel/beamctl/utils/config"
	"github.com/armon-kel/beamctl/utils/gcloud"
	"github.com/spf13/cobra"
)

var (
	jobsProject  string
	jobsRegion   string
	jobsStatus   string
	jobsLimit    int
	jobsSeverity string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and manage Dataflow jobs via gcloud",
}

// dataflowDefaults resolves the project and region for a job command from
// the flags, falling back to the environment file.
func dataflowDefaults() (project, region string) {
	project, region = jobsProject, jobsRegion
	if project != "" && region != "" {
		return project, region
	}
	envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
	if err != nil {
		return project, region
	}
	if project == "" {
		project = envConfig.Dataflow.Project
	}
	if region == "" {
		region = envConfig.Dataflow.Region
	}
	return project, region
}

func runJobCommand(cmd *cobra.Command, fn func(ctx context.Context, client *gcloud.Client) (string, error)) {
	report, err := fn(context.Background(), newGcloudClient())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), report)
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the status and metadata of a Dataflow job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		project, region := dataflowDefaults()
		runJobCommand(cmd, func(ctx context.Context, client *gcloud.Client) (string, error) {
			return client.JobStatus(ctx, gcloud.JobParams{JobID: args[0], Project: project, Region: region})
		})
	},
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Dataflow jobs",
	Run: func(cmd *cobra.Command, args []string) {
		project, region := dataflowDefaults()
		runJobCommand(cmd, func(ctx context.Context, client *gcloud.Client) (string, error) {
			return client.ListJobs(ctx, gcloud.ListParams{
				Project: project,
				Region:  region,
				Status:  jobsStatus,
				Limit:   jobsLimit,
			})
		})
	},
}

var jobsLogsCmd = &cobra.Command{
	Use:   "logs <job-id>",
	Short: "Show recent log entries for a Dataflow job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		project, _ := dataflowDefaults()
		runJobCommand(cmd, func(ctx context.Context, client *gcloud.Client) (string, error) {
			return client.JobLogs(ctx, gcloud.LogsParams{JobID: args[0], Project: project, Severity: jobsSeverity})
		})
	},
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a running Dataflow job immediately",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		project, region := dataflowDefaults()
		runJobCommand(cmd, func(ctx context.Context, client *gcloud.Client) (string, error) {
			return client.CancelJob(ctx, gcloud.JobParams{JobID: args[0], Project: project, Region: region})
		})
	},
}

var jobsDrainCmd = &cobra.Command{
	Use:   "drain <job-id>",
	Short: "Drain a streaming Dataflow job, finishing in-flight work",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		project, region := dataflowDefaults()
		runJobCommand(cmd, func(ctx context.Context, client *gcloud.Client) (string, error) {
			return client.DrainJob(ctx, gcloud.JobParams{JobID: args[0], Project: project, Region: region})
		})
	},
}

func init() {
	jobsCmd.PersistentFlags().StringVar(&jobsProject, "project", "", "GCP project ID (default from env file)")
	jobsCmd.PersistentFlags().StringVar(&jobsRegion, "region", "", "Dataflow region (default "+gcloud.DefaultRegion+")")
	jobsListCmd.Flags().StringVar(&jobsStatus, "status", "all", "status filter: active, terminated, failed, all")
	jobsListCmd.Flags().IntVar(&jobsLimit, "limit", 0, "maximum jobs to list (default 50)")
	jobsLogsCmd.Flags().StringVar(&jobsSeverity, "severity", "", "minimum log severity (default INFO)")
	jobsCmd.AddCommand(jobsStatusCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsLogsCmd)
	jobsCmd.AddCommand(jobsCancelCmd)
	jobsCmd.AddCommand(jobsDrainCmd)
	rootCmd.AddCommand(jobsCmd)
}
