package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/armon-kel/beamctl/utils/pipeline"
	"github.com/spf13/cobra"
)

var (
	generateSource     string
	generateSink       string
	generateTransforms []string
	generateOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a draft Beam YAML pipeline from hints",
	Long: `Generate a draft pipeline document from free-text source, sink, and
transform hints. Unrecognized hints are skipped rather than rejected, and
generated configs use placeholder values to fill in afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		result, err := pipeline.Build(pipeline.BuildRequest{
			Source:     generateSource,
			Sink:       generateSink,
			Transforms: generateTransforms,
		})
		if err != nil {
			log.Fatalf("Error generating pipeline: %v", err)
		}

		if generateOutput != "" {
			if err := os.WriteFile(generateOutput, []byte(result.YAML), 0644); err != nil {
				log.Fatalf("Error writing pipeline file: %v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pipeline written to %s\n\nNext Steps:\n%s\n", generateOutput, pipeline.NextSteps)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated Beam YAML Pipeline:\n\n```yaml\n%s```\n\nNext Steps:\n%s\n", result.YAML, pipeline.NextSteps)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateSource, "source", "", "source hint, e.g. pubsub, bigquery, csv")
	generateCmd.Flags().StringVar(&generateSink, "sink", "", "sink hint, e.g. bigquery, text")
	generateCmd.Flags().StringArrayVar(&generateTransforms, "transform", nil, "transform hint, repeatable, e.g. filter, aggregate")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the pipeline YAML to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
