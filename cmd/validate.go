package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/armon-kel/beamctl/utils/fileutil"
	"github.com/armon-kel/beamctl/utils/pipeline"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a Beam YAML pipeline document",
	Long: `Validate a pipeline document for structural problems: YAML syntax,
the pipeline/transforms wrapping, per-step required fields, and BigQuery
steps missing a table or query. Reads from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var yamlText []byte
		var err error
		if len(args) == 1 {
			yamlText, err = fileutil.ReadPipelineFile(args[0])
			if err != nil {
				log.Fatalf("Error reading pipeline file: %v", err)
			}
		} else {
			yamlText, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				log.Fatalf("Error reading stdin: %v", err)
			}
		}

		result := pipeline.Validate(string(yamlText))
		fmt.Fprintln(cmd.OutOrStdout(), result.Render())
		if !result.Valid {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
