package cmd

import (
	"fmt"

	"github.com/armon-kel/beamctl/utils/catalog"
	"github.com/spf13/cobra"
)

var transformsCategory string

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "Browse the Beam YAML transform catalog",
}

var transformsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known transforms, optionally filtered by category",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), catalog.RenderKinds(catalog.Category(transformsCategory)))
	},
}

var transformsDescribeCmd = &cobra.Command{
	Use:   "describe <transform>",
	Short: "Show documentation and an example for a transform",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), catalog.RenderDoc(args[0]))
	},
}

var transformsSchemaCmd = &cobra.Command{
	Use:   "schema <connector>",
	Short: "Show the input/output schema for an IO connector",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), catalog.RenderSchema(args[0]))
	},
}

func init() {
	transformsListCmd.Flags().StringVar(&transformsCategory, "category", "all", "category filter: all, io, transform, ml, sql")
	transformsCmd.AddCommand(transformsListCmd)
	transformsCmd.AddCommand(transformsDescribeCmd)
	transformsCmd.AddCommand(transformsSchemaCmd)
	rootCmd.AddCommand(transformsCmd)
}
