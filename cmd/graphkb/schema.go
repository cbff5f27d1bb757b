package graphkb

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magsense/graphkb/pkg/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the node types, relationship types and indexes of the graph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), schema.Summary())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
