package graphkb

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearConfirmed bool

var clearGraphCmd = &cobra.Command{
	Use:   "clear-graph",
	Short: "Delete every node and relationship in the graph database",
	Long: `Delete the entire graph. This cannot be undone.

Without --confirm the command asks for interactive confirmation and treats
anything but an explicit "yes" as a refusal.`,
	RunE: runClearGraph,
}

func init() {
	clearGraphCmd.Flags().BoolVar(&clearConfirmed, "confirm", false, "skip the interactive confirmation prompt")
	rootCmd.AddCommand(clearGraphCmd)
}

func runClearGraph(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadApp()
	if err != nil {
		return err
	}

	confirmed := confirm(cmd,
		"This will delete ALL nodes and relationships. Continue? (yes/no): ",
		clearConfirmed)

	conn, err := connectorFactory(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close(cmd.Context())

	cleared, err := conn.ClearAll(cmd.Context(), confirmed)
	if err != nil {
		return err
	}
	if !cleared {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted. Nothing was deleted.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Graph cleared.")
	return nil
}
