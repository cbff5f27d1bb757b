package graphkb

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Verify that the graph database is reachable",
	Long: `Resolve credentials, open a driver and verify connectivity.

Exits 0 when the database answers, 1 otherwise. No data is read or written.`,
	RunE: runTestConnection,
}

func init() {
	rootCmd.AddCommand(testConnectionCmd)
}

func runTestConnection(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadApp()
	if err != nil {
		return err
	}

	conn, err := connectorFactory(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close(cmd.Context())

	if err := conn.Connect(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Connection successful")
	return nil
}
