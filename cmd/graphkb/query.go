package graphkb

import (
	"github.com/spf13/cobra"

	"github.com/magsense/graphkb/pkg/queries"
)

var (
	queryList  bool
	queryLimit int
)

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Run a named exploration query against the graph",
	Long: `Run one of the built-in Cypher queries and print its rows.

Use --list to see every available query with its description.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryList, "list", false, "list available queries")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "maximum rows to display (default from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadApp()
	if err != nil {
		return err
	}

	if queryList || len(args) == 0 {
		queries.List(cmd.OutOrStdout())
		return nil
	}

	// Fail on a bad name before connecting.
	if _, err := queries.Lookup(args[0]); err != nil {
		return err
	}

	conn, err := connectorFactory(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close(cmd.Context())

	session, err := conn.Session(cmd.Context())
	if err != nil {
		return err
	}
	defer session.Close(cmd.Context())

	limit := queryLimit
	if limit <= 0 {
		limit = cfg.Query.Limit
	}
	return queries.Run(cmd.Context(), session, cmd.OutOrStdout(), args[0], limit)
}
