package graphkb

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magsense/graphkb/pkg/corpus"
	"github.com/magsense/graphkb/pkg/export"
)

var (
	subgraphPaperIDs   []string
	subgraphCategories []string
	subgraphOrganisms  []string

	exportConfirmed bool
)

var previewFullCmd = &cobra.Command{
	Use:   "preview-full",
	Short: "Show what a full export would create, without connecting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd, corpus.Criteria{})
	},
}

var exportFullCmd = &cobra.Command{
	Use:   "export-full",
	Short: "Export the entire knowledge base to the graph database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, corpus.Criteria{})
	},
}

var previewSubgraphCmd = &cobra.Command{
	Use:   "preview-subgraph",
	Short: "Show what a filtered export would create, without connecting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd, subgraphCriteria())
	},
}

var exportSubgraphCmd = &cobra.Command{
	Use:   "export-subgraph",
	Short: "Export a filtered portion of the knowledge base",
	Long: `Export only the papers and term categories named by the filter flags.

Relationships are kept when either endpoint belongs to a selected term
category, so the boundary of the selection stays visible in the graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, subgraphCriteria())
	},
}

func init() {
	for _, c := range []*cobra.Command{previewSubgraphCmd, exportSubgraphCmd} {
		c.Flags().StringSliceVar(&subgraphPaperIDs, "paper-ids", nil, "paper IDs to include (comma-separated)")
		c.Flags().StringSliceVar(&subgraphCategories, "categories", nil, "ontology categories to include (comma-separated)")
		c.Flags().StringSliceVar(&subgraphOrganisms, "organisms", nil, "organisms of interest (advisory)")
	}
	for _, c := range []*cobra.Command{exportFullCmd, exportSubgraphCmd} {
		c.Flags().BoolVar(&exportConfirmed, "confirm", false, "skip the interactive confirmation prompt")
	}
	rootCmd.AddCommand(previewFullCmd, exportFullCmd, previewSubgraphCmd, exportSubgraphCmd)
}

func subgraphCriteria() corpus.Criteria {
	return corpus.Criteria{
		PaperIDs:   subgraphPaperIDs,
		Categories: subgraphCategories,
		Organisms:  subgraphOrganisms,
	}
}

func runPreview(cmd *cobra.Command, criteria corpus.Criteria) error {
	cfg, log, err := loadApp()
	if err != nil {
		return err
	}

	kb, err := newStore(cfg, log).Load()
	if err != nil {
		return err
	}
	filtered := criteria.Apply(kb)

	export.RenderPreview(cmd.OutOrStdout(), export.BuildPreview(filtered))
	return nil
}

func runExport(cmd *cobra.Command, criteria corpus.Criteria) error {
	cfg, log, err := loadApp()
	if err != nil {
		return err
	}

	if !confirm(cmd, "This will write to the graph database. Continue? (yes/no): ", exportConfirmed) {
		fmt.Fprintln(cmd.OutOrStdout(), "Export cancelled. Nothing was written.")
		return nil
	}

	kb, err := newStore(cfg, log).Load()
	if err != nil {
		return err
	}
	filtered := criteria.Apply(kb)

	conn, err := connectorFactory(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close(cmd.Context())

	report, err := export.NewSynchronizer(conn, log).Sync(cmd.Context(), filtered)
	if err != nil {
		return err
	}

	// Per-item failures are already counted and rendered in the report.
	// Only fatal configuration or connection errors escalate to a non-zero
	// exit.
	export.RenderSyncReport(cmd.OutOrStdout(), report)
	return nil
}
