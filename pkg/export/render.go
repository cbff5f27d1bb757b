package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/magsense/graphkb/pkg/schema"
)

const renderRule = "================================================================================"

// RenderPreview writes a human-readable preview to w. It only observes the
// finished report; nothing here feeds back into export logic.
func RenderPreview(w io.Writer, p *Preview) {
	fmt.Fprintln(w, renderRule)
	fmt.Fprintln(w, "EXPORT PREVIEW")
	fmt.Fprintln(w, renderRule)

	fmt.Fprintf(w, "\nNodes to be created (%d total):\n", p.TotalNodes())
	for _, nt := range sortedNodeTypes(p.NodeCounts) {
		fmt.Fprintf(w, "  %-20s %4d\n", nt, p.NodeCounts[nt])
	}

	fmt.Fprintf(w, "\nRelationships to be created (%d total):\n", p.TotalRelationships())
	for _, rt := range sortedRelTypes(p.RelationshipCounts) {
		fmt.Fprintf(w, "  %-30s %4d\n", rt, p.RelationshipCounts[rt])
	}

	if p.PaperTotal > 0 {
		fmt.Fprintf(w, "\nPapers (%d):\n", p.PaperTotal)
		for _, paper := range p.Papers {
			fmt.Fprintf(w, "  - %-40s %s\n", paper.PaperID, truncate(paper.Title, 60))
		}
		if remaining := p.PaperTotal - len(p.Papers); remaining > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", remaining)
		}
	}

	if len(p.Categories) > 0 {
		fmt.Fprintf(w, "\nOntology Categories (%d):\n", len(p.Categories))
		for _, cat := range sortedKeys(p.Categories) {
			fmt.Fprintf(w, "  - %-30s (%d terms)\n", cat, p.Categories[cat])
		}
	}

	renderWarnings(w, p.Warnings)
	fmt.Fprintln(w, renderRule)
}

// RenderSyncReport writes a human-readable summary of a finished run to w.
func RenderSyncReport(w io.Writer, r *SyncReport) {
	fmt.Fprintln(w, renderRule)
	fmt.Fprintln(w, "EXPORT COMPLETE")
	fmt.Fprintln(w, renderRule)
	fmt.Fprintf(w, "Run:      %s\n", r.RunID)
	fmt.Fprintf(w, "Duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(1e6))

	fmt.Fprintf(w, "\nNodes created (%d total):\n", r.TotalNodesCreated())
	for _, nt := range sortedNodeTypes(r.NodesCreated) {
		fmt.Fprintf(w, "  %-20s %4d\n", nt, r.NodesCreated[nt])
	}

	fmt.Fprintf(w, "\nRelationships created (%d total):\n", r.TotalRelationshipsCreated())
	for _, rt := range sortedRelTypes(r.RelsCreated) {
		fmt.Fprintf(w, "  %-30s %4d\n", rt, r.RelsCreated[rt])
	}

	if r.TotalFailed() > 0 || len(r.ItemErrors) > 0 {
		fmt.Fprintf(w, "\nFailures (%d):\n", len(r.ItemErrors))
		for _, item := range r.ItemErrors {
			fmt.Fprintf(w, "  ✗ %s %s: %v\n", item.Kind, item.Key, item.Err)
		}
	}

	renderWarnings(w, r.Warnings)
	fmt.Fprintln(w, renderRule)
}

func renderWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWarnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  ! %s\n", warning)
	}
}

func sortedNodeTypes(m map[schema.NodeType]int) []schema.NodeType {
	keys := make([]schema.NodeType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedRelTypes(m map[schema.RelationshipType]int) []schema.RelationshipType {
	keys := make([]schema.RelationshipType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
