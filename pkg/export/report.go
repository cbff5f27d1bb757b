// Package export materializes a corpus into the property graph and computes
// dry-run previews of what a run would produce. Both the synchronizer and
// the preview builder are pure accumulators: they return structured reports
// and never print; rendering lives in render.go.
package export

import (
	"fmt"
	"time"

	"github.com/magsense/graphkb/pkg/schema"
)

// Item error kinds.
const (
	ItemKindIndex        = "index"
	ItemKindNode         = "node"
	ItemKindRelationship = "relationship"
)

// ItemError records a single recoverable per-item failure. Item errors never
// abort a run; they are aggregated into the report.
type ItemError struct {
	Kind string
	Key  string
	Err  error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Key, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// SyncReport accumulates the outcome of one synchronization run.
type SyncReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	NodesCreated map[schema.NodeType]int
	NodesFailed  map[schema.NodeType]int
	RelsCreated  map[schema.RelationshipType]int
	RelsFailed   map[schema.RelationshipType]int

	// ItemErrors lists every recoverable failure with its offending key,
	// index assurance failures included.
	ItemErrors []ItemError

	// Warnings surfaces unmapped categories and predicates that silently
	// fell back to the default type.
	Warnings []string
}

func newSyncReport(runID string) *SyncReport {
	return &SyncReport{
		RunID:        runID,
		StartedAt:    time.Now(),
		NodesCreated: make(map[schema.NodeType]int),
		NodesFailed:  make(map[schema.NodeType]int),
		RelsCreated:  make(map[schema.RelationshipType]int),
		RelsFailed:   make(map[schema.RelationshipType]int),
	}
}

func (r *SyncReport) addItemError(kind, key string, err error) {
	r.ItemErrors = append(r.ItemErrors, ItemError{Kind: kind, Key: key, Err: err})
}

// TotalNodesCreated sums created nodes across all node types.
func (r *SyncReport) TotalNodesCreated() int {
	n := 0
	for _, c := range r.NodesCreated {
		n += c
	}
	return n
}

// TotalRelationshipsCreated sums created relationships across all types.
func (r *SyncReport) TotalRelationshipsCreated() int {
	n := 0
	for _, c := range r.RelsCreated {
		n += c
	}
	return n
}

// TotalFailed counts every failed node and relationship item.
func (r *SyncReport) TotalFailed() int {
	n := 0
	for _, c := range r.NodesFailed {
		n += c
	}
	for _, c := range r.RelsFailed {
		n += c
	}
	return n
}

// PaperSummary is a bounded listing entry for preview output.
type PaperSummary struct {
	PaperID string
	Title   string
}

// Preview describes exactly what a synchronization run would attempt, given
// the same corpus and zero item failures. It is computed without any backend
// access.
type Preview struct {
	NodeCounts         map[schema.NodeType]int
	RelationshipCounts map[schema.RelationshipType]int

	// Papers lists at most the first ten papers; PaperTotal carries the full
	// count.
	Papers     []PaperSummary
	PaperTotal int

	// Categories maps each included ontology category to its term count.
	Categories map[string]int

	Warnings []string
}

// TotalNodes sums the node count table.
func (p *Preview) TotalNodes() int {
	n := 0
	for _, c := range p.NodeCounts {
		n += c
	}
	return n
}

// TotalRelationships sums the relationship count table.
func (p *Preview) TotalRelationships() int {
	n := 0
	for _, c := range p.RelationshipCounts {
		n += c
	}
	return n
}
