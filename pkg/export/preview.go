package export

import (
	"fmt"

	"github.com/magsense/graphkb/pkg/schema"
	"github.com/magsense/graphkb/pkg/types"
)

// previewPaperLimit bounds the paper listing in preview output.
const previewPaperLimit = 10

// BuildPreview computes the node and relationship count tables a
// synchronization of corpus would attempt. It performs no backend access and
// must agree with a zero-failure Synchronizer run over the same corpus.
func BuildPreview(corpus types.Corpus) *Preview {
	p := &Preview{
		NodeCounts:         make(map[schema.NodeType]int),
		RelationshipCounts: make(map[schema.RelationshipType]int),
		Categories:         make(map[string]int),
		PaperTotal:         len(corpus.Papers),
	}

	// The Paper row is always present in the count table, even at zero.
	p.NodeCounts[schema.NodePaper] = len(corpus.Papers)
	for i, paper := range corpus.Papers {
		if i == previewPaperLimit {
			break
		}
		p.Papers = append(p.Papers, PaperSummary{PaperID: paper.PaperID, Title: paper.Title})
	}

	for category, terms := range corpus.Terms.Categories {
		nodeType := schema.NodeTypeForCategory(category)
		p.NodeCounts[nodeType] += len(terms)
		p.Categories[category] = len(terms)
		if !schema.KnownCategory(category) {
			p.Warnings = append(p.Warnings, fmt.Sprintf(
				"category %q has no mapping, falling back to %s", category, nodeType))
		}
	}

	warned := make(map[string]struct{})
	for _, rel := range corpus.Relationships.Relationships {
		relType := schema.RelationshipTypeForPredicate(rel.Predicate)
		p.RelationshipCounts[relType]++
		if _, seen := warned[rel.Predicate]; !seen && !schema.KnownPredicate(rel.Predicate) {
			warned[rel.Predicate] = struct{}{}
			p.Warnings = append(p.Warnings, fmt.Sprintf(
				"predicate %q has no mapping, falling back to %s", rel.Predicate, relType))
		}
	}

	return p
}
