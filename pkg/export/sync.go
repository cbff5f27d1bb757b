package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/magsense/graphkb/pkg/driver"
	"github.com/magsense/graphkb/pkg/schema"
	"github.com/magsense/graphkb/pkg/types"
)

// ErrEndpointNotFound marks a relationship whose subject or object has no
// node with a matching name anywhere in the graph.
var ErrEndpointNotFound = errors.New("relationship endpoint not found")

// Synchronizer writes a corpus into the backend with idempotent upsert
// semantics. Every write is a natural-key MERGE, so re-running over
// unchanged input converges without duplicating nodes or edges.
//
// Connection acquisition failure is fatal. Every per-item write failure is
// recoverable: it is logged with the offending key, counted in the report,
// and the batch continues.
type Synchronizer struct {
	conn   driver.Connector
	logger *slog.Logger
}

// NewSynchronizer creates a synchronizer on the given backend connection.
func NewSynchronizer(conn driver.Connector, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{conn: conn, logger: logger}
}

// Sync materializes the corpus: index assurance, then paper, term and
// relationship upserts, all within a single scoped session.
func (s *Synchronizer) Sync(ctx context.Context, corpus types.Corpus) (*SyncReport, error) {
	if err := s.conn.Connect(ctx); err != nil {
		return nil, err
	}

	session, err := s.conn.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close(ctx)

	report := newSyncReport(uuid.NewString())
	s.logger.Info("synchronization started", "run_id", report.RunID,
		"papers", len(corpus.Papers), "terms", corpus.Terms.Count(),
		"relationships", len(corpus.Relationships.Relationships))

	s.ensureIndexes(ctx, session, report)
	s.syncPapers(ctx, session, corpus.Papers, report)
	s.syncTerms(ctx, session, corpus.Terms, report)
	s.syncRelationships(ctx, session, corpus.Relationships, report)

	report.FinishedAt = time.Now()
	s.logger.Info("synchronization finished", "run_id", report.RunID,
		"nodes_created", report.TotalNodesCreated(),
		"relationships_created", report.TotalRelationshipsCreated(),
		"failed", report.TotalFailed())
	return report, nil
}

// ensureIndexes issues a create-if-not-exists statement for every declared
// index. A failing statement is recorded and skipped; it never blocks the
// remaining indexes or the run.
func (s *Synchronizer) ensureIndexes(ctx context.Context, session driver.Session, report *SyncReport) {
	for _, stmt := range schema.IndexStatements() {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			s.logger.Warn("index creation failed", "statement", stmt, "error", err)
			report.addItemError(ItemKindIndex, stmt, err)
		}
	}
}

const paperUpsertQuery = `
MERGE (p:Paper {paper_id: $paper_id})
SET p.doi = $doi,
    p.title = $title,
    p.authors = $authors,
    p.year = $year,
    p.date_added = $date_added`

// syncPapers match-or-creates one Paper node per record, keyed by paper_id,
// and unconditionally overwrites the mutable fields.
func (s *Synchronizer) syncPapers(ctx context.Context, session driver.Session, papers []types.Paper, report *SyncReport) {
	for i := range papers {
		paper := &papers[i]
		if err := s.upsertPaper(ctx, session, paper); err != nil {
			s.logger.Warn("paper upsert failed", "paper_id", paper.PaperID, "error", err)
			report.NodesFailed[schema.NodePaper]++
			report.addItemError(ItemKindNode, paper.PaperID, err)
			continue
		}
		report.NodesCreated[schema.NodePaper]++
	}
}

func (s *Synchronizer) upsertPaper(ctx context.Context, session driver.Session, paper *types.Paper) error {
	if err := paper.Validate(); err != nil {
		return err
	}

	var year any
	if paper.Year != nil {
		year = *paper.Year
	}
	authors := paper.Authors
	if authors == nil {
		authors = []string{}
	}

	_, err := session.Run(ctx, paperUpsertQuery, map[string]any{
		"paper_id":   paper.PaperID,
		"doi":        paper.DOI,
		"title":      paper.Title,
		"authors":    authors,
		"year":       year,
		"date_added": paper.DateAdded,
	})
	return err
}

// syncTerms resolves each category to its node type, then match-or-creates a
// node per term keyed by name. Optional category-specific fields are set
// only when present in the source record; absent fields on existing nodes
// are left untouched. Categories are processed in sorted order so runs are
// reproducible.
func (s *Synchronizer) syncTerms(ctx context.Context, session driver.Session, terms types.TermSet, report *SyncReport) {
	categories := make([]string, 0, len(terms.Categories))
	for category := range terms.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	warned := make(map[string]struct{})
	for _, category := range categories {
		nodeType := schema.NodeTypeForCategory(category)
		if _, seen := warned[category]; !seen && !schema.KnownCategory(category) {
			warned[category] = struct{}{}
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"category %q has no mapping, falling back to %s", category, nodeType))
		}

		termIDs := make([]string, 0, len(terms.Categories[category]))
		for id := range terms.Categories[category] {
			termIDs = append(termIDs, id)
		}
		sort.Strings(termIDs)

		query := fmt.Sprintf("MERGE (n:%s {name: $name})\nSET n += $props", nodeType)
		for _, termID := range termIDs {
			term := terms.Categories[category][termID]
			_, err := session.Run(ctx, query, map[string]any{
				"name":  termID,
				"props": termProperties(termID, term),
			})
			if err != nil {
				s.logger.Warn("term upsert failed", "term_id", termID,
					"category", category, "error", err)
				report.NodesFailed[nodeType]++
				report.addItemError(ItemKindNode, termID, err)
				continue
			}
			report.NodesCreated[nodeType]++
		}
	}
}

// termProperties builds the property map for a term node. Definition and
// source are always written; optional fields are included only when the
// source record carries them.
func termProperties(termID string, term types.Term) map[string]any {
	props := map[string]any{
		"name":       termID,
		"definition": term.Definition,
		"source":     term.Source,
	}
	if len(term.Synonyms) > 0 {
		props["synonyms"] = term.Synonyms
	}
	if len(term.Variants) > 0 {
		props["variants"] = term.Variants
	}
	if len(term.Organisms) > 0 {
		props["organisms"] = term.Organisms
	}
	if len(term.RadicalForms) > 0 {
		props["radical_forms"] = term.RadicalForms
	}
	if term.TypicalValues != "" {
		props["typical_values"] = term.TypicalValues
	}
	if len(term.Applications) > 0 {
		props["applications"] = term.Applications
	}
	if term.Type != "" {
		props["type"] = term.Type
	}
	return props
}

// Endpoint resolution deliberately matches by name across any label; the
// declared endpoint constraints are documentation only. Two differently
// typed nodes sharing a name would be conflated here.
const relationshipUpsertQuery = `
MATCH (a {name: $subject})
MATCH (b {name: $object})
MERGE (a)-[r:%s]->(b)
SET r.predicate = $predicate,
    r.source = $source
RETURN count(r) AS created`

// syncRelationships match-or-creates one directed edge per relationship
// tuple. A tuple whose subject or object matches no node fails per-item and
// the batch continues.
func (s *Synchronizer) syncRelationships(ctx context.Context, session driver.Session, rels types.RelationshipSet, report *SyncReport) {
	warned := make(map[string]struct{})
	for _, rel := range rels.Relationships {
		relType := schema.RelationshipTypeForPredicate(rel.Predicate)
		if _, seen := warned[rel.Predicate]; !seen && !schema.KnownPredicate(rel.Predicate) {
			warned[rel.Predicate] = struct{}{}
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"predicate %q has no mapping, falling back to %s", rel.Predicate, relType))
		}

		key := fmt.Sprintf("%s-[%s]->%s", rel.Subject, rel.Predicate, rel.Object)
		if err := s.upsertRelationship(ctx, session, rel, relType); err != nil {
			s.logger.Warn("relationship upsert failed", "relationship", key, "error", err)
			report.RelsFailed[relType]++
			report.addItemError(ItemKindRelationship, key, err)
			continue
		}
		report.RelsCreated[relType]++
	}
}

func (s *Synchronizer) upsertRelationship(ctx context.Context, session driver.Session, rel types.Relationship, relType schema.RelationshipType) error {
	if err := rel.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(relationshipUpsertQuery, relType)
	records, err := session.Run(ctx, query, map[string]any{
		"subject":   rel.Subject,
		"object":    rel.Object,
		"predicate": rel.Predicate,
		"source":    rel.Source,
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return ErrEndpointNotFound
	}
	if created, ok := records[0]["created"].(int64); ok && created == 0 {
		return ErrEndpointNotFound
	}
	return nil
}
