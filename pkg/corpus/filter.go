package corpus

import "github.com/magsense/graphkb/pkg/types"

// Criteria narrows a corpus to a subgraph view. Each field is an independent
// allow-list; a nil or empty field keeps everything it governs.
//
// Organisms is accepted for interface compatibility but is advisory only:
// it is not applied to term or relationship selection.
type Criteria struct {
	PaperIDs   []string
	Categories []string
	Organisms  []string
}

// Empty reports whether no criteria are set, in which case Apply is the
// identity transform.
func (c Criteria) Empty() bool {
	return len(c.PaperIDs) == 0 && len(c.Categories) == 0 && len(c.Organisms) == 0
}

// Apply returns the filtered corpus:
//
//   - papers whose paper_id is allow-listed, in corpus order;
//   - whole categories present in the category allow-list, terms within a
//     kept category are never filtered individually;
//   - relationships whose subject or object is a surviving term id. This is
//     a 1-hop expansion, not an induced subgraph: an edge is kept even when
//     its other endpoint belongs to an excluded category;
//   - hierarchies and process_flows copied verbatim.
func (c Criteria) Apply(corpus types.Corpus) types.Corpus {
	if c.Empty() {
		return corpus
	}

	out := types.Corpus{
		Papers: corpus.Papers,
		Terms:  corpus.Terms,
	}

	if len(c.PaperIDs) > 0 {
		allowed := make(map[string]struct{}, len(c.PaperIDs))
		for _, id := range c.PaperIDs {
			allowed[id] = struct{}{}
		}
		papers := make([]types.Paper, 0, len(c.PaperIDs))
		for _, p := range corpus.Papers {
			if _, ok := allowed[p.PaperID]; ok {
				papers = append(papers, p)
			}
		}
		out.Papers = papers
	}

	if len(c.Categories) > 0 {
		kept := types.TermSet{Categories: map[string]map[string]types.Term{}}
		for _, cat := range c.Categories {
			if terms, ok := corpus.Terms.Categories[cat]; ok {
				kept.Categories[cat] = terms
			}
		}
		out.Terms = kept
	}

	termIDs := out.Terms.TermIDs()

	rels := make([]types.Relationship, 0, len(corpus.Relationships.Relationships))
	for _, rel := range corpus.Relationships.Relationships {
		_, subjectIn := termIDs[rel.Subject]
		_, objectIn := termIDs[rel.Object]
		if subjectIn || objectIn {
			rels = append(rels, rel)
		}
	}
	out.Relationships = types.RelationshipSet{
		Relationships: rels,
		Hierarchies:   corpus.Relationships.Hierarchies,
		ProcessFlows:  corpus.Relationships.ProcessFlows,
	}

	return out
}
