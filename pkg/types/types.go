// Package types defines the record shapes shared by the corpus loader, the
// subgraph filter and the graph exporter. The JSON tags match the on-disk
// knowledge-base format exactly.
package types

import (
	"encoding/json"
	"errors"
	"regexp"
)

// Validation errors
var (
	ErrEmptyPaperID = errors.New("paper_id cannot be empty")
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptySubject = errors.New("relationship subject cannot be empty")
	ErrEmptyObject  = errors.New("relationship object cannot be empty")
)

// doiPattern matches registrant DOIs of the form 10.NNNN/suffix.
var doiPattern = regexp.MustCompile(`^10\.\d{4,}/\S+$`)

// Paper is a curated paper record from the master index.
type Paper struct {
	PaperID   string   `json:"paper_id"`
	DOI       string   `json:"doi,omitempty"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	Year      *int     `json:"year,omitempty"`
	DateAdded string   `json:"date_added,omitempty"`
}

// Validate checks the required Paper fields.
func (p *Paper) Validate() error {
	if p.PaperID == "" {
		return ErrEmptyPaperID
	}
	if p.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// HasValidDOI reports whether the paper carries a well-formed DOI. An empty
// DOI is allowed; a malformed one is just not valid.
func (p *Paper) HasValidDOI() bool {
	return doiPattern.MatchString(p.DOI)
}

// Term is a single ontology term within a category. Only Definition, Source
// and Synonyms are common to every category; the remaining fields appear on
// some categories and are copied through to the graph only when present.
type Term struct {
	Definition    string   `json:"definition,omitempty"`
	Synonyms      []string `json:"synonyms,omitempty"`
	Source        string   `json:"source,omitempty"`
	Variants      []string `json:"variants,omitempty"`
	Organisms     []string `json:"organisms,omitempty"`
	RadicalForms  []string `json:"radical_forms,omitempty"`
	TypicalValues string   `json:"typical_values,omitempty"`
	Applications  []string `json:"applications,omitempty"`
	Type          string   `json:"type,omitempty"`
}

// TermSet maps category name to term_id to term record.
type TermSet struct {
	Categories map[string]map[string]Term `json:"categories"`
}

// TermIDs returns the set of term identifiers across all categories.
func (s *TermSet) TermIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, terms := range s.Categories {
		for id := range terms {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Count returns the total number of terms across all categories.
func (s *TermSet) Count() int {
	n := 0
	for _, terms := range s.Categories {
		n += len(terms)
	}
	return n
}

// Relationship is a directed subject-predicate-object edge record.
type Relationship struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Source    string `json:"source,omitempty"`
}

// Validate checks the required Relationship endpoints.
func (r *Relationship) Validate() error {
	if r.Subject == "" {
		return ErrEmptySubject
	}
	if r.Object == "" {
		return ErrEmptyObject
	}
	return nil
}

// RelationshipSet holds the relationship list plus the hierarchies and
// process_flows substructures, which are copied verbatim and never
// individually validated.
type RelationshipSet struct {
	Relationships []Relationship  `json:"relationships"`
	Hierarchies   json.RawMessage `json:"hierarchies,omitempty"`
	ProcessFlows  json.RawMessage `json:"process_flows,omitempty"`
}

// Corpus is the full input to a preview or synchronization run.
type Corpus struct {
	Papers        []Paper
	Terms         TermSet
	Relationships RelationshipSet
}
