// Package queries carries a catalog of named Cypher queries for exploring
// the exported knowledge graph from the command line.
package queries

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/magsense/graphkb/pkg/driver"
)

// Query is a named, documented Cypher statement.
type Query struct {
	Name        string
	Description string
	Cypher      string
}

var catalog = map[string]Query{
	"all_papers": {
		Description: "List all papers in the graph",
		Cypher: `MATCH (p:Paper)
RETURN p.paper_id, p.title, p.year
ORDER BY p.year DESC`,
	},
	"papers_studying_cryptochrome": {
		Description: "Find all papers studying cryptochrome",
		Cypher: `MATCH (p:Paper)-[:STUDIES]->(protein:Protein {name: 'cryptochrome'})
RETURN p.paper_id, p.title, p.year
ORDER BY p.year DESC`,
	},
	"cryptochrome_mechanisms": {
		Description: "Find mechanisms exhibited by cryptochrome",
		Cypher: `MATCH (p:Protein {name: 'cryptochrome'})-[:EXHIBITS]->(m:Mechanism)
RETURN p.name, m.name, m.definition`,
	},
	"radical_pair_papers": {
		Description: "Papers studying the radical pair mechanism",
		Cypher: `MATCH (p:Paper)-[:STUDIES]->(m:Mechanism {name: 'radical_pair_mechanism'})
RETURN p.paper_id, p.title, p.year
ORDER BY p.year DESC`,
	},
	"techniques_for_radical_pairs": {
		Description: "Techniques used to detect radical pairs",
		Cypher: `MATCH (t:Technique)-[r:DETECTS]->(term)
WHERE term.name CONTAINS 'radical'
RETURN t.name, type(r), term.name, r.source`,
	},
	"protein_cofactor_network": {
		Description: "Proteins and their cofactors",
		Cypher: `MATCH (p:Protein)-[:CONTAINS]->(c:Cofactor)
RETURN p.name, c.name, c.radical_forms`,
	},
	"radical_pair_formation": {
		Description: "Cofactors that form radical pairs",
		Cypher: `MATCH (c1:Cofactor)-[:FORMS_RADICAL_PAIR_WITH]->(c2:Cofactor)
RETURN c1.name, c2.name`,
	},
	"mechanism_requirements": {
		Description: "What mechanisms require (dependencies)",
		Cypher: `MATCH (m:Mechanism)-[:REQUIRES]->(req)
RETURN m.name, req.name, req.definition`,
	},
	"paper_citation_network": {
		Description: "Citation relationships between papers",
		Cypher: `MATCH (p1:Paper)-[:CITES]->(p2:Paper)
RETURN p1.paper_id, p1.title, p2.paper_id, p2.title`,
	},
	"most_studied_proteins": {
		Description: "Proteins studied by most papers",
		Cypher: `MATCH (p:Paper)-[:STUDIES]->(protein:Protein)
RETURN protein.name, count(p) AS paper_count
ORDER BY paper_count DESC
LIMIT 10`,
	},
	"most_used_techniques": {
		Description: "Most frequently used techniques",
		Cypher: `MATCH (p:Paper)-[:USES_TECHNIQUE]->(t:Technique)
RETURN t.name, t.type, count(p) AS usage_count
ORDER BY usage_count DESC
LIMIT 10`,
	},
	"magnetic_field_sensitivity": {
		Description: "Mechanisms sensitive to magnetic fields",
		Cypher: `MATCH (m:Mechanism)-[:SENSITIVE_TO]->(mf:MagneticField)
RETURN m.name, mf.name, mf.typical_values`,
	},
	"shortest_path_hyperfine_compass": {
		Description: "Shortest path from hyperfine coupling to magnetic compass",
		Cypher: `MATCH path = shortestPath(
  (start {name: 'hyperfine_coupling'})-[*]-(end {name: 'magnetic_compass'})
)
RETURN [node in nodes(path) | node.name] AS path_nodes,
       length(path) AS path_length`,
	},
	"term_hierarchy": {
		Description: "Hierarchical relationships (IS_A)",
		Cypher: `MATCH (child)-[:IS_A]->(parent)
RETURN child.name, parent.name
ORDER BY parent.name, child.name`,
	},
	"cryptochrome_neighborhood": {
		Description: "All nodes connected to cryptochrome (1 hop)",
		Cypher: `MATCH (crypto:Protein {name: 'cryptochrome'})-[r]-(connected)
RETURN crypto.name, type(r) AS relationship, connected.name, labels(connected)[0] AS node_type`,
	},
	"papers_by_year": {
		Description: "Count of papers by year",
		Cypher: `MATCH (p:Paper)
WHERE p.year IS NOT NULL
RETURN p.year, count(p) AS paper_count
ORDER BY p.year`,
	},
	"find_papers_with_doi": {
		Description: "Papers with valid DOIs",
		Cypher: `MATCH (p:Paper)
WHERE p.doi IS NOT NULL AND p.doi <> ''
RETURN p.paper_id, p.doi, p.title
ORDER BY p.paper_id`,
	},
	"organisms_and_proteins": {
		Description: "Organisms and the proteins they contain",
		Cypher: `MATCH (o:Organism)<-[:RELATED_TO]-(p:Protein)
RETURN o.name, collect(p.name) AS proteins`,
	},
	"computational_vs_experimental": {
		Description: "Count of computational vs experimental techniques",
		Cypher: `MATCH (t:Technique)
RETURN t.type, count(t) AS count
ORDER BY count DESC`,
	},
}

// Lookup returns the named query, or an error listing the available names.
func Lookup(name string) (Query, error) {
	q, ok := catalog[name]
	if !ok {
		return Query{}, fmt.Errorf("unknown query %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	q.Name = name
	return q, nil
}

// Names returns all catalog entries in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the full catalog sorted by name.
func All() []Query {
	queries := make([]Query, 0, len(catalog))
	for _, name := range Names() {
		q := catalog[name]
		q.Name = name
		queries = append(queries, q)
	}
	return queries
}

// Run executes a catalog query over the given session and writes a result
// listing capped at limit rows.
func Run(ctx context.Context, session driver.Session, w io.Writer, name string, limit int) error {
	q, err := Lookup(name)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = 100
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "QUERY: %s\n", q.Name)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Description: %s\n\nCypher:\n%s\n", q.Description, q.Cypher)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	records, err := session.Run(ctx, q.Cypher, nil)
	if err != nil {
		return fmt.Errorf("running %s: %w", q.Name, err)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "\nNo results found.")
		return nil
	}

	shown := len(records)
	if shown > limit {
		shown = limit
	}
	fmt.Fprintf(w, "\nResults (%d total, showing first %d):\n\n", len(records), shown)
	for i, record := range records[:shown] {
		fmt.Fprintf(w, "%d. %s\n", i+1, formatRecord(record))
	}
	if len(records) > limit {
		fmt.Fprintf(w, "\n... and %d more results\n", len(records)-limit)
	}
	return nil
}

// List writes the catalog as a name/description listing.
func List(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "AVAILABLE QUERIES")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	for _, q := range All() {
		fmt.Fprintf(w, "\n%s:\n  %s\n", q.Name, q.Description)
	}
	fmt.Fprintf(w, "\nTotal queries: %d\n", len(catalog))
}

func formatRecord(record map[string]any) string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, record[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
