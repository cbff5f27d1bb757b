package schema

import (
	"fmt"
	"strings"
)

// Summary returns a formatted description of the graph schema: every node
// type with its indexed properties, and every relationship type with its
// documented endpoints.
func Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString(rule + "\n")
	b.WriteString("KNOWLEDGE GRAPH SCHEMA\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "\nNode Types (%d):\n", len(AllNodeTypes()))
	for _, t := range AllNodeTypes() {
		fmt.Fprintf(&b, "\n  %s: %s\n", t, t.description())
		fmt.Fprintf(&b, "    Key: %s\n", t.KeyProperty())
		fmt.Fprintf(&b, "    Indexes: %s\n", strings.Join(t.IndexProperties(), ", "))
	}

	fmt.Fprintf(&b, "\nRelationship Types (%d):\n", len(AllRelationshipTypes()))
	for _, r := range AllRelationshipTypes() {
		c := r.Constraint()
		to := make([]string, len(c.To))
		for i, t := range c.To {
			to[i] = string(t)
		}
		fmt.Fprintf(&b, "\n  (%s)-[:%s]->(%s)\n", c.From, r, strings.Join(to, ", "))
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}
