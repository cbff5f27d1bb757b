package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTypeForCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		want     NodeType
	}{
		{"mechanisms", NodeMechanism},
		{"proteins", NodeProtein},
		{"cofactors_and_radicals", NodeCofactor},
		{"organisms", NodeOrganism},
		{"magnetic_fields", NodeMagneticField},
		{"experimental_techniques", NodeTechnique},
		{"computational_methods", NodeTechnique},
		{"magnetic_interactions", NodeTerm},
		{"photochemistry", NodeTerm},
		{"spin_states", NodeTerm},
		// Unknown inputs fall back to Term, never fail.
		{"", NodeTerm},
		{"no_such_category", NodeTerm},
		{"MECHANISMS", NodeTerm},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, NodeTypeForCategory(tt.category))
		})
	}
}

func TestRelationshipTypeForPredicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		predicate string
		want      RelationshipType
	}{
		{"is_a", RelIsA},
		{"contains", RelContains},
		{"cofactor_of", RelContains},
		{"exhibits", RelExhibits},
		{"sensitive_to", RelSensitiveTo},
		{"requires", RelRequires},
		{"drives", RelRequires},
		{"triggers", RelRequires},
		{"detects", RelDetects},
		{"measures", RelDetects},
		{"monitors", RelDetects},
		{"models", RelModels},
		{"predicts", RelModels},
		{"forms_radical_pair_with", RelFormsRadicalPairWith},
		{"electron_donor_for", RelElectronDonorFor},
		{"related_to", RelRelatedTo},
		{"enhances", RelRelatedTo},
		// Unknown inputs fall back to RELATED_TO, never fail.
		{"", RelRelatedTo},
		{"frobnicates", RelRelatedTo},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			assert.Equal(t, tt.want, RelationshipTypeForPredicate(tt.predicate))
		})
	}
}

func TestClosedEnumerations(t *testing.T) {
	t.Parallel()

	assert.Len(t, AllNodeTypes(), 8)
	assert.Len(t, AllRelationshipTypes(), 14)

	seen := map[NodeType]bool{}
	for _, nt := range AllNodeTypes() {
		assert.False(t, seen[nt], "duplicate node type %s", nt)
		seen[nt] = true
	}
}

func TestKeyProperties(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "paper_id", NodePaper.KeyProperty())
	for _, nt := range AllNodeTypes() {
		if nt == NodePaper {
			continue
		}
		assert.Equal(t, "name", nt.KeyProperty(), "node type %s", nt)
	}
}

func TestIndexStatements(t *testing.T) {
	t.Parallel()

	stmts := IndexStatements()
	require.NotEmpty(t, stmts)

	// One statement per indexed property, all idempotent.
	total := 0
	for _, nt := range AllNodeTypes() {
		total += len(nt.IndexProperties())
	}
	assert.Len(t, stmts, total)

	for _, s := range stmts {
		assert.Contains(t, s, "CREATE INDEX IF NOT EXISTS")
	}
	assert.Contains(t, stmts[0], "(n:Paper) ON (n.paper_id)")
}

func TestConstraintsCoverAllRelationshipTypes(t *testing.T) {
	t.Parallel()

	for _, rt := range AllRelationshipTypes() {
		c := rt.Constraint()
		assert.NotEmpty(t, c.From, "relationship %s", rt)
		assert.NotEmpty(t, c.To, "relationship %s", rt)
	}
}

func TestKnownCategoryAndPredicate(t *testing.T) {
	t.Parallel()

	assert.True(t, KnownCategory("proteins"))
	assert.False(t, KnownCategory("quantum_gravity"))
	assert.True(t, KnownPredicate("is_a"))
	assert.False(t, KnownPredicate("quantum_gravity"))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	s := Summary()
	for _, nt := range AllNodeTypes() {
		assert.True(t, strings.Contains(s, string(nt)), "summary missing %s", nt)
	}
	assert.Contains(t, s, "FORMS_RADICAL_PAIR_WITH")
}
