// Package schema defines the closed node and relationship type system for
// the magnetosensitivity knowledge graph, together with the mappings from
// ontology categories and predicates onto it.
//
// Everything in this package is immutable: the mapping tables are built once
// at init and shared read-only across the exporter, the preview reporter and
// the synchronizer.
package schema

import "fmt"

// NodeType is one of the eight node labels in the graph.
type NodeType string

const (
	NodePaper         NodeType = "Paper"
	NodeTerm          NodeType = "Term"
	NodeProtein       NodeType = "Protein"
	NodeOrganism      NodeType = "Organism"
	NodeTechnique     NodeType = "Technique"
	NodeMagneticField NodeType = "MagneticField"
	NodeCofactor      NodeType = "Cofactor"
	NodeMechanism     NodeType = "Mechanism"
)

// AllNodeTypes returns the node types in declaration order.
func AllNodeTypes() []NodeType {
	return []NodeType{
		NodePaper,
		NodeTerm,
		NodeProtein,
		NodeOrganism,
		NodeTechnique,
		NodeMagneticField,
		NodeCofactor,
		NodeMechanism,
	}
}

// KeyProperty returns the natural-key property for the node type. Papers are
// keyed by paper_id; every other type is keyed by name.
func (t NodeType) KeyProperty() string {
	switch t {
	case NodePaper:
		return "paper_id"
	case NodeTerm, NodeProtein, NodeOrganism, NodeTechnique,
		NodeMagneticField, NodeCofactor, NodeMechanism:
		return "name"
	default:
		return "name"
	}
}

// IndexProperties returns the properties that carry a backend index for the
// node type. The key property always comes first.
func (t NodeType) IndexProperties() []string {
	switch t {
	case NodePaper:
		return []string{"paper_id", "doi"}
	case NodeTerm:
		return []string{"name", "category"}
	case NodeTechnique:
		return []string{"name", "type"}
	case NodeProtein, NodeOrganism, NodeMagneticField, NodeCofactor, NodeMechanism:
		return []string{"name"}
	default:
		return []string{"name"}
	}
}

func (t NodeType) description() string {
	switch t {
	case NodePaper:
		return "Research paper or book"
	case NodeTerm:
		return "Ontology term (concept, interaction, state)"
	case NodeProtein:
		return "Protein involved in magnetosensitivity"
	case NodeOrganism:
		return "Species studied for magnetosensitivity"
	case NodeTechnique:
		return "Experimental or computational technique"
	case NodeMagneticField:
		return "Magnetic field type or configuration"
	case NodeCofactor:
		return "Molecular cofactor (e.g. FAD, FMN)"
	case NodeMechanism:
		return "Biological or physical mechanism"
	default:
		return ""
	}
}

// RelationshipType is one of the fourteen edge types in the graph.
type RelationshipType string

const (
	RelCites                RelationshipType = "CITES"
	RelStudies              RelationshipType = "STUDIES"
	RelUsesTechnique        RelationshipType = "USES_TECHNIQUE"
	RelDefinesTerm          RelationshipType = "DEFINES_TERM"
	RelIsA                  RelationshipType = "IS_A"
	RelRelatedTo            RelationshipType = "RELATED_TO"
	RelExhibits             RelationshipType = "EXHIBITS"
	RelContains             RelationshipType = "CONTAINS"
	RelDetects              RelationshipType = "DETECTS"
	RelModels               RelationshipType = "MODELS"
	RelSensitiveTo          RelationshipType = "SENSITIVE_TO"
	RelRequires             RelationshipType = "REQUIRES"
	RelFormsRadicalPairWith RelationshipType = "FORMS_RADICAL_PAIR_WITH"
	RelElectronDonorFor     RelationshipType = "ELECTRON_DONOR_FOR"
)

// AllRelationshipTypes returns the relationship types in declaration order.
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelCites,
		RelStudies,
		RelUsesTechnique,
		RelDefinesTerm,
		RelIsA,
		RelRelatedTo,
		RelExhibits,
		RelContains,
		RelDetects,
		RelModels,
		RelSensitiveTo,
		RelRequires,
		RelFormsRadicalPairWith,
		RelElectronDonorFor,
	}
}

// EndpointConstraint documents the declared endpoint types for a relationship.
// The constraint is descriptive only: the synchronizer resolves endpoints by
// name across any label and does not enforce it at write time.
type EndpointConstraint struct {
	From NodeType
	To   []NodeType
}

// Constraint returns the documented endpoint constraint for the relationship
// type.
func (r RelationshipType) Constraint() EndpointConstraint {
	switch r {
	case RelCites:
		return EndpointConstraint{From: NodePaper, To: []NodeType{NodePaper}}
	case RelStudies:
		return EndpointConstraint{From: NodePaper, To: []NodeType{NodeProtein, NodeOrganism, NodeMechanism}}
	case RelUsesTechnique:
		return EndpointConstraint{From: NodePaper, To: []NodeType{NodeTechnique}}
	case RelDefinesTerm:
		return EndpointConstraint{From: NodePaper, To: []NodeType{NodeTerm}}
	case RelIsA:
		return EndpointConstraint{From: NodeTerm, To: []NodeType{NodeTerm}}
	case RelRelatedTo:
		return EndpointConstraint{From: NodeTerm, To: []NodeType{NodeTerm}}
	case RelExhibits:
		return EndpointConstraint{From: NodeProtein, To: []NodeType{NodeMechanism}}
	case RelContains:
		return EndpointConstraint{From: NodeProtein, To: []NodeType{NodeCofactor}}
	case RelDetects:
		return EndpointConstraint{From: NodeTechnique, To: []NodeType{NodeTerm}}
	case RelModels:
		return EndpointConstraint{From: NodeTechnique, To: []NodeType{NodeMechanism, NodeTerm}}
	case RelSensitiveTo:
		return EndpointConstraint{From: NodeMechanism, To: []NodeType{NodeMagneticField}}
	case RelRequires:
		return EndpointConstraint{From: NodeMechanism, To: []NodeType{NodeTerm}}
	case RelFormsRadicalPairWith:
		return EndpointConstraint{From: NodeCofactor, To: []NodeType{NodeCofactor}}
	case RelElectronDonorFor:
		return EndpointConstraint{From: NodeCofactor, To: []NodeType{NodeCofactor}}
	default:
		return EndpointConstraint{From: NodeTerm, To: []NodeType{NodeTerm}}
	}
}

// categoryNodeTypes maps ontology categories onto node types. Categories not
// listed here fall back to Term.
var categoryNodeTypes = map[string]NodeType{
	"mechanisms":              NodeMechanism,
	"proteins":                NodeProtein,
	"cofactors_and_radicals":  NodeCofactor,
	"organisms":               NodeOrganism,
	"magnetic_fields":         NodeMagneticField,
	"experimental_techniques": NodeTechnique,
	"computational_methods":   NodeTechnique,
	"magnetic_interactions":   NodeTerm,
	"photochemistry":          NodeTerm,
	"spin_states":             NodeTerm,
}

// predicateRelationshipTypes maps ontology predicates onto relationship
// types. Predicates not listed here fall back to RELATED_TO.
var predicateRelationshipTypes = map[string]RelationshipType{
	"is_a":                    RelIsA,
	"contains":                RelContains,
	"exhibits":                RelExhibits,
	"located_in":              RelRelatedTo,
	"related_to":              RelRelatedTo,
	"sensitive_to":            RelSensitiveTo,
	"requires":                RelRequires,
	"depends_on":              RelRelatedTo,
	"detects":                 RelDetects,
	"measures":                RelDetects,
	"monitors":                RelDetects,
	"models":                  RelModels,
	"predicts":                RelModels,
	"drives":                  RelRequires,
	"provides":                RelRelatedTo,
	"isolates":                RelRelatedTo,
	"cofactor_of":             RelContains,
	"forms_radical_pair_with": RelFormsRadicalPairWith,
	"electron_donor_for":      RelElectronDonorFor,
	"triggers":                RelRequires,
	"forms":                   RelRelatedTo,
	"interconverts_with":      RelRelatedTo,
	"uses":                    RelRelatedTo,
	"produces":                RelRelatedTo,
	"characteristic_of":       RelRelatedTo,
	"enhances":                RelRelatedTo,
}

// NodeTypeForCategory returns the node type for an ontology category. The
// mapping is total: unknown categories (including the empty string) map to
// Term and never fail.
func NodeTypeForCategory(category string) NodeType {
	if t, ok := categoryNodeTypes[category]; ok {
		return t
	}
	return NodeTerm
}

// RelationshipTypeForPredicate returns the relationship type for an ontology
// predicate. The mapping is total: unknown predicates (including the empty
// string) map to RELATED_TO and never fail.
func RelationshipTypeForPredicate(predicate string) RelationshipType {
	if t, ok := predicateRelationshipTypes[predicate]; ok {
		return t
	}
	return RelRelatedTo
}

// KnownCategory reports whether the category has an explicit mapping, as
// opposed to relying on the Term fallback.
func KnownCategory(category string) bool {
	_, ok := categoryNodeTypes[category]
	return ok
}

// KnownPredicate reports whether the predicate has an explicit mapping, as
// opposed to relying on the RELATED_TO fallback.
func KnownPredicate(predicate string) bool {
	_, ok := predicateRelationshipTypes[predicate]
	return ok
}

// IndexStatements returns one "create if not exists" index statement per
// indexed property of every node type.
func IndexStatements() []string {
	var stmts []string
	for _, t := range AllNodeTypes() {
		for _, prop := range t.IndexProperties() {
			stmts = append(stmts, fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS FOR (n:%s) ON (n.%s)", t, prop))
		}
	}
	return stmts
}
