package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magsense/graphkb/pkg/driver"
	"github.com/magsense/graphkb/pkg/types"
)

// fakeGraph is an in-memory stand-in for the backend. It emulates the MERGE
// semantics the synchronizer relies on: nodes keyed by natural key, edges
// keyed by (subject, type, object), endpoint matching by name.
type fakeGraph struct {
	papers map[string]map[string]any // paper_id -> props
	nodes  map[string]map[string]any // name -> props
	edges  map[string]map[string]any // subject|TYPE|object -> props
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		papers: map[string]map[string]any{},
		nodes:  map[string]map[string]any{},
		edges:  map[string]map[string]any{},
	}
}

type fakeConnector struct {
	graph      *fakeGraph
	connectErr error

	sessions []*fakeSession
}

func (c *fakeConnector) Connect(ctx context.Context) error { return c.connectErr }

func (c *fakeConnector) Session(ctx context.Context) (driver.Session, error) {
	s := &fakeSession{graph: c.graph}
	c.sessions = append(c.sessions, s)
	return s, nil
}

func (c *fakeConnector) ClearAll(ctx context.Context, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	c.graph.papers = map[string]map[string]any{}
	c.graph.nodes = map[string]map[string]any{}
	c.graph.edges = map[string]map[string]any{}
	return true, nil
}

func (c *fakeConnector) Stats(ctx context.Context) (*driver.Stats, error) {
	return &driver.Stats{
		NodeCount:         int64(len(c.graph.papers) + len(c.graph.nodes)),
		RelationshipCount: int64(len(c.graph.edges)),
	}, nil
}

func (c *fakeConnector) Close(ctx context.Context) error { return nil }

type fakeSession struct {
	graph     *fakeGraph
	closed    int
	failIndex bool
	failNames map[string]bool
}

func (s *fakeSession) Close(ctx context.Context) error {
	s.closed++
	return nil
}

func (s *fakeSession) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	switch {
	case strings.HasPrefix(cypher, "CREATE INDEX"):
		if s.failIndex {
			return nil, errors.New("index creation rejected")
		}
		return nil, nil

	case strings.Contains(cypher, "MERGE (p:Paper"):
		id := params["paper_id"].(string)
		if s.failNames[id] {
			return nil, errors.New("write rejected")
		}
		s.graph.papers[id] = params
		return nil, nil

	case strings.Contains(cypher, "{name: $name}"):
		name := params["name"].(string)
		if s.failNames[name] {
			return nil, errors.New("write rejected")
		}
		props, ok := s.graph.nodes[name]
		if !ok {
			props = map[string]any{}
			s.graph.nodes[name] = props
		}
		for k, v := range params["props"].(map[string]any) {
			props[k] = v
		}
		return nil, nil

	case strings.Contains(cypher, "MATCH (a {name: $subject})"):
		subject := params["subject"].(string)
		object := params["object"].(string)
		_, subjectOK := s.graph.nodes[subject]
		_, objectOK := s.graph.nodes[object]
		if !subjectOK || !objectOK {
			return []map[string]any{{"created": int64(0)}}, nil
		}
		relType := cypher[strings.Index(cypher, "[r:")+3 : strings.Index(cypher, "]->")]
		s.graph.edges[subject+"|"+relType+"|"+object] = params
		return []map[string]any{{"created": int64(1)}}, nil
	}
	return nil, errors.New("unexpected query: " + cypher)
}

func syncCorpus() types.Corpus {
	year := 2016
	return types.Corpus{
		Papers: []types.Paper{
			{PaperID: "nchem_2447", DOI: "10.1038/nchem.2447", Title: "The radical-pair mechanism", Authors: []string{"Hore"}, Year: &year},
			{PaperID: "annurev_032116", Title: "Magnetoreception in birds"},
		},
		Terms: types.TermSet{Categories: map[string]map[string]types.Term{
			"mechanisms": {
				"radical_pair_mechanism": {Definition: "spin-correlated radical pair", Source: "10.1038/nchem.2447"},
			},
			"proteins": {
				"cryptochrome": {Definition: "blue-light photoreceptor", Organisms: []string{"erithacus_rubecula"}},
			},
			"cofactors_and_radicals": {
				"FAD": {Definition: "flavin adenine dinucleotide", RadicalForms: []string{"FAD•-", "FADH•"}},
			},
		}},
		Relationships: types.RelationshipSet{Relationships: []types.Relationship{
			{Subject: "cryptochrome", Predicate: "exhibits", Object: "radical_pair_mechanism", Source: "10.1038/nchem.2447"},
			{Subject: "cryptochrome", Predicate: "contains", Object: "FAD"},
		}},
	}
}

func TestSyncCreatesNodesAndRelationships(t *testing.T) {
	t.Parallel()

	conn := &fakeConnector{graph: newFakeGraph()}
	sync := NewSynchronizer(conn, nil)

	report, err := sync.Sync(context.Background(), syncCorpus())
	require.NoError(t, err)

	assert.Equal(t, 2, report.NodesCreated["Paper"])
	assert.Equal(t, 1, report.NodesCreated["Mechanism"])
	assert.Equal(t, 1, report.NodesCreated["Protein"])
	assert.Equal(t, 1, report.NodesCreated["Cofactor"])
	assert.Equal(t, 5, report.TotalNodesCreated())

	assert.Equal(t, 1, report.RelsCreated["EXHIBITS"])
	assert.Equal(t, 1, report.RelsCreated["CONTAINS"])
	assert.Zero(t, report.TotalFailed())
	assert.NotEmpty(t, report.RunID)

	// Optional fields reach the graph only when present in the source.
	assert.Contains(t, conn.graph.nodes["FAD"], "radical_forms")
	assert.NotContains(t, conn.graph.nodes["FAD"], "organisms")
	assert.Contains(t, conn.graph.nodes["cryptochrome"], "organisms")
}

func TestSyncIsIdempotent(t *testing.T) {
	t.Parallel()

	conn := &fakeConnector{graph: newFakeGraph()}
	sync := NewSynchronizer(conn, nil)
	corpus := syncCorpus()

	first, err := sync.Sync(context.Background(), corpus)
	require.NoError(t, err)

	nodesAfterFirst := len(conn.graph.papers) + len(conn.graph.nodes)
	edgesAfterFirst := len(conn.graph.edges)

	second, err := sync.Sync(context.Background(), corpus)
	require.NoError(t, err)

	assert.Equal(t, nodesAfterFirst, len(conn.graph.papers)+len(conn.graph.nodes))
	assert.Equal(t, edgesAfterFirst, len(conn.graph.edges))
	assert.Equal(t, first.TotalNodesCreated(), second.TotalNodesCreated())
	assert.Equal(t, first.TotalRelationshipsCreated(), second.TotalRelationshipsCreated())
}

func TestSyncMissingEndpointFailsPerItem(t *testing.T) {
	t.Parallel()

	corpus := syncCorpus()
	corpus.Relationships.Relationships = []types.Relationship{
		{Subject: "no_such_term", Predicate: "exhibits", Object: "radical_pair_mechanism"},
		{Subject: "cryptochrome", Predicate: "contains", Object: "FAD"},
	}

	conn := &fakeConnector{graph: newFakeGraph()}
	report, err := NewSynchronizer(conn, nil).Sync(context.Background(), corpus)
	require.NoError(t, err)

	// The failed relationship is counted, not created, and does not stop
	// the one after it.
	assert.Equal(t, 1, report.RelsFailed["EXHIBITS"])
	assert.Zero(t, report.RelsCreated["EXHIBITS"])
	assert.Equal(t, 1, report.RelsCreated["CONTAINS"])

	require.Len(t, report.ItemErrors, 1)
	assert.Equal(t, ItemKindRelationship, report.ItemErrors[0].Kind)
	assert.Contains(t, report.ItemErrors[0].Key, "no_such_term")
	assert.ErrorIs(t, report.ItemErrors[0].Err, ErrEndpointNotFound)
}

func TestSyncConnectionFailureIsFatal(t *testing.T) {
	t.Parallel()

	conn := &fakeConnector{
		graph:      newFakeGraph(),
		connectErr: &driver.ConnError{URI: "bolt://down:7687", Err: errors.New("refused")},
	}

	_, err := NewSynchronizer(conn, nil).Sync(context.Background(), syncCorpus())
	require.Error(t, err)

	var connErr *driver.ConnError
	assert.ErrorAs(t, err, &connErr)
	assert.Empty(t, conn.sessions, "no session may be acquired after a failed connect")
	assert.Empty(t, conn.graph.papers, "no writes may happen after a failed connect")
}

func TestSyncReleasesSessionOnce(t *testing.T) {
	t.Parallel()

	conn := &fakeConnector{graph: newFakeGraph()}
	_, err := NewSynchronizer(conn, nil).Sync(context.Background(), syncCorpus())
	require.NoError(t, err)

	require.Len(t, conn.sessions, 1)
	assert.Equal(t, 1, conn.sessions[0].closed)
}

func TestSyncIndexFailureDoesNotBlockRun(t *testing.T) {
	t.Parallel()

	graph := newFakeGraph()
	conn := &failingIndexConnector{fakeConnector{graph: graph}}

	report, err := NewSynchronizer(conn, nil).Sync(context.Background(), syncCorpus())
	require.NoError(t, err)

	indexErrors := 0
	for _, item := range report.ItemErrors {
		if item.Kind == ItemKindIndex {
			indexErrors++
		}
	}
	assert.NotZero(t, indexErrors)
	assert.Equal(t, 5, report.TotalNodesCreated())
	assert.Equal(t, 2, report.TotalRelationshipsCreated())
}

type failingIndexConnector struct {
	fakeConnector
}

func (c *failingIndexConnector) Session(ctx context.Context) (driver.Session, error) {
	s := &fakeSession{graph: c.graph, failIndex: true}
	c.sessions = append(c.sessions, s)
	return s, nil
}

func TestSyncItemWriteFailureContinuesBatch(t *testing.T) {
	t.Parallel()

	graph := newFakeGraph()
	conn := &rejectingConnector{fakeConnector{graph: graph}, map[string]bool{"cryptochrome": true}}

	report, err := NewSynchronizer(conn, nil).Sync(context.Background(), syncCorpus())
	require.NoError(t, err)

	assert.Equal(t, 1, report.NodesFailed["Protein"])
	assert.Equal(t, 1, report.NodesCreated["Mechanism"])
	assert.Equal(t, 1, report.NodesCreated["Cofactor"])

	// Both relationships touch the rejected node and now fail on the
	// missing endpoint, but the run still completes.
	assert.Equal(t, 1, report.RelsFailed["EXHIBITS"])
	assert.Equal(t, 1, report.RelsFailed["CONTAINS"])
	assert.Equal(t, 3, report.TotalFailed())
	assert.False(t, report.FinishedAt.IsZero())
}

type rejectingConnector struct {
	fakeConnector
	failNames map[string]bool
}

func (c *rejectingConnector) Session(ctx context.Context) (driver.Session, error) {
	s := &fakeSession{graph: c.graph, failNames: c.failNames}
	c.sessions = append(c.sessions, s)
	return s, nil
}

func TestSyncWarnsOnUnmappedCategoryAndPredicate(t *testing.T) {
	t.Parallel()

	corpus := types.Corpus{
		Terms: types.TermSet{Categories: map[string]map[string]types.Term{
			"mystery_category": {"odd_term": {Definition: "?"}},
		}},
		Relationships: types.RelationshipSet{Relationships: []types.Relationship{
			{Subject: "odd_term", Predicate: "frobnicates", Object: "odd_term"},
		}},
	}

	conn := &fakeConnector{graph: newFakeGraph()}
	report, err := NewSynchronizer(conn, nil).Sync(context.Background(), corpus)
	require.NoError(t, err)

	// Fallbacks are non-fatal: the term lands as Term, the relationship as
	// RELATED_TO, and both fallbacks are surfaced as warnings.
	assert.Equal(t, 1, report.NodesCreated["Term"])
	assert.Equal(t, 1, report.RelsCreated["RELATED_TO"])
	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0], "mystery_category")
	assert.Contains(t, report.Warnings[1], "frobnicates")
}

func TestClearAllContract(t *testing.T) {
	t.Parallel()

	conn := &fakeConnector{graph: newFakeGraph()}
	_, err := NewSynchronizer(conn, nil).Sync(context.Background(), syncCorpus())
	require.NoError(t, err)

	ok, err := conn.ClearAll(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, ok)

	stats, err := conn.Stats(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, stats.NodeCount, "unconfirmed clear must not delete anything")

	ok, err = conn.ClearAll(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err = conn.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.NodeCount)
	assert.Zero(t, stats.RelationshipCount)
}
