package queries

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	records []map[string]any
	err     error
	lastRun string
}

func (s *stubSession) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	s.lastRun = cypher
	return s.records, s.err
}

func (s *stubSession) Close(ctx context.Context) error { return nil }

func TestLookup(t *testing.T) {
	t.Parallel()

	q, err := Lookup("all_papers")
	require.NoError(t, err)
	assert.Equal(t, "all_papers", q.Name)
	assert.Contains(t, q.Cypher, "MATCH (p:Paper)")

	_, err = Lookup("no_such_query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all_papers")
}

func TestNamesSortedAndComplete(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Len(t, names, len(All()))
	assert.Contains(t, names, "cryptochrome_neighborhood")
}

func TestRunListsAndCapsResults(t *testing.T) {
	t.Parallel()

	session := &stubSession{records: []map[string]any{
		{"p.paper_id": "a", "p.year": int64(2016)},
		{"p.paper_id": "b", "p.year": int64(2018)},
		{"p.paper_id": "c", "p.year": int64(2021)},
	}}

	var buf bytes.Buffer
	err := Run(context.Background(), session, &buf, "all_papers", 2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Results (3 total, showing first 2)")
	assert.Contains(t, out, "... and 1 more results")
	assert.Contains(t, out, "p.paper_id: a")
	assert.Equal(t, session.lastRun, mustLookup(t, "all_papers").Cypher)
}

func TestRunEmptyAndErrorPaths(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Run(context.Background(), &stubSession{}, &buf, "term_hierarchy", 10)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")

	boom := errors.New("session gone")
	err = Run(context.Background(), &stubSession{err: boom}, &buf, "term_hierarchy", 10)
	assert.ErrorIs(t, err, boom)

	err = Run(context.Background(), &stubSession{}, &buf, "nope", 10)
	assert.Error(t, err)
}

func TestListWritesCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	List(&buf)
	out := buf.String()

	assert.Contains(t, out, "AVAILABLE QUERIES")
	assert.Contains(t, out, "protein_cofactor_network")
	assert.Contains(t, out, "Proteins and their cofactors")
}

func mustLookup(t *testing.T, name string) Query {
	t.Helper()
	q, err := Lookup(name)
	require.NoError(t, err)
	return q
}
