// Package corpus loads the knowledge-base corpus from disk and narrows it
// to a subgraph view.
package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/magsense/graphkb/pkg/types"
)

// Store reads corpus data from a knowledge-base directory. Data is loaded
// fresh on every call; the store holds no cache.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

// NewStore creates a corpus store rooted at baseDir, which must contain a
// knowledge-base/ directory.
func NewStore(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) indexPath() string {
	return filepath.Join(s.baseDir, "knowledge-base", "index", "master-index.json")
}

func (s *Store) termsPath() string {
	return filepath.Join(s.baseDir, "knowledge-base", "ontology", "terms.json")
}

func (s *Store) relationshipsPath() string {
	return filepath.Join(s.baseDir, "knowledge-base", "ontology", "relationships.json")
}

// LoadPapers reads all paper records from the master index. A missing index
// file yields an empty list with a warning; a malformed one is an error.
func (s *Store) LoadPapers() ([]types.Paper, error) {
	var index struct {
		Papers []types.Paper `json:"papers"`
	}
	ok, err := s.readJSON(s.indexPath(), &index)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return index.Papers, nil
}

// LoadTerms reads the ontology terms grouped by category.
func (s *Store) LoadTerms() (types.TermSet, error) {
	var terms types.TermSet
	if _, err := s.readJSON(s.termsPath(), &terms); err != nil {
		return types.TermSet{}, err
	}
	return terms, nil
}

// LoadRelationships reads the ontology relationship list together with the
// hierarchies and process_flows pass-through substructures.
func (s *Store) LoadRelationships() (types.RelationshipSet, error) {
	var rels types.RelationshipSet
	if _, err := s.readJSON(s.relationshipsPath(), &rels); err != nil {
		return types.RelationshipSet{}, err
	}
	return rels, nil
}

// Load reads the full corpus.
func (s *Store) Load() (types.Corpus, error) {
	papers, err := s.LoadPapers()
	if err != nil {
		return types.Corpus{}, err
	}
	terms, err := s.LoadTerms()
	if err != nil {
		return types.Corpus{}, err
	}
	rels, err := s.LoadRelationships()
	if err != nil {
		return types.Corpus{}, err
	}
	return types.Corpus{Papers: papers, Terms: terms, Relationships: rels}, nil
}

// readJSON decodes path into v. Returns false without error when the file
// does not exist, so callers fall back to an empty data set.
func (s *Store) readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.logger.Warn("corpus source not found", "path", path)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}
