package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jConnector implements the Connector interface on the official Neo4j
// driver.
type Neo4jConnector struct {
	creds  Credentials
	client neo4j.DriverWithContext
	logger *slog.Logger
}

// NewNeo4jConnector creates a connector from validated credentials. No
// network traffic happens until Connect.
func NewNeo4jConnector(creds Credentials, logger *slog.Logger) (*Neo4jConnector, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Neo4jConnector{creds: creds, logger: logger}, nil
}

// Connect creates the driver and verifies connectivity. Unreachable backend
// or rejected auth both surface as *ConnError.
func (c *Neo4jConnector) Connect(ctx context.Context) error {
	client, err := neo4j.NewDriverWithContext(
		c.creds.URI, neo4j.BasicAuth(c.creds.Username, c.creds.Password, ""))
	if err != nil {
		return &ConnError{URI: c.creds.URI, Err: err}
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		return &ConnError{URI: c.creds.URI, Err: err}
	}
	c.client = client
	c.logger.Info("connected to neo4j", "uri", c.creds.URI, "database", c.creds.Database)
	return nil
}

// Session acquires a scoped write session, connecting first if needed.
func (c *Neo4jConnector) Session(ctx context.Context) (Session, error) {
	if c.client == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}
	s := c.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.creds.Database})
	return &neo4jSession{session: s}, nil
}

// ClearAll deletes every node and relationship. Without explicit
// confirmation it performs no write and reports false.
func (c *Neo4jConnector) ClearAll(ctx context.Context, confirmed bool) (bool, error) {
	if !confirmed {
		c.logger.Warn("clear requested without confirmation, nothing deleted")
		return false, nil
	}

	session, err := c.Session(ctx)
	if err != nil {
		return false, err
	}
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return false, fmt.Errorf("failed to clear graph: %w", err)
	}
	c.logger.Info("graph cleared")
	return true, nil
}

// Stats queries node/relationship counts and the distinct labels and
// relationship types currently present.
func (c *Neo4jConnector) Stats(ctx context.Context) (*Stats, error) {
	session, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close(ctx)

	stats := &Stats{}

	records, err := session.Run(ctx, "MATCH (n) RETURN count(n) AS node_count", nil)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if n, ok := records[0]["node_count"].(int64); ok {
			stats.NodeCount = n
		}
	}

	records, err = session.Run(ctx, "MATCH ()-[r]->() RETURN count(r) AS rel_count", nil)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if n, ok := records[0]["rel_count"].(int64); ok {
			stats.RelationshipCount = n
		}
	}

	records, err = session.Run(ctx, "CALL db.labels()", nil)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if label, ok := rec["label"].(string); ok {
			stats.Labels = append(stats.Labels, label)
		}
	}

	records, err = session.Run(ctx, "CALL db.relationshipTypes()", nil)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rt, ok := rec["relationshipType"].(string); ok {
			stats.RelationshipTypes = append(stats.RelationshipTypes, rt)
		}
	}

	return stats, nil
}

// Close releases the driver.
func (c *Neo4jConnector) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close(ctx)
	c.client = nil
	return err
}

var _ Connector = (*Neo4jConnector)(nil)

// neo4jSession adapts a driver session to the Session interface, collecting
// result rows into plain maps.
type neo4jSession struct {
	session neo4j.SessionWithContext
}

func (s *neo4jSession) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	result, err := s.session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for result.Next(ctx) {
		record := result.Record()
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *neo4jSession) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}
