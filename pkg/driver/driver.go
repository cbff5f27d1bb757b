// Package driver provides the backend-connection contract consumed by the
// exporter, plus its Neo4j implementation. The synchronizer depends only on
// the Connector and Session interfaces, so any property-graph store exposing
// an equivalent session/query contract is substitutable.
package driver

import (
	"context"
	"fmt"
)

// Session is a scoped unit of query execution. Exactly one session is
// acquired per synchronization run and released exactly once, on every exit
// path.
type Session interface {
	// Run executes a Cypher statement and returns the collected result
	// records, one map per row keyed by the returned column names.
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)

	// Close releases the session.
	Close(ctx context.Context) error
}

// Connector manages the lifecycle of a backend connection.
type Connector interface {
	// Connect establishes and verifies the connection. It fails with a
	// *ConnError when the backend is unreachable or credentials are
	// rejected.
	Connect(ctx context.Context) error

	// Session acquires a scoped session. Callers must Close it.
	Session(ctx context.Context) (Session, error)

	// ClearAll removes every node and relationship. It is a no-op returning
	// false unless confirmed is explicitly true.
	ClearAll(ctx context.Context, confirmed bool) (bool, error)

	// Stats returns counts and distinct labels/relationship types.
	Stats(ctx context.Context) (*Stats, error)

	// Close releases the underlying driver.
	Close(ctx context.Context) error
}

// Stats describes the current contents of the backend.
type Stats struct {
	NodeCount         int64
	RelationshipCount int64
	Labels            []string
	RelationshipTypes []string
}

// ConnError indicates the backend was unreachable or rejected the
// credentials. It is fatal: no writes are attempted after one.
type ConnError struct {
	URI string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URI, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// ConfigError indicates missing or invalid configuration, discovered before
// any connection attempt.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}
