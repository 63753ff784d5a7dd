// Package store archives completed analysis runs for later querying.
//
// A Run is a summary record of one pipeline execution: which target it used,
// the headline statistics, and when it happened. The full heat and distance
// maps stay in the cache; the store keeps the small, queryable history.
//
// Two backends implement [Store]:
//   - [MemoryStore]: in-process storage for tests and single-shot CLI runs
//   - [MongoStore]: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is the archived summary of one analysis run.
type Run struct {
	// ID is the unique run identifier assigned by the pipeline.
	ID string `bson:"_id" json:"id"`

	// Target is the convergence target the run analyzed distances to.
	Target string `bson:"target" json:"target"`

	// NodeCount is the number of nodes in the analyzed graph.
	NodeCount int `bson:"node_count" json:"node_count"`

	// EdgeCount is the number of edges in the analyzed graph.
	EdgeCount int `bson:"edge_count" json:"edge_count"`

	// TerminalCount is the number of terminal nodes found.
	TerminalCount int `bson:"terminal_count" json:"terminal_count"`

	// CycleCount is the number of nodes on cycles.
	CycleCount int `bson:"cycle_count" json:"cycle_count"`

	// ReachedCount is the number of nodes with a finite distance to the target.
	ReachedCount int `bson:"reached_count" json:"reached_count"`

	// Duration is how long the analysis took.
	Duration time.Duration `bson:"duration" json:"duration"`

	// CreatedAt is when the run completed.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store is the interface all run archives implement.
type Store interface {
	// Save archives a run. Saving a run with an existing ID overwrites it.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs, newest first, up to limit.
	// A limit of 0 returns all runs.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
