// Package store provides named, persistent storage of parsed graphs.
//
// A Store keeps graphs under user-chosen names so that a diagram parsed once
// (by the CLI or through the HTTP API) can be fetched, listed, and deleted
// later. Two backends are provided:
//   - FileStore: JSON documents in a config directory, for CLI use
//   - MongoStore: a MongoDB collection, for server deployments
package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/matzehuels/netsketch/pkg/graph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no graph is stored under the name.
	ErrNotFound = errors.New("graph not found")

	// ErrInvalidName is returned for names outside [A-Za-z0-9._-]+.
	ErrInvalidName = errors.New("invalid graph name")
)

// namePattern restricts graph names to filesystem- and URL-safe characters.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidName reports whether name is acceptable as a stored graph name.
func ValidName(name string) bool { return namePattern.MatchString(name) }

// Info describes a stored graph without its full contents.
type Info struct {
	Name      string    `json:"name" bson:"_id"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	EdgeCount int       `json:"edge_count" bson:"edge_count"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists graphs by name. Save overwrites an existing graph of the
// same name, preserving its CreatedAt. Implementations must be safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, name string, g *graph.Graph) error
	Load(ctx context.Context, name string) (*graph.Graph, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}
