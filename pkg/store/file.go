package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/netsketch/pkg/graph"
)

// FileStore keeps each graph as a JSON document in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// fileDoc is the on-disk shape of a stored graph.
type fileDoc struct {
	Name      string    `json:"name"`
	Graph     graph.Doc `json:"graph"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFileStore creates a file-based graph store rooted at baseDir.
// If baseDir is empty, it defaults to ~/.config/netsketch/graphs.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "netsketch", "graphs")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save writes the graph under name, preserving CreatedAt on overwrite.
func (s *FileStore) Save(ctx context.Context, name string, g *graph.Graph) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	doc := fileDoc{Name: name, Graph: graph.FromGraph(g), CreatedAt: now, UpdatedAt: now}
	if prev, err := s.read(name); err == nil {
		doc.CreatedAt = prev.CreatedAt
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph doc: %w", err)
	}
	if err := os.WriteFile(s.path(name), data, 0600); err != nil {
		return fmt.Errorf("write graph file: %w", err)
	}
	return nil
}

// Load reads the graph stored under name.
func (s *FileStore) Load(ctx context.Context, name string) (*graph.Graph, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return graph.ToGraph(doc.Graph)
}

// List returns Info for every stored graph, sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		doc, err := s.read(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue // skip unreadable entries, keep listing
		}
		infos = append(infos, Info{
			Name:      doc.Name,
			NodeCount: len(doc.Graph.Nodes),
			EdgeCount: len(doc.Graph.Edges),
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

// Delete removes the graph stored under name.
// Returns ErrNotFound if nothing is stored under it.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

func (s *FileStore) read(name string) (fileDoc, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return fileDoc{}, ErrNotFound
	}
	if err != nil {
		return fileDoc{}, fmt.Errorf("read graph file: %w", err)
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDoc{}, fmt.Errorf("parse graph file: %w", err)
	}
	return doc, nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
