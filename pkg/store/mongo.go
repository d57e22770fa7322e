package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/netsketch/pkg/graph"
)

// MongoStore keeps graphs in a MongoDB collection, one document per name.
// It is the backend for server deployments where several instances share
// stored graphs.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig holds connection settings for a mongo graph store.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "netsketch"
	Collection string // defaults to "graphs"
}

// mongoDoc is the stored shape of a graph. Name doubles as the document ID,
// so upserts by name are atomic.
type mongoDoc struct {
	Name      string    `bson:"_id"`
	Graph     graph.Doc `bson:"graph"`
	NodeCount int       `bson:"node_count"`
	EdgeCount int       `bson:"edge_count"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "netsketch"
	}
	if cfg.Collection == "" {
		cfg.Collection = "graphs"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts the graph under name, preserving created_at on overwrite.
func (s *MongoStore) Save(ctx context.Context, name string, g *graph.Graph) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	doc := graph.FromGraph(g)
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"graph":      doc,
			"node_count": len(doc.Nodes),
			"edge_count": len(doc.Edges),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err := s.coll.UpdateByID(ctx, name, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert graph %q: %w", name, err)
	}
	return nil
}

// Load reads the graph stored under name.
func (s *MongoStore) Load(ctx context.Context, name string) (*graph.Graph, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find graph %q: %w", name, err)
	}
	return graph.ToGraph(doc.Graph)
}

// List returns Info for every stored graph, sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"graph": 0}).
			SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer cur.Close(ctx)

	var infos []Info
	for cur.Next(ctx) {
		var doc mongoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode graph doc: %w", err)
		}
		infos = append(infos, Info{
			Name:      doc.Name,
			NodeCount: doc.NodeCount,
			EdgeCount: doc.EdgeCount,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return infos, cur.Err()
}

// Delete removes the graph stored under name.
// Returns ErrNotFound if nothing is stored under it.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("delete graph %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
