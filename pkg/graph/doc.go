// Package graph provides the undirected graph container that parsed
// diagrams are emitted into.
//
// A Graph holds named nodes, each with the grid position it was drawn at,
// and edges between node pairs, each with a drawn length and an optional
// label. Node pairs are canonical (lexicographically smaller name first),
// so lookups are symmetric: Edge("a", "b") and Edge("b", "a") find the
// same edge.
//
// The package also defines the JSON wire format for graphs (see types.go)
// with [MarshalGraph], [UnmarshalGraph], and the Read/Write helpers. Wire
// structs carry bson tags as well, so the same documents round-trip through
// MongoDB unchanged.
package graph
