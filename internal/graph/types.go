// Package graph provides the dependency graph of the types discovered by a
// closure computation, with ordering and cycle analysis.
package graph

import (
	"sort"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// Relation names the part of a type's surface through which it depends on
// another type.
type Relation string

const (
	RelationParam     Relation = "param"
	RelationResult    Relation = "result"
	RelationThrows    Relation = "throws"
	RelationField     Relation = "field"
	RelationSupertype Relation = "supertype"
	RelationContract  Relation = "contract"
	RelationNested    Relation = "nested"
	RelationEnclosing Relation = "enclosing"
)

// Node represents a type in the dependency graph.
type Node struct {
	Name      typesys.TypeID
	Namespace typesys.Namespace
	IsSeed    bool
	Order     int // position in discovery order, 0-based

	// First edge that reached this type; empty for seeds.
	DiscoveredFrom typesys.TypeID
	DiscoveredVia  Relation
	DiscoveredBy   string // member that mentioned the type, if any
}

// Edge represents a dependency of From on To.
type Edge struct {
	From typesys.TypeID
	To   typesys.TypeID
}

// EdgeMeta contains the reasons behind an edge.
type EdgeMeta struct {
	Relations []Relation // distinct relations, in first-seen order
	Members   []string   // distinct members that produced the edge
}

func (m *EdgeMeta) addRelation(rel Relation) {
	for _, r := range m.Relations {
		if r == rel {
			return
		}
	}
	m.Relations = append(m.Relations, rel)
}

func (m *EdgeMeta) addMember(member string) {
	if member == "" {
		return
	}
	for _, existing := range m.Members {
		if existing == member {
			return
		}
	}
	m.Members = append(m.Members, member)
}

// Graph holds the types discovered by a closure and the dependencies
// between them. Self-dependencies are not recorded.
type Graph struct {
	nodes        map[typesys.TypeID]*Node
	children     map[typesys.TypeID][]typesys.TypeID // type -> types it depends on
	parents      map[typesys.TypeID][]typesys.TypeID // type -> types depending on it
	edgeMetadata map[Edge]*EdgeMeta
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:        make(map[typesys.TypeID]*Node),
		children:     make(map[typesys.TypeID][]typesys.TypeID),
		parents:      make(map[typesys.TypeID][]typesys.TypeID),
		edgeMetadata: make(map[Edge]*EdgeMeta),
	}
}

// AddNode adds a type node to the graph, replacing any node of that name.
// If node is nil, a new node with default values is created.
func (g *Graph) AddNode(name typesys.TypeID, node *Node) {
	if node == nil {
		node = &Node{Name: name}
	}
	node.Name = name
	g.nodes[name] = node
}

// AddEdge records that from depends on to. Repeated edges and self-edges are
// ignored. It reports whether a new edge was added.
func (g *Graph) AddEdge(from, to typesys.TypeID) bool {
	if from == to {
		return false
	}
	edge := Edge{From: from, To: to}
	if _, exists := g.edgeMetadata[edge]; exists {
		return false
	}
	g.edgeMetadata[edge] = &EdgeMeta{}
	g.children[from] = append(g.children[from], to)
	g.parents[to] = append(g.parents[to], from)
	return true
}

// AddEdgeWithMeta records a dependency together with the relation and the
// member that produced it.
func (g *Graph) AddEdgeWithMeta(from, to typesys.TypeID, rel Relation, member string) {
	if from == to {
		return
	}
	g.AddEdge(from, to)
	meta := g.edgeMetadata[Edge{From: from, To: to}]
	meta.addRelation(rel)
	meta.addMember(member)
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for name, node := range g.nodes {
		n := *node
		c.nodes[name] = &n
	}
	for name, children := range g.children {
		c.children[name] = append([]typesys.TypeID(nil), children...)
	}
	for name, parents := range g.parents {
		c.parents[name] = append([]typesys.TypeID(nil), parents...)
	}
	for edge, meta := range g.edgeMetadata {
		c.edgeMetadata[edge] = &EdgeMeta{
			Relations: append([]Relation(nil), meta.Relations...),
			Members:   append([]string(nil), meta.Members...),
		}
	}
	return c
}

// PruneDangling removes the edges whose source or target has no node and
// returns how many were removed.
func (g *Graph) PruneDangling() int {
	removed := 0
	for edge := range g.edgeMetadata {
		if g.HasNode(edge.From) && g.HasNode(edge.To) {
			continue
		}
		delete(g.edgeMetadata, edge)
		g.children[edge.From] = without(g.children[edge.From], edge.To)
		g.parents[edge.To] = without(g.parents[edge.To], edge.From)
		removed++
	}
	return removed
}

func without(ids []typesys.TypeID, id typesys.TypeID) []typesys.TypeID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// GetChildren returns the types a type directly depends on.
func (g *Graph) GetChildren(name typesys.TypeID) []typesys.TypeID {
	return g.children[name]
}

// GetParents returns the types that directly depend on a type.
func (g *Graph) GetParents(name typesys.TypeID) []typesys.TypeID {
	return g.parents[name]
}

// GetNode returns the node for a given type, or nil if not found.
func (g *Graph) GetNode(name typesys.TypeID) *Node {
	return g.nodes[name]
}

// GetEdgeMeta returns metadata for an edge, or nil if not found.
func (g *Graph) GetEdgeMeta(from, to typesys.TypeID) *EdgeMeta {
	return g.edgeMetadata[Edge{From: from, To: to}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name typesys.TypeID) bool {
	_, exists := g.nodes[name]
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edgeMetadata)
}

// AllNodes returns all type names in the graph, sorted.
func (g *Graph) AllNodes() []typesys.TypeID {
	nodes := make([]typesys.TypeID, 0, len(g.nodes))
	for name := range g.nodes {
		nodes = append(nodes, name)
	}
	sortIDs(nodes)
	return nodes
}

// AllEdges returns all edges in the graph, sorted by source then target.
func (g *Graph) AllEdges() []Edge {
	edges := make([]Edge, 0, len(g.edgeMetadata))
	for edge := range g.edgeMetadata {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// LeafNodes returns all types that depend on nothing else, sorted.
func (g *Graph) LeafNodes() []typesys.TypeID {
	var leaves []typesys.TypeID
	for name := range g.nodes {
		if len(g.children[name]) == 0 {
			leaves = append(leaves, name)
		}
	}
	sortIDs(leaves)
	return leaves
}

// InDegree returns the number of types depending on a type.
func (g *Graph) InDegree(name typesys.TypeID) int {
	return len(g.parents[name])
}

// OutDegree returns the number of types a type depends on.
func (g *Graph) OutDegree(name typesys.TypeID) int {
	return len(g.children[name])
}

func sortIDs(ids []typesys.TypeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
