package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dbsmedya/apideps/internal/closure"
	"github.com/dbsmedya/apideps/internal/graph"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// Summary is the printable form of a closure. Names are sorted.
type Summary struct {
	Seeds      []string      `json:"seeds"`
	Counts     Counts        `json:"counts"`
	Namespaces []string      `json:"namespaces"`
	Types      []TypeEntry   `json:"types"`
	Members    []MemberEntry `json:"members,omitempty"`
	Cycles     *CycleSummary `json:"cycles,omitempty"`
	Order      *OrderSummary `json:"order,omitempty"`

	Dependencies []EdgeEntry `json:"dependencies"`
}

// Counts holds the sizes of a closure.
type Counts struct {
	Seeds        int `json:"seeds"`
	Types        int `json:"types"`
	Namespaces   int `json:"namespaces"`
	Members      int `json:"members"`
	Dependencies int `json:"dependencies"`
}

// TypeEntry is a type of the closure.
type TypeEntry struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Seed       bool   `json:"seed,omitempty"`
	Order      int    `json:"order"`
	DependsOn  int    `json:"depends_on"`
	Dependents int    `json:"dependents"`
}

// EdgeEntry is a dependency between two types of the closure.
type EdgeEntry struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Relations []string `json:"relations"`
	Members   []string `json:"members,omitempty"`
}

// MemberEntry is a member of the closure.
type MemberEntry struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Visibility string `json:"visibility"`
}

// CycleSummary describes the cycles of the dependency graph.
type CycleSummary struct {
	Cyclic       bool     `json:"cyclic"`
	Total        int      `json:"total"`
	Participants []string `json:"participants,omitempty"`
	Path         []string `json:"path,omitempty"`
}

// OrderSummary lists the types with every dependency before its
// dependents. Types is empty and Unordered counts the blocked types when
// the graph is cyclic.
type OrderSummary struct {
	Types     []string `json:"types,omitempty"`
	Unordered int      `json:"unordered,omitempty"`
	Leaves    []string `json:"leaves"`
}

// PathSummary is the printable form of a discovery path.
type PathSummary struct {
	Target     string      `json:"target"`
	Steps      []PathStep  `json:"steps"`
	DependsOn  int         `json:"depends_on"`
	Dependents []EdgeEntry `json:"dependents,omitempty"`
}

// PathStep is one hop of a discovery path.
type PathStep struct {
	Type   string `json:"type"`
	Via    string `json:"via,omitempty"`
	Member string `json:"member,omitempty"`
}

// Summarize collects what opts asks for from api.
func Summarize(api *closure.API, opts Options) *Summary {
	stats := api.Stats()
	g := api.Graph()

	s := &Summary{
		Seeds: idStrings(api.Seeds()),
		Counts: Counts{
			Seeds:        stats.Seeds,
			Types:        stats.Types,
			Namespaces:   stats.Namespaces,
			Members:      stats.Members,
			Dependencies: stats.Edges,
		},
		Namespaces:   sortedNamespaces(api.Namespaces()),
		Dependencies: []EdgeEntry{},
	}

	for _, t := range g.AllNodes() {
		node := g.GetNode(t)
		ns := string(node.Namespace)
		if ns == "" {
			ns = predeclaredNamespace
		}
		s.Types = append(s.Types, TypeEntry{
			Name:       string(t),
			Namespace:  ns,
			Seed:       node.IsSeed,
			Order:      node.Order,
			DependsOn:  g.OutDegree(t),
			Dependents: g.InDegree(t),
		})
	}

	for _, e := range g.AllEdges() {
		s.Dependencies = append(s.Dependencies, edgeEntry(g, e.From, e.To))
	}

	if opts.Members {
		for _, m := range api.Members() {
			s.Members = append(s.Members, MemberEntry{
				Name:       m.String(),
				Kind:       m.Kind.String(),
				Visibility: m.Visibility.String(),
			})
		}
		sort.Slice(s.Members, func(i, j int) bool {
			return s.Members[i].Name < s.Members[j].Name
		})
	}

	if opts.Cycles {
		s.Cycles = &CycleSummary{Total: g.NodeCount()}
		if info := g.DetectIncompleteProcessing(); info != nil {
			s.Cycles.Cyclic = true
			s.Cycles.Participants = idStrings(info.CycleParticipants)
			s.Cycles.Path = idStrings(info.CyclePath)
		}
	}
	if opts.Order {
		s.Order = &OrderSummary{Leaves: idStrings(g.LeafNodes())}
		order, err := g.DependencyOrder()
		var cycleErr *graph.CycleError
		switch {
		case errors.As(err, &cycleErr):
			s.Order.Unordered = len(cycleErr.Info.UnprocessedNodes)
		case err == nil:
			s.Order.Types = idStrings(order)
		}
	}
	return s
}

func edgeEntry(g *graph.Graph, from, to typesys.TypeID) EdgeEntry {
	e := EdgeEntry{From: string(from), To: string(to), Relations: []string{}}
	if meta := g.GetEdgeMeta(from, to); meta != nil {
		for _, rel := range meta.Relations {
			e.Relations = append(e.Relations, string(rel))
		}
		e.Members = meta.Members
	}
	return e
}

// whySummary explains why target is part of the closure: its discovery path
// and the types that depend on it directly.
func whySummary(api *closure.API, target typesys.TypeID) (*PathSummary, error) {
	g := api.Graph()
	if !g.HasNode(target) {
		return nil, fmt.Errorf("type %q is not part of the closure", target)
	}
	steps, err := api.PathTo(target)
	if err != nil {
		return nil, err
	}

	p := pathSummary(target, steps)
	p.DependsOn = g.OutDegree(target)
	parents := append([]typesys.TypeID(nil), g.GetParents(target)...)
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })
	for _, parent := range parents {
		p.Dependents = append(p.Dependents, edgeEntry(g, parent, target))
	}
	return p, nil
}

func pathSummary(target typesys.TypeID, steps []graph.Step) *PathSummary {
	p := &PathSummary{Target: string(target)}
	for _, step := range steps {
		p.Steps = append(p.Steps, PathStep{
			Type:   string(step.Type),
			Via:    string(step.Via),
			Member: step.Member,
		})
	}
	return p
}

func idStrings(ids []typesys.TypeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
