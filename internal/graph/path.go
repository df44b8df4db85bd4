package graph

import (
	"fmt"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// Step is one hop of a discovery path.
type Step struct {
	Type   typesys.TypeID
	Via    Relation // relation from the previous step; empty for the seed
	Member string   // member of the previous step that mentioned Type, if any
	IsSeed bool
}

// DiscoveryPath returns the chain of first discoveries that led from a seed
// to target, seed first. Because the closure expands types in FIFO order the
// path is a shortest one.
func (g *Graph) DiscoveryPath(target typesys.TypeID) ([]Step, error) {
	node := g.GetNode(target)
	if node == nil {
		return nil, fmt.Errorf("type %q is not part of the closure", target)
	}

	var reversed []Step
	seen := make(map[typesys.TypeID]bool)
	for node != nil {
		if seen[node.Name] {
			return nil, fmt.Errorf("discovery chain of %q loops at %q", target, node.Name)
		}
		seen[node.Name] = true

		reversed = append(reversed, Step{
			Type:   node.Name,
			Via:    node.DiscoveredVia,
			Member: node.DiscoveredBy,
			IsSeed: node.IsSeed,
		})
		if node.IsSeed || node.DiscoveredFrom == "" {
			break
		}
		next := g.GetNode(node.DiscoveredFrom)
		if next == nil {
			return nil, fmt.Errorf("discovery chain of %q is broken at %q", target, node.DiscoveredFrom)
		}
		node = next
	}

	path := make([]Step, len(reversed))
	for i, step := range reversed {
		path[len(reversed)-1-i] = step
	}
	return path, nil
}
