// Package closure computes the reflexive transitive closure of a set of types
// under API dependency.
//
// A type depends on every type that appears in its exported surface: the
// parameter, result and thrown types of its exported constructors and
// methods, the types of its exported fields, its supertypes, the contracts it
// implements, its nested types and its enclosing types. Array types stand for
// their ultimate element type; primitive types are never part of a closure.
package closure

import (
	"context"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/apideps/internal/graph"
	"github.com/dbsmedya/apideps/internal/logger"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// API is the closure of a seed set of types. It is computed eagerly by New
// and immutable afterwards.
type API struct {
	provider typesys.Introspector
	log      *logger.Logger
	onVisit  func(typesys.TypeID)

	seeds      *orderedmap.OrderedMap[typesys.TypeID, struct{}]
	toVisit    *orderedmap.OrderedMap[typesys.TypeID, discovery]
	visited    *orderedmap.OrderedMap[typesys.TypeID, struct{}]
	members    *orderedmap.OrderedMap[typesys.MemberKey, typesys.Member]
	namespaces *orderedmap.OrderedMap[typesys.Namespace, struct{}]
	graph      *graph.Graph
}

// discovery records the first edge that reached a pending type.
type discovery struct {
	from   typesys.TypeID
	via    graph.Relation
	member string
}

// Option configures an API computation.
type Option func(*API)

// WithLogger traces the traversal at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithVisitHook calls fn with every type as it is expanded, in expansion order.
func WithVisitHook(fn func(typesys.TypeID)) Option {
	return func(a *API) {
		a.onVisit = fn
	}
}

// New returns the API consisting of the given seed types and every type on
// which their APIs depend, directly or indirectly. Duplicate seeds are
// ignored; array seeds stand for their element type and primitive seeds
// contribute nothing.
//
// New fails with a *typesys.ArgumentError if provider or seeds is nil or a
// seed is empty, and with a *typesys.ProviderError if the provider fails
// during the traversal. No partial result is returned.
func New(ctx context.Context, provider typesys.Introspector, seeds []typesys.TypeID, opts ...Option) (*API, error) {
	if provider == nil {
		return nil, &typesys.ArgumentError{Arg: "provider", Message: "provider is nil"}
	}
	if seeds == nil {
		return nil, &typesys.ArgumentError{Arg: "seeds", Message: "seed collection is nil"}
	}
	for i, seed := range seeds {
		if seed == "" {
			return nil, &typesys.ArgumentError{Arg: fmt.Sprintf("seeds[%d]", i), Message: "seed type is empty"}
		}
	}

	a := &API{
		provider:   provider,
		log:        logger.NewNop(),
		seeds:      orderedmap.NewOrderedMap[typesys.TypeID, struct{}](),
		toVisit:    orderedmap.NewOrderedMap[typesys.TypeID, discovery](),
		visited:    orderedmap.NewOrderedMap[typesys.TypeID, struct{}](),
		members:    orderedmap.NewOrderedMap[typesys.MemberKey, typesys.Member](),
		namespaces: orderedmap.NewOrderedMap[typesys.Namespace, struct{}](),
		graph:      graph.NewGraph(),
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, seed := range seeds {
		seed = typesys.UltimateElement(provider, seed)
		if provider.IsPrimitive(seed) {
			continue
		}
		a.seeds.Set(seed, struct{}{})
		a.toVisit.Set(seed, discovery{})
	}

	if err := a.run(ctx); err != nil {
		return nil, err
	}
	if n := a.graph.PruneDangling(); n > 0 {
		a.log.Debugw("dropped edges from types outside the closure", "edges", n)
	}

	a.log.Debugw("closure complete",
		"seeds", a.seeds.Len(),
		"types", a.visited.Len(),
		"namespaces", a.namespaces.Len(),
		"members", a.members.Len(),
	)
	return a, nil
}

// run drains the worklist in FIFO order.
func (a *API) run(ctx context.Context) error {
	for a.toVisit.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("closure interrupted after %d types: %w", a.visited.Len(), err)
		}

		next := a.toVisit.Front()
		t, d := next.Key, next.Value
		a.toVisit.Delete(t)

		if err := a.visit(ctx, t, d); err != nil {
			return err
		}
	}
	return nil
}

// ClassesAndInterfaces returns the types of the closure in the order they
// were expanded: seeds first, then every other type in discovery order.
func (a *API) ClassesAndInterfaces() []typesys.TypeID {
	return keys(a.visited)
}

// Members returns the exported and protected members of the types in the
// closure, in the order they were first recorded.
func (a *API) Members() []typesys.Member {
	out := make([]typesys.Member, 0, a.members.Len())
	for el := a.members.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Namespaces returns the namespaces containing the types of the closure, in
// the order they were first seen.
func (a *API) Namespaces() []typesys.Namespace {
	return keys(a.namespaces)
}

// Seeds returns the distinct seed types, after array unwrapping.
func (a *API) Seeds() []typesys.TypeID {
	return keys(a.seeds)
}

// Contains reports whether t is part of the closure.
func (a *API) Contains(t typesys.TypeID) bool {
	_, ok := a.visited.Get(t)
	return ok
}

// HasMember reports whether the member identified by key is part of the closure.
func (a *API) HasMember(key typesys.MemberKey) bool {
	_, ok := a.members.Get(key)
	return ok
}

// Graph returns a copy of the dependency graph between the types of the
// closure.
func (a *API) Graph() *graph.Graph {
	return a.graph.Clone()
}

// PathTo explains why t is part of the closure: the chain of first
// discoveries from a seed to t.
func (a *API) PathTo(t typesys.TypeID) ([]graph.Step, error) {
	return a.graph.DiscoveryPath(t)
}

// Stats summarises the size of the closure.
type Stats struct {
	Seeds      int
	Types      int
	Namespaces int
	Members    int
	Edges      int
	Cyclic     bool
}

// Stats returns the size of the closure.
func (a *API) Stats() Stats {
	return Stats{
		Seeds:      a.seeds.Len(),
		Types:      a.visited.Len(),
		Namespaces: a.namespaces.Len(),
		Members:    a.members.Len(),
		Edges:      a.graph.EdgeCount(),
		Cyclic:     a.graph.HasCycle(),
	}
}

func keys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	out := make([]K, 0, m.Len())
	for el := m.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}
