package closure

import (
	"context"
	"fmt"

	"github.com/dbsmedya/apideps/internal/graph"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// memberScan is one pair of exported/declared enumerations of a member kind.
type memberScan struct {
	name     string
	exported func(context.Context, typesys.TypeID) ([]typesys.Member, error)
	declared func(context.Context, typesys.TypeID) ([]typesys.Member, error)
}

func (a *API) scans() []memberScan {
	return []memberScan{
		{"constructors", a.provider.ExportedConstructors, a.provider.DeclaredConstructors},
		{"methods", a.provider.ExportedMethods, a.provider.DeclaredMethods},
		{"fields", a.provider.ExportedFields, a.provider.DeclaredFields},
	}
}

// visit expands t: it records t, its namespace and its exported surface, and
// schedules every type that surface mentions.
func (a *API) visit(ctx context.Context, t typesys.TypeID, d discovery) error {
	if _, done := a.visited.Get(t); done {
		return nil
	}
	a.visited.Set(t, struct{}{})
	if a.onVisit != nil {
		a.onVisit(t)
	}

	ns, err := a.provider.Namespace(ctx, t)
	if err != nil {
		return providerErr("namespace", t, err)
	}
	a.namespaces.Set(ns, struct{}{})

	_, isSeed := a.seeds.Get(t)
	a.graph.AddNode(t, &graph.Node{
		Namespace:      ns,
		IsSeed:         isSeed,
		Order:          a.visited.Len() - 1,
		DiscoveredFrom: d.from,
		DiscoveredVia:  d.via,
		DiscoveredBy:   d.member,
	})

	a.log.Debugw("visiting type", "type", t, "pending", a.toVisit.Len(), "visited", a.visited.Len())

	// Exported members, including inherited ones, plus the protected members
	// declared on t itself. Inherited protected members are recorded when
	// the ancestor declaring them is visited.
	for _, scan := range a.scans() {
		exported, err := scan.exported(ctx, t)
		if err != nil {
			return providerErr("exported "+scan.name, t, err)
		}
		for _, m := range exported {
			a.visitMember(t, m)
		}

		declared, err := scan.declared(ctx, t)
		if err != nil {
			return providerErr("declared "+scan.name, t, err)
		}
		for _, m := range declared {
			if m.Visibility == typesys.VisibilityProtected {
				a.visitMember(t, m)
			}
		}
	}

	nested, err := a.provider.NestedTypes(ctx, t)
	if err != nil {
		return providerErr("nested types", t, err)
	}
	for _, n := range nested {
		a.ensureVisit(t, n, graph.RelationNested, "")
	}

	if err := a.walkChain(ctx, t, "supertype", graph.RelationSupertype, a.provider.Supertype); err != nil {
		return err
	}

	contracts, err := a.provider.Contracts(ctx, t)
	if err != nil {
		return providerErr("contracts", t, err)
	}
	for _, c := range contracts {
		a.ensureVisit(t, c, graph.RelationContract, "")
	}

	return a.walkChain(ctx, t, "enclosing type", graph.RelationEnclosing, a.provider.EnclosingType)
}

// walkChain schedules every ancestor of t along a supertype or enclosing
// link, up to the root of the chain.
func (a *API) walkChain(
	ctx context.Context,
	t typesys.TypeID,
	op string,
	rel graph.Relation,
	next func(context.Context, typesys.TypeID) (typesys.TypeID, bool, error),
) error {
	seen := map[typesys.TypeID]bool{t: true}
	cur := t
	for {
		parent, ok, err := next(ctx, cur)
		if err != nil {
			return providerErr(op, cur, err)
		}
		if !ok {
			return nil
		}
		if seen[parent] {
			return providerErr(op, t, fmt.Errorf("%s chain loops at %s", op, parent))
		}
		seen[parent] = true

		a.ensureVisit(t, parent, rel, "")
		cur = parent
	}
}

// visitMember records m and schedules the types its signature mentions.
// Edges start at the type declaring m, so an inherited member contributes
// the same edges whichever type reaches it first.
func (a *API) visitMember(t typesys.TypeID, m typesys.Member) {
	key := m.Key()
	if _, seen := a.members.Get(key); seen {
		return
	}
	a.members.Set(key, m)

	owner := m.Declaring
	if owner == "" {
		owner = t
	}
	label := m.String()
	mention := func(c typesys.TypeID, rel graph.Relation) {
		a.schedule(t, owner, c, rel, label)
	}

	switch m.Kind {
	case typesys.MemberField:
		mention(m.FieldType, graph.RelationField)
		for _, x := range m.Extra {
			mention(x, graph.RelationField)
		}
		return
	case typesys.MemberMethod:
		mention(m.Result, graph.RelationResult)
	}
	for _, x := range m.Extra {
		mention(x, graph.RelationResult)
	}
	for _, p := range m.Params {
		mention(p, graph.RelationParam)
	}
	for _, e := range m.Throws {
		mention(e, graph.RelationThrows)
	}
}

// ensureVisit schedules c for a visit unless it is primitive or already
// visited. Arrays are unwrapped to their ultimate element type.
func (a *API) ensureVisit(from, c typesys.TypeID, rel graph.Relation, member string) {
	a.schedule(from, from, c, rel, member)
}

// schedule records the edge owner -> c and queues c, remembering from as the
// type whose visit discovered it.
func (a *API) schedule(from, owner, c typesys.TypeID, rel graph.Relation, member string) {
	if c == "" {
		return
	}
	c = typesys.UltimateElement(a.provider, c)
	if a.provider.IsPrimitive(c) {
		return
	}

	a.graph.AddEdgeWithMeta(owner, c, rel, member)

	if _, done := a.visited.Get(c); done {
		return
	}
	if _, pending := a.toVisit.Get(c); pending {
		return
	}
	a.toVisit.Set(c, discovery{from: from, via: rel, member: member})
}

func providerErr(op string, t typesys.TypeID, err error) error {
	return &typesys.ProviderError{Op: op, Type: t, Err: err}
}
