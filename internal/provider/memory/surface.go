package memory

import (
	"context"
	"strings"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// Lookup returns the definition of a non-array type, or an error wrapping
// typesys.ErrNotFound.
type Lookup func(ctx context.Context, t typesys.TypeID) (*TypeDef, error)

// Normalized returns a copy of d with defaults applied: the namespace is
// derived from the name, every member is declared by d, and constructors and
// methods without an explicit signature get one from their parameters.
func (d TypeDef) Normalized() TypeDef {
	out := d
	if out.Namespace == "" && !out.Primitive {
		out.Namespace = NamespaceOf(out.Name)
	}
	out.Members = make([]typesys.Member, len(d.Members))
	for i, m := range d.Members {
		m.Declaring = d.Name
		if m.Signature == "" && m.Kind != typesys.MemberField {
			m.Signature = typesys.SignatureOf(m.Params)
		}
		out.Members[i] = m
	}
	return out
}

// OwnMembers returns the members of kind declared on def, optionally only
// the exported ones.
func OwnMembers(def *TypeDef, kind typesys.MemberKind, exportedOnly bool) []typesys.Member {
	var out []typesys.Member
	for _, m := range def.Members {
		if m.Kind != kind {
			continue
		}
		if exportedOnly && m.Visibility != typesys.VisibilityExported {
			continue
		}
		out = append(out, m)
	}
	return out
}

// InheritedMembers returns the exported members of kind declared on t and on
// every supertype and contract of t, breadth first, each once.
func InheritedMembers(ctx context.Context, lookup Lookup, t typesys.TypeID, kind typesys.MemberKind) ([]typesys.Member, error) {
	var out []typesys.Member
	seenTypes := make(map[typesys.TypeID]bool)
	seenMembers := make(map[typesys.MemberKey]bool)

	queue := []typesys.TypeID{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seenTypes[cur] {
			continue
		}
		seenTypes[cur] = true

		def, err := lookup(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, m := range OwnMembers(def, kind, true) {
			if seenMembers[m.Key()] {
				continue
			}
			seenMembers[m.Key()] = true
			out = append(out, m)
		}
		if def.Supertype != "" {
			queue = append(queue, def.Supertype)
		}
		queue = append(queue, def.Contracts...)
	}
	return out, nil
}

// IsArrayName reports whether t carries an array suffix.
func IsArrayName(t typesys.TypeID) bool {
	return strings.HasSuffix(string(t), ArraySuffix)
}

// ElementName strips every array dimension from t.
func ElementName(t typesys.TypeID) typesys.TypeID {
	s := string(t)
	for strings.HasSuffix(s, ArraySuffix) {
		s = strings.TrimSuffix(s, ArraySuffix)
	}
	return typesys.TypeID(s)
}

// NamespaceOf derives a namespace from a dotted qualified name: everything
// before the last dot, or the empty namespace for unqualified names. Nested
// types written Outer$Inner keep their outer type's namespace.
func NamespaceOf(t typesys.TypeID) typesys.Namespace {
	s := string(ElementName(t))
	if i := strings.LastIndex(s, "."); i >= 0 {
		return typesys.Namespace(s[:i])
	}
	return ""
}
