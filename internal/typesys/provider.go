package typesys

import (
	"context"
	"fmt"
)

// Resolver locates a type by its qualified name.
type Resolver interface {
	// Resolve returns the TypeID of the named type. It returns an error
	// wrapping ErrNotFound if no such type exists.
	Resolve(ctx context.Context, name string) (TypeID, error)
}

// Introspector enumerates the surface of a resolved type.
//
// The Exported* methods return the exported members of a type including the
// ones it inherits. The Declared* methods return every member declared
// directly on the type regardless of visibility.
type Introspector interface {
	ExportedConstructors(ctx context.Context, t TypeID) ([]Member, error)
	DeclaredConstructors(ctx context.Context, t TypeID) ([]Member, error)
	ExportedMethods(ctx context.Context, t TypeID) ([]Member, error)
	DeclaredMethods(ctx context.Context, t TypeID) ([]Member, error)
	ExportedFields(ctx context.Context, t TypeID) ([]Member, error)
	DeclaredFields(ctx context.Context, t TypeID) ([]Member, error)

	NestedTypes(ctx context.Context, t TypeID) ([]TypeID, error)
	Contracts(ctx context.Context, t TypeID) ([]TypeID, error)
	// Supertype reports the direct supertype of t, if any.
	Supertype(ctx context.Context, t TypeID) (TypeID, bool, error)
	// EnclosingType reports the type t is nested in, if any.
	EnclosingType(ctx context.Context, t TypeID) (TypeID, bool, error)
	Namespace(ctx context.Context, t TypeID) (Namespace, error)

	IsArray(t TypeID) bool
	ElementType(t TypeID) TypeID
	IsPrimitive(t TypeID) bool
}

// Provider is the complete introspection capability consumed by the
// closure engine.
type Provider interface {
	Resolver
	Introspector
}

// ResolveAll resolves every name in order. It stops at the first name that
// cannot be resolved and returns a *ResolutionError for it.
func ResolveAll(ctx context.Context, r Resolver, names []string) ([]TypeID, error) {
	ids := make([]TypeID, 0, len(names))
	for _, name := range names {
		id, err := r.Resolve(ctx, name)
		if err != nil {
			return nil, &ResolutionError{Name: name, Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UltimateElement unwraps t through any nesting of array types.
func UltimateElement(in Introspector, t TypeID) TypeID {
	for in.IsArray(t) {
		t = in.ElementType(t)
	}
	return t
}

// CheckName rejects empty type names before they reach a provider.
func CheckName(name string) error {
	if name == "" {
		return &ArgumentError{Arg: "name", Message: "type name is empty"}
	}
	return nil
}

// NotFound returns an error wrapping ErrNotFound for the named type.
func NotFound(name string) error {
	return fmt.Errorf("type %q: %w", name, ErrNotFound)
}
