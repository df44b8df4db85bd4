// Package memory provides an in-memory type universe implementing
// typesys.Provider. Types are registered up front; array types are implicit
// and written with a "[]" suffix per dimension.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// ArraySuffix marks one array dimension in a TypeID.
const ArraySuffix = "[]"

// TypeDef describes one type of the universe.
type TypeDef struct {
	Name      typesys.TypeID
	Namespace typesys.Namespace
	Primitive bool
	Supertype typesys.TypeID
	Contracts []typesys.TypeID
	Nested    []typesys.TypeID
	Enclosing typesys.TypeID
	Members   []typesys.Member
}

// Universe is a closed set of types. It is safe for concurrent reads once
// built.
type Universe struct {
	types map[typesys.TypeID]*TypeDef
}

var _ typesys.Provider = (*Universe)(nil)

// New creates an empty universe.
func New() *Universe {
	return &Universe{types: make(map[typesys.TypeID]*TypeDef)}
}

// Add registers a type. The declaring type of every member is set to the
// type's name. Adding a name twice is an error.
func (u *Universe) Add(def TypeDef) error {
	if def.Name == "" {
		return &typesys.ArgumentError{Arg: "def.Name", Message: "type name is empty"}
	}
	if strings.HasSuffix(string(def.Name), ArraySuffix) {
		return fmt.Errorf("type %q: array types are implicit and cannot be added", def.Name)
	}
	if _, exists := u.types[def.Name]; exists {
		return fmt.Errorf("type %q is already defined", def.Name)
	}
	d := def.Normalized()
	u.types[def.Name] = &d
	return nil
}

// MustAdd is Add for fixtures; it panics on error.
func (u *Universe) MustAdd(defs ...TypeDef) *Universe {
	for _, def := range defs {
		if err := u.Add(def); err != nil {
			panic(err)
		}
	}
	return u
}

// Len returns the number of registered types.
func (u *Universe) Len() int {
	return len(u.types)
}

// Names returns the registered type names, sorted.
func (u *Universe) Names() []typesys.TypeID {
	names := make([]typesys.TypeID, 0, len(u.types))
	for name := range u.types {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Validate checks that every type referenced by the universe is defined and
// that no supertype or enclosing chain loops.
func (u *Universe) Validate() error {
	var problems []string
	check := func(owner typesys.TypeID, what string, ref typesys.TypeID) {
		if ref == "" {
			return
		}
		if _, ok := u.types[ElementName(ref)]; !ok {
			problems = append(problems, fmt.Sprintf("%s: %s %s is not defined", owner, what, ref))
		}
	}

	for _, name := range u.Names() {
		def := u.types[name]
		check(name, "supertype", def.Supertype)
		check(name, "enclosing type", def.Enclosing)
		for _, c := range def.Contracts {
			check(name, "contract", c)
		}
		for _, n := range def.Nested {
			check(name, "nested type", n)
		}
		for _, m := range def.Members {
			for _, ref := range m.References() {
				check(name, "type of "+m.String(), ref)
			}
		}
		if u.chainLoops(name, func(d *TypeDef) typesys.TypeID { return d.Supertype }) {
			problems = append(problems, fmt.Sprintf("%s: supertype chain loops", name))
		}
		if u.chainLoops(name, func(d *TypeDef) typesys.TypeID { return d.Enclosing }) {
			problems = append(problems, fmt.Sprintf("%s: enclosing chain loops", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid universe:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func (u *Universe) chainLoops(start typesys.TypeID, link func(*TypeDef) typesys.TypeID) bool {
	seen := map[typesys.TypeID]bool{start: true}
	for cur := u.types[start]; cur != nil; {
		next := link(cur)
		if next == "" {
			return false
		}
		if seen[next] {
			return true
		}
		seen[next] = true
		cur = u.types[next]
	}
	return false
}

// Resolve returns the TypeID of name. Array names resolve when their element
// type does.
func (u *Universe) Resolve(_ context.Context, name string) (typesys.TypeID, error) {
	if err := typesys.CheckName(name); err != nil {
		return "", err
	}
	if _, ok := u.types[ElementName(typesys.TypeID(name))]; !ok {
		return "", typesys.NotFound(name)
	}
	return typesys.TypeID(name), nil
}

func (u *Universe) lookup(t typesys.TypeID) (*TypeDef, error) {
	def, ok := u.types[t]
	if !ok {
		return nil, typesys.NotFound(string(t))
	}
	return def, nil
}

func (u *Universe) lookupCtx(_ context.Context, t typesys.TypeID) (*TypeDef, error) {
	return u.lookup(t)
}

func (u *Universe) own(t typesys.TypeID, kind typesys.MemberKind, exportedOnly bool) ([]typesys.Member, error) {
	def, err := u.lookup(t)
	if err != nil {
		return nil, err
	}
	return OwnMembers(def, kind, exportedOnly), nil
}

// ExportedConstructors returns the exported constructors declared on t.
// Constructors are not inherited.
func (u *Universe) ExportedConstructors(_ context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return u.own(t, typesys.MemberConstructor, true)
}

// DeclaredConstructors returns every constructor declared on t.
func (u *Universe) DeclaredConstructors(_ context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return u.own(t, typesys.MemberConstructor, false)
}

// ExportedMethods returns the exported methods of t, inherited ones included.
func (u *Universe) ExportedMethods(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return InheritedMembers(ctx, u.lookupCtx, t, typesys.MemberMethod)
}

// DeclaredMethods returns every method declared on t.
func (u *Universe) DeclaredMethods(_ context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return u.own(t, typesys.MemberMethod, false)
}

// ExportedFields returns the exported fields of t, inherited ones included.
func (u *Universe) ExportedFields(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return InheritedMembers(ctx, u.lookupCtx, t, typesys.MemberField)
}

// DeclaredFields returns every field declared on t.
func (u *Universe) DeclaredFields(_ context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return u.own(t, typesys.MemberField, false)
}

func (u *Universe) NestedTypes(_ context.Context, t typesys.TypeID) ([]typesys.TypeID, error) {
	def, err := u.lookup(t)
	if err != nil {
		return nil, err
	}
	return def.Nested, nil
}

func (u *Universe) Contracts(_ context.Context, t typesys.TypeID) ([]typesys.TypeID, error) {
	def, err := u.lookup(t)
	if err != nil {
		return nil, err
	}
	return def.Contracts, nil
}

func (u *Universe) Supertype(_ context.Context, t typesys.TypeID) (typesys.TypeID, bool, error) {
	def, err := u.lookup(t)
	if err != nil {
		return "", false, err
	}
	return def.Supertype, def.Supertype != "", nil
}

func (u *Universe) EnclosingType(_ context.Context, t typesys.TypeID) (typesys.TypeID, bool, error) {
	def, err := u.lookup(t)
	if err != nil {
		return "", false, err
	}
	return def.Enclosing, def.Enclosing != "", nil
}

func (u *Universe) Namespace(_ context.Context, t typesys.TypeID) (typesys.Namespace, error) {
	def, err := u.lookup(t)
	if err != nil {
		return "", err
	}
	return def.Namespace, nil
}

// IsArray reports whether t carries an array suffix.
func (u *Universe) IsArray(t typesys.TypeID) bool {
	return IsArrayName(t)
}

// ElementType strips one array dimension from t.
func (u *Universe) ElementType(t typesys.TypeID) typesys.TypeID {
	return typesys.TypeID(strings.TrimSuffix(string(t), ArraySuffix))
}

// IsPrimitive reports whether t is a registered primitive type.
func (u *Universe) IsPrimitive(t typesys.TypeID) bool {
	def, ok := u.types[t]
	return ok && def.Primitive
}
