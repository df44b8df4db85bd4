package gotypes

import (
	"context"
	"fmt"
	"go/types"
	"strings"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// refs returns the TypeIDs a Go type mentions. Named types, basic types and
// their slice, array, pointer and channel wrappers map to one ID each; maps,
// function types and anonymous structs and interfaces are flattened into the
// types they mention. Type parameters mention nothing.
func (p *Provider) refs(t types.Type) []typesys.TypeID {
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		out := []typesys.TypeID{p.register(t.Origin().Obj())}
		if args := t.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				out = append(out, p.refs(args.At(i))...)
			}
		}
		return out
	case *types.Basic:
		if t.Kind() == types.Invalid || t.Info()&types.IsUntyped != 0 {
			return nil
		}
		return []typesys.TypeID{basicID(t)}
	case *types.Pointer:
		return wrap("*", p.refs(t.Elem()))
	case *types.Slice:
		return wrap("[]", p.refs(t.Elem()))
	case *types.Array:
		return wrap(fmt.Sprintf("[%d]", t.Len()), p.refs(t.Elem()))
	case *types.Chan:
		prefix := "chan "
		switch t.Dir() {
		case types.SendOnly:
			prefix = "chan<- "
		case types.RecvOnly:
			prefix = "<-chan "
		}
		return wrap(prefix, p.refs(t.Elem()))
	case *types.Map:
		return append(p.refs(t.Key()), p.refs(t.Elem())...)
	case *types.Signature:
		return append(p.tupleRefs(t.Params()), p.tupleRefs(t.Results())...)
	case *types.Struct:
		var out []typesys.TypeID
		for i := 0; i < t.NumFields(); i++ {
			out = append(out, p.refs(t.Field(i).Type())...)
		}
		return out
	case *types.Interface:
		var out []typesys.TypeID
		for i := 0; i < t.NumEmbeddeds(); i++ {
			out = append(out, p.refs(t.EmbeddedType(i))...)
		}
		for i := 0; i < t.NumExplicitMethods(); i++ {
			out = append(out, p.refs(t.ExplicitMethod(i).Type())...)
		}
		return out
	case *types.Union:
		var out []typesys.TypeID
		for i := 0; i < t.Len(); i++ {
			out = append(out, p.refs(t.Term(i).Type())...)
		}
		return out
	}
	return nil
}

func (p *Provider) tupleRefs(tuple *types.Tuple) []typesys.TypeID {
	var out []typesys.TypeID
	for i := 0; i < tuple.Len(); i++ {
		out = append(out, p.refs(tuple.At(i).Type())...)
	}
	return out
}

func visibility(obj types.Object) typesys.Visibility {
	if obj.Exported() {
		return typesys.VisibilityExported
	}
	return typesys.VisibilityOther
}

// funcMember describes fn. Error results become thrown types. For
// constructors the first result, the constructed type, is skipped.
func (p *Provider) funcMember(kind typesys.MemberKind, declaring typesys.TypeID, fn *types.Func) typesys.Member {
	sig := fn.Type().(*types.Signature)

	m := typesys.Member{
		Declaring:  declaring,
		Kind:       kind,
		Name:       fn.Name(),
		Visibility: visibility(fn),
	}

	params := make([]string, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		pt := sig.Params().At(i).Type()
		params[i] = types.TypeString(pt, qualifier)
		m.Params = append(m.Params, p.refs(pt)...)
	}
	if sig.Variadic() && len(params) > 0 {
		last := len(params) - 1
		params[last] = "..." + strings.TrimPrefix(params[last], "[]")
	}
	m.Signature = strings.Join(params, ",")

	results := sig.Results()
	start := 0
	if kind == typesys.MemberConstructor {
		start = 1
	}
	var rs []typesys.TypeID
	for i := start; i < results.Len(); i++ {
		rt := results.At(i).Type()
		if isError(rt) {
			m.Throws = append(m.Throws, "error")
			continue
		}
		rs = append(rs, p.refs(rt)...)
	}
	if kind == typesys.MemberMethod && len(rs) > 0 {
		m.Result, rs = rs[0], rs[1:]
	}
	m.Extra = rs
	return m
}

// constructs reports whether fn is a package-level function whose first
// result is obj's type or a pointer to it.
func constructs(fn *types.Func, obj *types.TypeName) bool {
	sig := fn.Type().(*types.Signature)
	if sig.Recv() != nil || sig.Results().Len() == 0 {
		return false
	}
	rt := types.Unalias(sig.Results().At(0).Type())
	if ptr, ok := rt.(*types.Pointer); ok {
		rt = types.Unalias(ptr.Elem())
	}
	named, ok := rt.(*types.Named)
	return ok && named.Origin().Obj() == obj
}

func (p *Provider) constructors(ctx context.Context, t typesys.TypeID, exportedOnly bool) ([]typesys.Member, error) {
	obj, err := p.lookup(ctx, t)
	if err != nil {
		return nil, err
	}
	if obj.Pkg() == nil {
		return nil, nil
	}

	var out []typesys.Member
	scope := obj.Pkg().Scope()
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || (exportedOnly && !fn.Exported()) || !constructs(fn, obj) {
			continue
		}
		out = append(out, p.funcMember(typesys.MemberConstructor, t, fn))
	}
	return out, nil
}

// ExportedConstructors returns the exported functions of t's package that
// construct t.
func (p *Provider) ExportedConstructors(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.constructors(ctx, t, true)
}

// DeclaredConstructors returns every function of t's package that
// constructs t.
func (p *Provider) DeclaredConstructors(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.constructors(ctx, t, false)
}

// receiverID returns the type declaring method fn, falling back to owner.
func (p *Provider) receiverID(fn *types.Func, owner typesys.TypeID) typesys.TypeID {
	recv := fn.Type().(*types.Signature).Recv()
	if recv == nil {
		return owner
	}
	rt := types.Unalias(recv.Type())
	if ptr, ok := rt.(*types.Pointer); ok {
		rt = types.Unalias(ptr.Elem())
	}
	if named, ok := rt.(*types.Named); ok {
		return p.register(named.Origin().Obj())
	}
	return owner
}

// ExportedMethods returns the exported methods in the method set of *t, or of
// t for interfaces. Promoted methods are attributed to the embedded type
// declaring them.
func (p *Provider) ExportedMethods(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	_, named, err := p.named(ctx, t)
	if err != nil {
		return nil, err
	}

	var ms *types.MethodSet
	if types.IsInterface(named) {
		ms = types.NewMethodSet(named)
	} else {
		ms = types.NewMethodSet(types.NewPointer(named))
	}

	var out []typesys.Member
	for i := 0; i < ms.Len(); i++ {
		fn, ok := ms.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		out = append(out, p.funcMember(typesys.MemberMethod, p.receiverID(fn, t), fn))
	}
	return out, nil
}

// DeclaredMethods returns the methods declared on t itself, exported or not.
func (p *Provider) DeclaredMethods(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	_, named, err := p.named(ctx, t)
	if err != nil {
		return nil, err
	}

	var out []typesys.Member
	if iface, ok := named.Underlying().(*types.Interface); ok {
		for i := 0; i < iface.NumExplicitMethods(); i++ {
			out = append(out, p.funcMember(typesys.MemberMethod, t, iface.ExplicitMethod(i)))
		}
		return out, nil
	}
	for i := 0; i < named.NumMethods(); i++ {
		out = append(out, p.funcMember(typesys.MemberMethod, t, named.Method(i)))
	}
	return out, nil
}

func (p *Provider) fieldMember(declaring typesys.TypeID, f *types.Var) typesys.Member {
	m := typesys.Member{
		Declaring:  declaring,
		Kind:       typesys.MemberField,
		Name:       f.Name(),
		Visibility: visibility(f),
	}
	if refs := p.refs(f.Type()); len(refs) > 0 {
		m.FieldType, m.Extra = refs[0], refs[1:]
	}
	return m
}

// embeddedNamed returns the named type of an embedded field, through a
// pointer if needed.
func embeddedNamed(t types.Type) *types.Named {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}
	named, _ := t.(*types.Named)
	return named
}

// fields lists the struct fields of t. With promoted set, fields of embedded
// structs follow breadth first; a shallower field hides deeper ones of the
// same name.
func (p *Provider) fields(ctx context.Context, t typesys.TypeID, exportedOnly, promoted bool) ([]typesys.Member, error) {
	_, named, err := p.named(ctx, t)
	if err != nil {
		return nil, err
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, nil
	}

	type level struct {
		declaring typesys.TypeID
		st        *types.Struct
	}
	queue := []level{{t, st}}
	seenTypes := map[typesys.TypeID]bool{t: true}
	seenNames := make(map[string]bool)

	var out []typesys.Member
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i := 0; i < cur.st.NumFields(); i++ {
			f := cur.st.Field(i)
			if promoted && f.Embedded() {
				if en := embeddedNamed(f.Type()); en != nil {
					if est, ok := en.Underlying().(*types.Struct); ok {
						id := p.register(en.Origin().Obj())
						if !seenTypes[id] {
							seenTypes[id] = true
							queue = append(queue, level{id, est})
						}
					}
				}
			}
			if (exportedOnly && !f.Exported()) || seenNames[f.Name()] {
				continue
			}
			seenNames[f.Name()] = true
			out = append(out, p.fieldMember(cur.declaring, f))
		}
	}
	return out, nil
}

// ExportedFields returns the exported fields of t, promoted ones included.
func (p *Provider) ExportedFields(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.fields(ctx, t, true, true)
}

// DeclaredFields returns the fields declared on t itself, exported or not.
func (p *Provider) DeclaredFields(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.fields(ctx, t, false, false)
}

// Contracts returns the types t embeds: embedded interfaces of an interface
// or embedded fields of a struct.
func (p *Provider) Contracts(ctx context.Context, t typesys.TypeID) ([]typesys.TypeID, error) {
	_, named, err := p.named(ctx, t)
	if err != nil {
		return nil, err
	}

	var out []typesys.TypeID
	switch u := named.Underlying().(type) {
	case *types.Interface:
		for i := 0; i < u.NumEmbeddeds(); i++ {
			out = append(out, p.refs(u.EmbeddedType(i))...)
		}
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if f := u.Field(i); f.Embedded() {
				out = append(out, p.refs(f.Type())...)
			}
		}
	}
	return out, nil
}
