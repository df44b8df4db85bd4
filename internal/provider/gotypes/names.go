package gotypes

import (
	"go/types"
	"regexp"
	"strings"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// Wrapper prefixes of composite type descriptors that stand for their
// element type: slices, arrays, pointers and channels.
var (
	fixedPrefixes = []string{"[]", "*", "chan<- ", "<-chan ", "chan "}
	arrayPrefix   = regexp.MustCompile(`^\[\d+\]`)
)

var basicNames = func() map[typesys.TypeID]bool {
	names := map[typesys.TypeID]bool{
		"byte":           true,
		"rune":           true,
		"unsafe.Pointer": true,
	}
	for _, b := range types.Typ {
		if b == nil || b.Kind() == types.Invalid || b.Info()&types.IsUntyped != 0 {
			continue
		}
		if b.Kind() == types.UnsafePointer {
			continue
		}
		names[typesys.TypeID(b.Name())] = true
	}
	return names
}()

// isBasic reports whether t names a predeclared basic type.
func isBasic(t typesys.TypeID) bool {
	return basicNames[t]
}

func basicID(b *types.Basic) typesys.TypeID {
	if b.Kind() == types.UnsafePointer {
		return "unsafe.Pointer"
	}
	return typesys.TypeID(b.Name())
}

// wrapperPrefix returns the outermost wrapper prefix of t, or "".
func wrapperPrefix(t typesys.TypeID) string {
	s := string(t)
	for _, p := range fixedPrefixes {
		if strings.HasPrefix(s, p) {
			return p
		}
	}
	return arrayPrefix.FindString(s)
}

// elementOf strips every wrapper prefix from t.
func elementOf(t typesys.TypeID) typesys.TypeID {
	for {
		p := wrapperPrefix(t)
		if p == "" {
			return t
		}
		t = t[len(p):]
	}
}

func wrap(prefix string, ids []typesys.TypeID) []typesys.TypeID {
	for i, id := range ids {
		ids[i] = typesys.TypeID(prefix) + id
	}
	return ids
}

// splitName splits a qualified name into import path and type name. Names
// without a package qualifier belong to the universe scope.
func splitName(name string) (pkgPath, typeName string) {
	dot := strings.LastIndex(name, ".")
	if dot < 0 || dot < strings.LastIndex(name, "/") {
		return "", name
	}
	return name[:dot], name[dot+1:]
}

// typeID returns importpath.Name, or the bare name for universe types.
func typeID(obj *types.TypeName) typesys.TypeID {
	if obj.Pkg() == nil {
		return typesys.TypeID(obj.Name())
	}
	return typesys.TypeID(obj.Pkg().Path() + "." + obj.Name())
}

func qualifier(pkg *types.Package) string {
	return pkg.Path()
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}
