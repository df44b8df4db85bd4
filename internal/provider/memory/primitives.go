package memory

import "github.com/dbsmedya/apideps/internal/typesys"

// JavaPrimitives are the primitive types of the Java language, including
// void, which appears as a method result.
var JavaPrimitives = []typesys.TypeID{
	"boolean", "byte", "char", "short", "int", "long", "float", "double", "void",
}

// WithPrimitives registers every name as a primitive type. Names already
// present are skipped.
func (u *Universe) WithPrimitives(names ...typesys.TypeID) *Universe {
	for _, name := range names {
		if _, exists := u.types[name]; exists {
			continue
		}
		u.types[name] = &TypeDef{Name: name, Primitive: true}
	}
	return u
}
