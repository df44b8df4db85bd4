package gotypes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/apideps/internal/closure"
	"github.com/dbsmedya/apideps/internal/typesys"
)

const fixturePkg = "github.com/dbsmedya/apideps/internal/provider/gotypes/internal/fixture"

func fx(name string) typesys.TypeID {
	return typesys.TypeID(fixturePkg + "." + name)
}

func newProvider(t *testing.T) *Provider {
	t.Helper()
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	return New(Config{Dir: "."})
}

func names(members []typesys.Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}

func TestNames(t *testing.T) {
	tests := []struct {
		in      typesys.TypeID
		prefix  string
		element typesys.TypeID
	}{
		{"[]*net/http.Request", "[]", "net/http.Request"},
		{"*bytes.Buffer", "*", "bytes.Buffer"},
		{"[16]byte", "[16]", "byte"},
		{"chan<- int", "chan<- ", "int"},
		{"<-chan error", "<-chan ", "error"},
		{"chan []string", "chan ", "string"},
		{"time.Duration", "", "time.Duration"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.prefix, wrapperPrefix(tt.in), "wrapperPrefix(%q)", tt.in)
		assert.Equal(t, tt.element, elementOf(tt.in), "elementOf(%q)", tt.in)
	}

	pkg, name := splitName("github.com/a/b.v2/pkg.Type")
	assert.Equal(t, "github.com/a/b.v2/pkg", pkg)
	assert.Equal(t, "Type", name)

	pkg, name = splitName("gopkg.in/yaml.v3.Node")
	assert.Equal(t, "gopkg.in/yaml.v3", pkg)
	assert.Equal(t, "Node", name)

	pkg, name = splitName("example.com/pkg")
	assert.Equal(t, "", pkg, "a dot before the last slash is not a type qualifier")
	assert.Equal(t, "example.com/pkg", name)

	pkg, name = splitName("error")
	assert.Equal(t, "", pkg)
	assert.Equal(t, "error", name)
}

func TestPrimitivesAndArrays(t *testing.T) {
	p := New(Config{})

	for _, basic := range []typesys.TypeID{"int", "string", "byte", "rune", "bool", "complex128", "unsafe.Pointer"} {
		assert.True(t, p.IsPrimitive(basic), basic)
	}
	for _, other := range []typesys.TypeID{"error", "any", "[]int", "time.Time"} {
		assert.False(t, p.IsPrimitive(other), other)
	}

	assert.True(t, p.IsArray("[]*x.T"))
	assert.Equal(t, typesys.TypeID("*x.T"), p.ElementType("[]*x.T"))
	assert.Equal(t, typesys.TypeID("x.T"), typesys.UltimateElement(p, "[]*[3]chan x.T"))
	assert.False(t, p.IsArray("x.T"))
}

func TestResolve(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	id, err := p.Resolve(ctx, string(fx("Canvas")))
	require.NoError(t, err)
	assert.Equal(t, fx("Canvas"), id)

	_, err = p.Resolve(ctx, "[]*"+string(fx("Layer")))
	require.NoError(t, err)

	_, err = p.Resolve(ctx, "int")
	require.NoError(t, err)

	_, err = p.Resolve(ctx, "error")
	require.NoError(t, err)

	_, err = p.Resolve(ctx, string(fx("Missing")))
	assert.True(t, errors.Is(err, typesys.ErrNotFound))

	_, err = p.Resolve(ctx, "example.invalid/nothing/here.Type")
	assert.True(t, errors.Is(err, typesys.ErrNotFound))

	_, err = p.Resolve(ctx, "")
	var argErr *typesys.ArgumentError
	assert.True(t, errors.As(err, &argErr))

	assert.Contains(t, p.Packages(), fixturePkg)
}

func TestConstructors(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	exported, err := p.ExportedConstructors(ctx, fx("Canvas"))
	require.NoError(t, err)
	require.Len(t, exported, 1)
	ctor := exported[0]
	assert.Equal(t, "NewCanvas", ctor.Name)
	assert.Equal(t, fx("Canvas"), ctor.Declaring)
	assert.Equal(t, []typesys.TypeID{"int", "int"}, ctor.Params)
	assert.Equal(t, []typesys.TypeID{"error"}, ctor.Throws)
	assert.Equal(t, "int,int", ctor.Signature)

	declared, err := p.DeclaredConstructors(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.Equal(t, []string{"NewCanvas", "newCanvas"}, names(declared))
	assert.Equal(t, typesys.VisibilityOther, declared[1].Visibility)

	generic, err := p.ExportedConstructors(ctx, fx("Palette"))
	require.NoError(t, err)
	require.Len(t, generic, 1)
	assert.Equal(t, "NewPalette", generic[0].Name)
	assert.Equal(t, "...T", generic[0].Signature)
}

func TestExportedMethods(t *testing.T) {
	p := newProvider(t)

	methods, err := p.ExportedMethods(context.Background(), fx("Canvas"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Area", "Bounds", "Draw", "Export", "Size"}, names(methods))

	byName := make(map[string]typesys.Member)
	for _, m := range methods {
		byName[m.Name] = m
	}

	assert.Equal(t, fx("Rect"), byName["Area"].Declaring, "promoted method keeps its declaring type")
	assert.Equal(t, typesys.TypeID("float64"), byName["Area"].Result)

	export := byName["Export"]
	assert.Equal(t, fx("Canvas"), export.Declaring)
	assert.Equal(t, []typesys.TypeID{"io.Writer"}, export.Params)
	assert.Equal(t, typesys.TypeID("int64"), export.Result)
	assert.Equal(t, []typesys.TypeID{"error"}, export.Throws)

	size := byName["Size"]
	assert.Equal(t, fx("Point"), size.Result)
	assert.Equal(t, []typesys.TypeID{fx("Point")}, size.Extra)
}

func TestInterfaceMethods(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	methods, err := p.ExportedMethods(ctx, fx("Solid"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Area", "Bounds", "Volume"}, names(methods))
	assert.Equal(t, fx("Shape"), methods[0].Declaring)
	assert.Equal(t, fx("Solid"), methods[2].Declaring)

	declared, err := p.DeclaredMethods(ctx, fx("Solid"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Volume"}, names(declared))

	contracts, err := p.Contracts(ctx, fx("Solid"))
	require.NoError(t, err)
	assert.Equal(t, []typesys.TypeID{fx("Shape")}, contracts)
}

func TestDeclaredMethods(t *testing.T) {
	p := newProvider(t)

	methods, err := p.DeclaredMethods(context.Background(), fx("Canvas"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Draw", "Export", "Size", "reset"}, names(methods))
}

func TestFields(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	exported, err := p.ExportedFields(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rect", "Layers", "Hook", "Min", "Max"}, names(exported))

	layers := exported[1]
	assert.Equal(t, typesys.TypeID("string"), layers.FieldType)
	assert.Equal(t, []typesys.TypeID{"[]*" + fx("Layer")}, layers.Extra)

	hook := exported[2]
	assert.Equal(t, typesys.TypeID("context.Context"), hook.FieldType)
	assert.Equal(t, []typesys.TypeID{"error"}, hook.Extra)

	assert.Equal(t, fx("Rect"), exported[3].Declaring)

	declared, err := p.DeclaredFields(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rect", "Layers", "Hook", "hidden"}, names(declared))

	stream, err := p.ExportedFields(ctx, fx("Stream"))
	require.NoError(t, err)
	require.Len(t, stream, 3)
	assert.Equal(t, "<-chan "+fx("Point"), stream[0].FieldType)
	assert.Equal(t, "[4][]"+fx("Point"), stream[1].FieldType)
	assert.Contains(t, []typesys.TypeID{"[]byte", "[]uint8"}, stream[2].FieldType)

	contracts, err := p.Contracts(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.Equal(t, []typesys.TypeID{fx("Rect")}, contracts)
}

func TestNoInheritance(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	_, ok, err := p.Supertype(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = p.EnclosingType(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.False(t, ok)

	nested, err := p.NestedTypes(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.Empty(t, nested)

	ns, err := p.Namespace(ctx, fx("Canvas"))
	require.NoError(t, err)
	assert.Equal(t, typesys.Namespace(fixturePkg), ns)

	ns, err = p.Namespace(ctx, "error")
	require.NoError(t, err)
	assert.Equal(t, typesys.Namespace(""), ns)
}

func TestClosure(t *testing.T) {
	p := newProvider(t)

	api, err := closure.New(context.Background(), p, []typesys.TypeID{fx("Shape")})
	require.NoError(t, err)
	assert.Equal(t, []typesys.TypeID{fx("Shape"), fx("Rect"), fx("Point")}, api.ClassesAndInterfaces())
	assert.Equal(t, []typesys.Namespace{fixturePkg}, api.Namespaces())

	canvas, err := closure.New(context.Background(), p, []typesys.TypeID{fx("Canvas")})
	require.NoError(t, err)
	for _, want := range []typesys.TypeID{fx("Layer"), fx("Rect"), "io.Writer", "context.Context", "error", "time.Time"} {
		assert.True(t, canvas.Contains(want), "closure of Canvas should contain %s", want)
	}
	assert.False(t, canvas.Contains(fx("secret")), "unexported field types stay out")
	assert.Contains(t, canvas.Namespaces(), typesys.Namespace("io"))
}
