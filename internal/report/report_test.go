package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/apideps/internal/closure"
	"github.com/dbsmedya/apideps/internal/provider/memory"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// widgetClosure is the closure of app.Widget in a universe where Widget and
// Panel depend on each other.
func widgetClosure(t *testing.T) *closure.API {
	t.Helper()
	u := memory.New().MustAdd(
		memory.TypeDef{
			Name: "app.Widget",
			Members: []typesys.Member{{
				Kind:       typesys.MemberMethod,
				Name:       "parent",
				Visibility: typesys.VisibilityExported,
				Result:     "app.Panel",
			}},
		},
		memory.TypeDef{
			Name:      "app.Panel",
			Supertype: "app.Widget",
			Members: []typesys.Member{{
				Kind:       typesys.MemberField,
				Name:       "title",
				Visibility: typesys.VisibilityExported,
				FieldType:  "util.Text",
			}},
		},
		memory.TypeDef{Name: "util.Text"},
	)

	api, err := closure.New(context.Background(), u, []typesys.TypeID{"app.Widget"})
	require.NoError(t, err)
	return api
}

func render(t *testing.T, opts Options, fn func(*Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := New(&buf, opts)
	require.NoError(t, err)
	require.NoError(t, fn(r))
	return buf.String()
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report format "xml"`)
}

func TestClosure_Text(t *testing.T) {
	api := widgetClosure(t)

	out := render(t, Options{}, func(r *Renderer) error { return r.Closure(api) })

	assert.Contains(t, out, "  API closure of 1 seed type(s)\n")
	assert.Contains(t, out, "[Summary]\n---------\n")
	assert.Contains(t, out, "  Seed types:    1\n")
	assert.Contains(t, out, "  Types:         3\n")
	assert.Contains(t, out, "  Namespaces:    2\n")
	assert.Contains(t, out, "  Members:       2\n")
	assert.Contains(t, out, "  Dependencies:  3\n")
	assert.Contains(t, out, "[Namespaces (2)]\n----------------\n  app\n  util\n")
	assert.Contains(t, out, "[Types (3)]\n-----------\n  app.Panel\n  app.Widget  seed\n  util.Text\n")

	assert.NotContains(t, out, "[Members")
	assert.NotContains(t, out, "[Cycles]")
	assert.NotContains(t, out, "\x1b[", "colour is off unless requested")
}

func TestClosure_MembersAndCycles(t *testing.T) {
	api := widgetClosure(t)

	out := render(t, Options{Members: true, Cycles: true}, func(r *Renderer) error { return r.Closure(api) })

	assert.Contains(t, out, "[Members (2)]\n")
	assert.Contains(t, out, "  field   app.Panel.title      exported\n")
	assert.Contains(t, out, "  method  app.Widget.parent()  exported\n")

	assert.Contains(t, out, "[Cycles]\n")
	assert.Contains(t, out, "  cyclic: 2 of 3 type(s) lie on a cycle\n")
	assert.Contains(t, out, "  e.g. app.Panel -> app.Widget -> app.Panel\n")
}

func TestClosure_Acyclic(t *testing.T) {
	u := memory.New().MustAdd(
		memory.TypeDef{Name: "a.A", Supertype: "a.B"},
		memory.TypeDef{Name: "a.B"},
	)
	api, err := closure.New(context.Background(), u, []typesys.TypeID{"a.A"})
	require.NoError(t, err)

	out := render(t, Options{Cycles: true}, func(r *Renderer) error { return r.Closure(api) })
	assert.Contains(t, out, "  none: the dependency graph is acyclic\n")
}

func TestClosure_JSON(t *testing.T) {
	api := widgetClosure(t)

	out := render(t, Options{Format: FormatJSON, Members: true, Cycles: true, Color: true},
		func(r *Renderer) error { return r.Closure(api) })

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, []string{"app.Widget"}, got.Seeds)
	assert.Equal(t, Counts{Seeds: 1, Types: 3, Namespaces: 2, Members: 2, Dependencies: 3}, got.Counts)
	assert.Equal(t, []string{"app", "util"}, got.Namespaces)
	assert.Equal(t, []TypeEntry{
		{Name: "app.Panel", Namespace: "app", Order: 1, DependsOn: 2, Dependents: 1},
		{Name: "app.Widget", Namespace: "app", Seed: true, Order: 0, DependsOn: 1, Dependents: 1},
		{Name: "util.Text", Namespace: "util", Order: 2, Dependents: 1},
	}, got.Types)
	assert.Equal(t, []EdgeEntry{
		{From: "app.Panel", To: "app.Widget", Relations: []string{"supertype"}},
		{From: "app.Panel", To: "util.Text", Relations: []string{"field"}, Members: []string{"app.Panel.title"}},
		{From: "app.Widget", To: "app.Panel", Relations: []string{"result"}, Members: []string{"app.Widget.parent()"}},
	}, got.Dependencies)
	assert.Nil(t, got.Order)
	assert.Equal(t, []MemberEntry{
		{Name: "app.Panel.title", Kind: "field", Visibility: "exported"},
		{Name: "app.Widget.parent()", Kind: "method", Visibility: "exported"},
	}, got.Members)

	require.NotNil(t, got.Cycles)
	assert.True(t, got.Cycles.Cyclic)
	assert.Equal(t, 3, got.Cycles.Total)
	assert.Equal(t, []string{"app.Panel", "app.Widget"}, got.Cycles.Participants)

	assert.NotContains(t, out, "\x1b[", "JSON output is never coloured")
}

func TestClosure_Order(t *testing.T) {
	u := memory.New().MustAdd(
		memory.TypeDef{Name: "a.A", Supertype: "a.B"},
		memory.TypeDef{Name: "a.B"},
	)
	api, err := closure.New(context.Background(), u, []typesys.TypeID{"a.A"})
	require.NoError(t, err)

	out := render(t, Options{Order: true}, func(r *Renderer) error { return r.Closure(api) })
	assert.Contains(t, out, "[Dependency order]\n------------------\n  1. a.B\n  2. a.A\n  leaves: a.B\n")

	out = render(t, Options{Order: true}, func(r *Renderer) error { return r.Closure(widgetClosure(t)) })
	assert.Contains(t, out, "  unavailable: 3 type(s) lie on or behind a cycle\n  leaves: util.Text\n")

	out = render(t, Options{Format: FormatJSON, Order: true}, func(r *Renderer) error { return r.Closure(api) })
	var got Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Order)
	assert.Equal(t, []string{"a.B", "a.A"}, got.Order.Types)
	assert.Equal(t, []string{"a.B"}, got.Order.Leaves)
	assert.Zero(t, got.Order.Unordered)
}

func TestWhy(t *testing.T) {
	api := widgetClosure(t)

	out := render(t, Options{}, func(r *Renderer) error { return r.Why(api, "util.Text") })
	assert.Contains(t, out, "  Why util.Text\n")
	assert.Contains(t, out,
		"  app.Widget (seed)\n"+
			"  └─ result app.Panel  [app.Widget.parent()]\n"+
			"     └─ field util.Text  [app.Panel.title]\n")
	assert.Contains(t, out, "[Depended on by (1)]\n--------------------\n  app.Panel  field  app.Panel.title\n")
	assert.Contains(t, out, "util.Text depends on 0 type(s)\n")

	out = render(t, Options{Format: FormatJSON}, func(r *Renderer) error { return r.Why(api, "util.Text") })
	var got PathSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "util.Text", got.Target)
	assert.Equal(t, []PathStep{
		{Type: "app.Widget"},
		{Type: "app.Panel", Via: "result", Member: "app.Widget.parent()"},
		{Type: "util.Text", Via: "field", Member: "app.Panel.title"},
	}, got.Steps)
	assert.Equal(t, 0, got.DependsOn)
	assert.Equal(t, []EdgeEntry{
		{From: "app.Panel", To: "util.Text", Relations: []string{"field"}, Members: []string{"app.Panel.title"}},
	}, got.Dependents)

	out = render(t, Options{}, func(r *Renderer) error { return r.Why(api, "app.Widget") })
	assert.Contains(t, out, "[Depended on by (1)]\n--------------------\n  app.Panel  supertype\n")
	assert.Contains(t, out, "app.Widget depends on 1 type(s)\n")

	r, err := New(&bytes.Buffer{}, Options{})
	require.NoError(t, err)
	err = r.Why(api, "app.Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"app.Missing" is not part of the closure`)
}

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(&buf, Options{Color: true})
	require.NoError(t, err)

	r.table([][]string{
		{"日本", r.paint(r.seed, "x")},
		{"abcde", "y"},
	})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "  abcde  y", string(lines[1]))
	assert.True(t, bytes.HasPrefix(lines[0], []byte("  日本   ")), "wide runes count double: %q", lines[0])
}

func TestSortedNamespaces(t *testing.T) {
	got := sortedNamespaces([]typesys.Namespace{"io", "", "context"})
	assert.Equal(t, []string{"(predeclared)", "context", "io"}, got)
}
