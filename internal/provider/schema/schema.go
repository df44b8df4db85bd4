// Package schema loads a type universe from a YAML description. It lets the
// closure run over languages apideps cannot introspect directly.
package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/apideps/internal/provider/memory"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// Kinds of schema types.
const (
	KindClass     = "class"
	KindPrimitive = "primitive"
)

// File is the top-level document of a schema file.
type File struct {
	Version string `yaml:"version,omitempty"`
	// Primitives is a shorthand for types of kind primitive. The value
	// "java" expands to the Java primitive types.
	Primitives []string   `yaml:"primitives,omitempty"`
	Types      []TypeSpec `yaml:"types"`
}

// TypeSpec describes one type.
type TypeSpec struct {
	Name      string       `yaml:"name"`
	Namespace string       `yaml:"namespace,omitempty"`
	Kind      string       `yaml:"kind,omitempty"`
	Supertype string       `yaml:"supertype,omitempty"`
	Contracts []string     `yaml:"contracts,omitempty"`
	Nested    []string     `yaml:"nested,omitempty"`
	Enclosing string       `yaml:"enclosing,omitempty"`
	Members   []MemberSpec `yaml:"members,omitempty"`
}

// MemberSpec describes one constructor, method or field.
type MemberSpec struct {
	Kind       string   `yaml:"kind"`
	Name       string   `yaml:"name"`
	Visibility string   `yaml:"visibility,omitempty"`
	Signature  string   `yaml:"signature,omitempty"`
	Params     []string `yaml:"params,omitempty"`
	Throws     []string `yaml:"throws,omitempty"`
	Result     string   `yaml:"result,omitempty"`
	Type       string   `yaml:"type,omitempty"`
}

// LoadFile reads, parses and builds the universe described by the schema
// file at path.
func LoadFile(path string) (*memory.Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(f)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}
	applyDefaults(&f)
	return &f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
	for i := range f.Types {
		t := &f.Types[i]
		if t.Kind == "" {
			t.Kind = KindClass
		}
		for j := range t.Members {
			m := &t.Members[j]
			if m.Visibility == "" {
				m.Visibility = "public"
			}
			if m.Name == "" && (m.Kind == "constructor" || m.Kind == "ctor") {
				m.Name = "<init>"
			}
		}
	}
}

// Build converts a parsed schema into a validated universe.
func Build(f *File) (*memory.Universe, error) {
	u := memory.New()

	for _, p := range f.Primitives {
		if strings.EqualFold(p, "java") {
			u.WithPrimitives(memory.JavaPrimitives...)
			continue
		}
		u.WithPrimitives(typesys.TypeID(p))
	}

	for i, spec := range f.Types {
		def, err := toTypeDef(spec)
		if err != nil {
			return nil, fmt.Errorf("types[%d] %s: %w", i, spec.Name, err)
		}
		if def.Primitive {
			u.WithPrimitives(def.Name)
			continue
		}
		if err := u.Add(def); err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func toTypeDef(spec TypeSpec) (memory.TypeDef, error) {
	def := memory.TypeDef{
		Name:      typesys.TypeID(spec.Name),
		Namespace: typesys.Namespace(spec.Namespace),
		Supertype: typesys.TypeID(spec.Supertype),
		Contracts: ids(spec.Contracts),
		Nested:    ids(spec.Nested),
		Enclosing: typesys.TypeID(spec.Enclosing),
	}

	switch spec.Kind {
	case KindClass:
	case KindPrimitive:
		def.Primitive = true
		return def, nil
	default:
		return def, fmt.Errorf("unknown kind %q", spec.Kind)
	}

	for j, ms := range spec.Members {
		m, err := toMember(ms)
		if err != nil {
			return def, fmt.Errorf("members[%d] %s: %w", j, ms.Name, err)
		}
		def.Members = append(def.Members, m)
	}
	return def, nil
}

func toMember(ms MemberSpec) (typesys.Member, error) {
	kind, err := typesys.ParseMemberKind(ms.Kind)
	if err != nil {
		return typesys.Member{}, err
	}
	vis, err := typesys.ParseVisibility(ms.Visibility)
	if err != nil {
		return typesys.Member{}, err
	}
	if ms.Name == "" {
		return typesys.Member{}, fmt.Errorf("member name is empty")
	}

	m := typesys.Member{
		Kind:       kind,
		Name:       ms.Name,
		Signature:  ms.Signature,
		Visibility: vis,
	}
	switch kind {
	case typesys.MemberField:
		if ms.Type == "" {
			return m, fmt.Errorf("field type is empty")
		}
		m.FieldType = typesys.TypeID(ms.Type)
	case typesys.MemberMethod:
		m.Result = typesys.TypeID(ms.Result)
		fallthrough
	default:
		m.Params = ids(ms.Params)
		m.Throws = ids(ms.Throws)
	}
	return m, nil
}

func ids(names []string) []typesys.TypeID {
	if len(names) == 0 {
		return nil
	}
	out := make([]typesys.TypeID, len(names))
	for i, n := range names {
		out[i] = typesys.TypeID(n)
	}
	return out
}
