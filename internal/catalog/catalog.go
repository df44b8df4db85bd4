// Package catalog holds built-in seed lists: the types a language
// specification requires by name.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one required type and where the specification requires it.
type Entry struct {
	Name      string
	Reference string
	Note      string
}

// Catalog is a named seed list.
type Catalog struct {
	Name        string
	Title       string
	Provider    string // provider kind the names are written for
	Description string
	Entries     []Entry
}

// Names returns the type names of the catalog in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

// Reference returns the specification reference for name, if the catalog
// lists it.
func (c *Catalog) Reference(name string) (string, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e.Reference, true
		}
	}
	return "", false
}

var registry = map[string]*Catalog{
	jls3.Name:   jls3,
	goSpec.Name: goSpec,
}

// Lookup returns the catalog called name.
func Lookup(name string) (*Catalog, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// SeedNames returns the type names of the catalog called name.
func SeedNames(name string) ([]string, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return c.Names(), nil
}

// Names returns the names of every built-in catalog, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every built-in catalog, sorted by name.
func All() []*Catalog {
	var out []*Catalog
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}
