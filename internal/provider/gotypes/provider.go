// Package gotypes implements typesys.Provider over Go packages loaded with
// golang.org/x/tools/go/packages.
//
// A TypeID is the import path and name of a declared type, such as
// "net/http.Request", or the bare name of a predeclared type. Slices,
// arrays, pointers and channels are written in Go syntax and stand for
// their element type. Go has no class inheritance: a type has no supertype,
// enclosing or nested types, and its contracts are the types it embeds.
package gotypes

import (
	"context"
	"fmt"
	"go/types"
	"strings"
	"sync"
	"time"

	"golang.org/x/tools/go/packages"

	"github.com/dbsmedya/apideps/internal/logger"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// loadMode is enough to get complete type information for a package; the
// types of its dependencies come from export data.
const loadMode = packages.NeedName | packages.NeedTypes

// Config selects how packages are loaded.
type Config struct {
	// Dir is the directory the go command runs in. It decides which module
	// and which versions of dependencies are visible.
	Dir          string
	BuildTags    []string
	IncludeTests bool
	Logger       *logger.Logger
}

// Provider resolves and introspects Go types. Packages are loaded on first
// use and kept for the lifetime of the Provider. It is safe for concurrent
// use.
type Provider struct {
	cfg Config
	log *logger.Logger

	mu       sync.Mutex
	packages map[string]*types.Package
	objects  map[typesys.TypeID]*types.TypeName
}

var _ typesys.Provider = (*Provider)(nil)

// New creates a Provider.
func New(cfg Config) *Provider {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Provider{
		cfg:      cfg,
		log:      log,
		packages: make(map[string]*types.Package),
		objects:  make(map[typesys.TypeID]*types.TypeName),
	}
}

// Resolve returns the TypeID of name. Wrapped names such as "[]*pkg.T"
// resolve when their element type does.
func (p *Provider) Resolve(ctx context.Context, name string) (typesys.TypeID, error) {
	if err := typesys.CheckName(name); err != nil {
		return "", err
	}
	id := typesys.TypeID(strings.TrimSpace(name))
	if elem := elementOf(id); !isBasic(elem) {
		if _, err := p.lookup(ctx, elem); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Packages returns the import paths loaded so far.
func (p *Provider) Packages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	paths := make([]string, 0, len(p.packages))
	for path := range p.packages {
		paths = append(paths, path)
	}
	return paths
}

// register records obj so it can be introspected later and returns its ID.
func (p *Provider) register(obj *types.TypeName) typesys.TypeID {
	id := typeID(obj)
	p.mu.Lock()
	if _, ok := p.objects[id]; !ok {
		p.objects[id] = obj
	}
	p.mu.Unlock()
	return id
}

// lookup returns the declared type named t, loading its package if needed.
func (p *Provider) lookup(ctx context.Context, t typesys.TypeID) (*types.TypeName, error) {
	p.mu.Lock()
	obj, ok := p.objects[t]
	p.mu.Unlock()
	if ok {
		return obj, nil
	}

	pkgPath, name := splitName(string(t))
	var scope *types.Scope
	if pkgPath == "" {
		scope = types.Universe
	} else {
		pkg, err := p.loadPackage(ctx, pkgPath)
		if err != nil {
			return nil, fmt.Errorf("type %q: %v: %w", t, err, typesys.ErrNotFound)
		}
		scope = pkg.Scope()
	}

	tn, ok := scope.Lookup(name).(*types.TypeName)
	if !ok {
		return nil, typesys.NotFound(string(t))
	}
	if _, named := tn.Type().(*types.Named); !named {
		// Aliases and basic types have no surface of their own.
		return nil, fmt.Errorf("type %q is not a defined type: %w", t, typesys.ErrNotFound)
	}
	p.register(tn)
	return tn, nil
}

func (p *Provider) loadPackage(ctx context.Context, path string) (*types.Package, error) {
	p.mu.Lock()
	pkg, ok := p.packages[path]
	p.mu.Unlock()
	if ok {
		return pkg, nil
	}

	start := time.Now()
	cfg := &packages.Config{
		Mode:    loadMode,
		Context: ctx,
		Dir:     p.cfg.Dir,
		Tests:   p.cfg.IncludeTests,
	}
	if len(p.cfg.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(p.cfg.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", path, err)
	}

	loaded := pickPackage(pkgs, path, p.cfg.IncludeTests)
	if loaded == nil {
		return nil, fmt.Errorf("package %s not found", path)
	}
	if len(loaded.Errors) > 0 || loaded.Types == nil {
		var msgs []string
		for _, e := range loaded.Errors {
			msgs = append(msgs, e.Error())
		}
		return nil, fmt.Errorf("package %s has errors: %s", path, strings.Join(msgs, "; "))
	}

	p.mu.Lock()
	p.packages[path] = loaded.Types
	p.mu.Unlock()

	p.log.Debugw("loaded package", "package", path, "duration", time.Since(start))
	return loaded.Types, nil
}

// pickPackage selects the package for path among the results of a load. With
// tests enabled the test variant, which also sees _test.go files, wins.
func pickPackage(pkgs []*packages.Package, path string, tests bool) *packages.Package {
	var found *packages.Package
	for _, pkg := range pkgs {
		if pkg.PkgPath != path {
			continue
		}
		if found == nil || (tests && pkg.ID != pkg.PkgPath) {
			found = pkg
		}
	}
	return found
}

func (p *Provider) named(ctx context.Context, t typesys.TypeID) (*types.TypeName, *types.Named, error) {
	obj, err := p.lookup(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	return obj, obj.Type().(*types.Named), nil
}

// NestedTypes returns nothing: Go has no nested type declarations.
func (p *Provider) NestedTypes(ctx context.Context, t typesys.TypeID) ([]typesys.TypeID, error) {
	_, err := p.lookup(ctx, t)
	return nil, err
}

// Supertype reports no supertype: Go has no class inheritance.
func (p *Provider) Supertype(ctx context.Context, t typesys.TypeID) (typesys.TypeID, bool, error) {
	_, err := p.lookup(ctx, t)
	return "", false, err
}

// EnclosingType reports no enclosing type.
func (p *Provider) EnclosingType(ctx context.Context, t typesys.TypeID) (typesys.TypeID, bool, error) {
	_, err := p.lookup(ctx, t)
	return "", false, err
}

// Namespace returns the import path of the package declaring t, or "" for
// predeclared types.
func (p *Provider) Namespace(ctx context.Context, t typesys.TypeID) (typesys.Namespace, error) {
	obj, err := p.lookup(ctx, t)
	if err != nil {
		return "", err
	}
	if obj.Pkg() == nil {
		return "", nil
	}
	return typesys.Namespace(obj.Pkg().Path()), nil
}

// IsArray reports whether t is a slice, array, pointer or channel descriptor.
func (p *Provider) IsArray(t typesys.TypeID) bool {
	return wrapperPrefix(t) != ""
}

// ElementType strips the outermost wrapper from t.
func (p *Provider) ElementType(t typesys.TypeID) typesys.TypeID {
	return t[len(wrapperPrefix(t)):]
}

// IsPrimitive reports whether t is a predeclared basic type.
func (p *Provider) IsPrimitive(t typesys.TypeID) bool {
	return isBasic(t)
}
