// Package sqlcatalog implements typesys.Provider over an API catalog stored
// in MySQL. Type descriptors are loaded lazily and kept in an LRU cache.
package sqlcatalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dbsmedya/apideps/internal/logger"
	"github.com/dbsmedya/apideps/internal/provider/memory"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// DefaultCacheSize is used when Options.CacheSize is zero.
const DefaultCacheSize = 4096

// Options configures a Provider.
type Options struct {
	TablePrefix string
	CacheSize   int
	Logger      *logger.Logger
}

// Provider reads type descriptors from the catalog tables.
type Provider struct {
	db         *sql.DB
	q          *queries
	cache      *lru.Cache[typesys.TypeID, *memory.TypeDef]
	primitives map[typesys.TypeID]bool
	log        *logger.Logger
}

var _ typesys.Provider = (*Provider)(nil)

// New creates a Provider and loads the set of primitive types, which is
// small and consulted for every reference.
func New(ctx context.Context, db *sql.DB, opts Options) (*Provider, error) {
	if db == nil {
		return nil, &typesys.ArgumentError{Arg: "db", Message: "database handle is nil"}
	}
	q, err := newQueries(opts.TablePrefix)
	if err != nil {
		return nil, err
	}

	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[typesys.TypeID, *memory.TypeDef](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create descriptor cache: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	p := &Provider{
		db:    db,
		q:     q,
		cache: cache,
		log:   log,
	}
	if err := p.loadPrimitives(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) loadPrimitives(ctx context.Context) error {
	rows, err := p.db.QueryContext(ctx, p.q.primitives)
	if err != nil {
		return fmt.Errorf("failed to query primitive types: %w", err)
	}
	defer rows.Close()

	p.primitives = make(map[typesys.TypeID]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan primitive type: %w", err)
		}
		p.primitives[typesys.TypeID(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read primitive types: %w", err)
	}

	p.log.Debugw("loaded primitive types", "count", len(p.primitives))
	return nil
}

// Resolve returns the TypeID of name. Array names resolve when their element
// type does.
func (p *Provider) Resolve(ctx context.Context, name string) (typesys.TypeID, error) {
	if err := typesys.CheckName(name); err != nil {
		return "", err
	}
	elem := memory.ElementName(typesys.TypeID(name))
	if !p.primitives[elem] {
		if _, err := p.load(ctx, elem); err != nil {
			return "", err
		}
	}
	return typesys.TypeID(name), nil
}

// load returns the descriptor of t, from the cache when possible.
func (p *Provider) load(ctx context.Context, t typesys.TypeID) (*memory.TypeDef, error) {
	if def, ok := p.cache.Get(t); ok {
		return def, nil
	}

	def, err := p.query(ctx, t)
	if err != nil {
		return nil, err
	}
	p.cache.Add(t, def)
	p.log.Debugw("loaded type descriptor", "type", t, "members", len(def.Members))
	return def, nil
}

func (p *Provider) query(ctx context.Context, t typesys.TypeID) (*memory.TypeDef, error) {
	var (
		name, namespace, kind string
		supertype, enclosing  sql.NullString
	)
	err := p.db.QueryRowContext(ctx, p.q.typeRow, string(t)).
		Scan(&name, &namespace, &kind, &supertype, &enclosing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, typesys.NotFound(string(t))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query type %s: %w", t, err)
	}

	def := memory.TypeDef{
		Name:      typesys.TypeID(name),
		Namespace: typesys.Namespace(namespace),
		Supertype: typesys.TypeID(supertype.String),
		Enclosing: typesys.TypeID(enclosing.String),
	}
	switch kind {
	case kindClass:
	case kindPrimitive:
		def.Primitive = true
	default:
		return nil, fmt.Errorf("type %s has unknown kind %q", t, kind)
	}

	if err := p.queryLinks(ctx, &def); err != nil {
		return nil, err
	}
	if err := p.queryMembers(ctx, &def); err != nil {
		return nil, err
	}

	normalized := def.Normalized()
	return &normalized, nil
}

func (p *Provider) queryLinks(ctx context.Context, def *memory.TypeDef) error {
	rows, err := p.db.QueryContext(ctx, p.q.links, string(def.Name))
	if err != nil {
		return fmt.Errorf("failed to query links of %s: %w", def.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var link, target string
		if err := rows.Scan(&link, &target); err != nil {
			return fmt.Errorf("failed to scan link of %s: %w", def.Name, err)
		}
		switch link {
		case linkContract:
			def.Contracts = append(def.Contracts, typesys.TypeID(target))
		case linkNested:
			def.Nested = append(def.Nested, typesys.TypeID(target))
		default:
			return fmt.Errorf("type %s has unknown link %q", def.Name, link)
		}
	}
	return rows.Err()
}

func (p *Provider) queryMembers(ctx context.Context, def *memory.TypeDef) error {
	rows, err := p.db.QueryContext(ctx, p.q.members, string(def.Name))
	if err != nil {
		return fmt.Errorf("failed to query members of %s: %w", def.Name, err)
	}
	defer rows.Close()

	index := make(map[int64]int)
	for rows.Next() {
		var (
			id                           int64
			kind, name, visibility       string
			signature, result, fieldType sql.NullString
		)
		if err := rows.Scan(&id, &kind, &name, &signature, &visibility, &result, &fieldType); err != nil {
			return fmt.Errorf("failed to scan member of %s: %w", def.Name, err)
		}

		mk, err := typesys.ParseMemberKind(kind)
		if err != nil {
			return fmt.Errorf("member %d of %s: %w", id, def.Name, err)
		}
		vis, err := typesys.ParseVisibility(visibility)
		if err != nil {
			return fmt.Errorf("member %d of %s: %w", id, def.Name, err)
		}

		index[id] = len(def.Members)
		def.Members = append(def.Members, typesys.Member{
			Kind:       mk,
			Name:       name,
			Signature:  signature.String,
			Visibility: vis,
			Result:     typesys.TypeID(result.String),
			FieldType:  typesys.TypeID(fieldType.String),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read members of %s: %w", def.Name, err)
	}
	rows.Close()
	if len(def.Members) == 0 {
		return nil
	}

	return p.queryMemberRefs(ctx, def, index)
}

func (p *Provider) queryMemberRefs(ctx context.Context, def *memory.TypeDef, index map[int64]int) error {
	rows, err := p.db.QueryContext(ctx, p.q.memberRefs, string(def.Name))
	if err != nil {
		return fmt.Errorf("failed to query member references of %s: %w", def.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			role, name string
		)
		if err := rows.Scan(&id, &role, &name); err != nil {
			return fmt.Errorf("failed to scan member reference of %s: %w", def.Name, err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		m := &def.Members[i]
		switch role {
		case roleParam:
			m.Params = append(m.Params, typesys.TypeID(name))
		case roleThrows:
			m.Throws = append(m.Throws, typesys.TypeID(name))
		default:
			return fmt.Errorf("member %d of %s has unknown reference role %q", id, def.Name, role)
		}
	}
	return rows.Err()
}

// CacheLen returns the number of cached type descriptors.
func (p *Provider) CacheLen() int {
	return p.cache.Len()
}

func (p *Provider) own(ctx context.Context, t typesys.TypeID, kind typesys.MemberKind, exportedOnly bool) ([]typesys.Member, error) {
	def, err := p.load(ctx, t)
	if err != nil {
		return nil, err
	}
	return memory.OwnMembers(def, kind, exportedOnly), nil
}

// ExportedConstructors returns the exported constructors declared on t.
func (p *Provider) ExportedConstructors(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.own(ctx, t, typesys.MemberConstructor, true)
}

func (p *Provider) DeclaredConstructors(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.own(ctx, t, typesys.MemberConstructor, false)
}

// ExportedMethods returns the exported methods of t, inherited ones included.
func (p *Provider) ExportedMethods(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return memory.InheritedMembers(ctx, p.load, t, typesys.MemberMethod)
}

func (p *Provider) DeclaredMethods(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.own(ctx, t, typesys.MemberMethod, false)
}

// ExportedFields returns the exported fields of t, inherited ones included.
func (p *Provider) ExportedFields(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return memory.InheritedMembers(ctx, p.load, t, typesys.MemberField)
}

func (p *Provider) DeclaredFields(ctx context.Context, t typesys.TypeID) ([]typesys.Member, error) {
	return p.own(ctx, t, typesys.MemberField, false)
}

func (p *Provider) NestedTypes(ctx context.Context, t typesys.TypeID) ([]typesys.TypeID, error) {
	def, err := p.load(ctx, t)
	if err != nil {
		return nil, err
	}
	return def.Nested, nil
}

func (p *Provider) Contracts(ctx context.Context, t typesys.TypeID) ([]typesys.TypeID, error) {
	def, err := p.load(ctx, t)
	if err != nil {
		return nil, err
	}
	return def.Contracts, nil
}

func (p *Provider) Supertype(ctx context.Context, t typesys.TypeID) (typesys.TypeID, bool, error) {
	def, err := p.load(ctx, t)
	if err != nil {
		return "", false, err
	}
	return def.Supertype, def.Supertype != "", nil
}

func (p *Provider) EnclosingType(ctx context.Context, t typesys.TypeID) (typesys.TypeID, bool, error) {
	def, err := p.load(ctx, t)
	if err != nil {
		return "", false, err
	}
	return def.Enclosing, def.Enclosing != "", nil
}

func (p *Provider) Namespace(ctx context.Context, t typesys.TypeID) (typesys.Namespace, error) {
	def, err := p.load(ctx, t)
	if err != nil {
		return "", err
	}
	return def.Namespace, nil
}

func (p *Provider) IsArray(t typesys.TypeID) bool {
	return memory.IsArrayName(t)
}

func (p *Provider) ElementType(t typesys.TypeID) typesys.TypeID {
	if !memory.IsArrayName(t) {
		return t
	}
	return t[:len(t)-len(memory.ArraySuffix)]
}

func (p *Provider) IsPrimitive(t typesys.TypeID) bool {
	return p.primitives[t]
}
