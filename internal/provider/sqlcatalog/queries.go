package sqlcatalog

import (
	"fmt"

	"github.com/dbsmedya/apideps/internal/sqlutil"
)

// Base names of the catalog tables; the configured prefix is prepended.
const (
	typesTable      = "types"
	linksTable      = "type_links"
	membersTable    = "members"
	memberRefsTable = "member_refs"
)

// Values of the kind, link and role columns.
const (
	kindClass     = "class"
	kindPrimitive = "primitive"

	linkContract = "contract"
	linkNested   = "nested"

	roleParam  = "param"
	roleThrows = "throws"
)

// queries holds the SQL text for one table prefix.
type queries struct {
	primitives string
	typeRow    string
	links      string
	members    string
	memberRefs string
	ddl        []string
}

func newQueries(prefix string) (*queries, error) {
	names := make(map[string]string, 4)
	for _, base := range []string{typesTable, linksTable, membersTable, memberRefsTable} {
		quoted, err := sqlutil.TableName(prefix, base)
		if err != nil {
			return nil, fmt.Errorf("table prefix %q: %w", prefix, err)
		}
		names[base] = quoted
	}
	types, links, members, refs := names[typesTable], names[linksTable], names[membersTable], names[memberRefsTable]

	return &queries{
		primitives: fmt.Sprintf("SELECT name FROM %s WHERE kind = '%s' ORDER BY name", types, kindPrimitive),
		typeRow: fmt.Sprintf(
			"SELECT name, namespace, kind, supertype, enclosing FROM %s WHERE name = ?", types),
		links: fmt.Sprintf(
			"SELECT link, target FROM %s WHERE type_name = ? ORDER BY link, position", links),
		members: fmt.Sprintf(
			"SELECT id, kind, name, signature, visibility, result_type, field_type FROM %s WHERE declaring = ? ORDER BY id", members),
		memberRefs: fmt.Sprintf(
			"SELECT r.member_id, r.role, r.type_name FROM %s r JOIN %s m ON m.id = r.member_id "+
				"WHERE m.declaring = ? ORDER BY r.member_id, r.role, r.position", refs, members),
		ddl: []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  name VARCHAR(512) NOT NULL PRIMARY KEY,
  namespace VARCHAR(512) NOT NULL DEFAULT '',
  kind ENUM('%s','%s') NOT NULL DEFAULT '%s',
  supertype VARCHAR(512) NULL,
  enclosing VARCHAR(512) NULL
)`, types, kindClass, kindPrimitive, kindClass),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  type_name VARCHAR(512) NOT NULL,
  link ENUM('%s','%s') NOT NULL,
  target VARCHAR(512) NOT NULL,
  position INT NOT NULL DEFAULT 0,
  PRIMARY KEY (type_name, link, position)
)`, links, linkContract, linkNested),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  declaring VARCHAR(512) NOT NULL,
  kind ENUM('constructor','method','field') NOT NULL,
  name VARCHAR(255) NOT NULL,
  signature VARCHAR(2048) NULL,
  visibility ENUM('public','protected','package','private') NOT NULL,
  result_type VARCHAR(512) NULL,
  field_type VARCHAR(512) NULL,
  KEY idx_declaring (declaring)
)`, members),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  member_id BIGINT NOT NULL,
  role ENUM('%s','%s') NOT NULL,
  position INT NOT NULL DEFAULT 0,
  type_name VARCHAR(512) NOT NULL,
  PRIMARY KEY (member_id, role, position)
)`, refs, roleParam, roleThrows),
		},
	}, nil
}

// DDL returns the CREATE TABLE statements of a catalog with the given
// table prefix.
func DDL(prefix string) ([]string, error) {
	q, err := newQueries(prefix)
	if err != nil {
		return nil, err
	}
	return q.ddl, nil
}
