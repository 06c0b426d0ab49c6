package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// DB is a dynamic catalog backed by search-token metadata tables, read live
// on every lookup. Use it when token definitions are managed in the resource
// store itself rather than in code.
//
// Expected tables:
//
//	SearchPropertyToken(resource_type, token, column_name, data_type, full_text_indexed, max_length)
//	SearchSpecialToken(resource_type, token, column_name, data_type, full_text_indexed, max_length)
//	SearchPredicateToken(token, predicate_name, reverse_relation)
//	ResourceTypeHierarchy(type_full_name, parent_full_name)
//
// Property and special tokens are looked up along the type hierarchy, so
// subtypes inherit their ancestors' tokens.
type DB struct {
	db   *sqlx.DB
	conn string
}

// NewDB creates a metadata-table-backed catalog.
// The connection string is passed through to the execution dispatch.
func NewDB(db *sqlx.DB, connection string) *DB {
	if db == nil {
		panic("catalog: nil sqlx.DB")
	}
	return &DB{db: db, conn: connection}
}

// typeChain returns the resource type and its ancestors, nearest first.
func (c *DB) typeChain(ctx context.Context, resourceTypeFullName string) ([]string, error) {
	chain := []string{resourceTypeFullName}
	current := resourceTypeFullName
	for {
		var parent sql.NullString
		err := c.db.GetContext(ctx, &parent,
			`SELECT parent_full_name FROM "ResourceTypeHierarchy" WHERE type_full_name = ?`, current)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: type hierarchy lookup: %w", err)
		}
		if !parent.Valid || parent.String == "" {
			break
		}
		chain = append(chain, parent.String)
		current = parent.String
	}
	return chain, nil
}

// SpecialToken implements Catalog.
func (c *DB) SpecialToken(ctx context.Context, token, resourceTypeFullName string) (*SpecialToken, error) {
	chain, err := c.typeChain(ctx, resourceTypeFullName)
	if err != nil {
		return nil, err
	}

	for _, typeName := range chain {
		var cols []ColumnRef
		err := c.db.SelectContext(ctx, &cols,
			`SELECT column_name, data_type, full_text_indexed, max_length
			 FROM "SearchSpecialToken"
			 WHERE resource_type = ? AND LOWER(token) = LOWER(?)
			 ORDER BY column_name`, typeName, token)
		if err != nil {
			return nil, fmt.Errorf("catalog: special token lookup: %w", err)
		}
		if len(cols) > 0 {
			return &SpecialToken{Token: token, Properties: cols}, nil
		}
	}
	return nil, nil
}

// PropertyToken implements Catalog.
func (c *DB) PropertyToken(ctx context.Context, token, resourceTypeFullName string) (*ColumnRef, error) {
	chain, err := c.typeChain(ctx, resourceTypeFullName)
	if err != nil {
		return nil, err
	}

	for _, typeName := range chain {
		var col ColumnRef
		err := c.db.GetContext(ctx, &col,
			`SELECT column_name, data_type, full_text_indexed, max_length
			 FROM "SearchPropertyToken"
			 WHERE resource_type = ? AND LOWER(token) = LOWER(?)`, typeName, token)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: property token lookup: %w", err)
		}
		return &col, nil
	}
	return nil, nil
}

// ImplicitProperties implements Catalog.
func (c *DB) ImplicitProperties(ctx context.Context, resourceTypeFullName string) ([]ColumnRef, error) {
	chain, err := c.typeChain(ctx, resourceTypeFullName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var cols []ColumnRef
	for _, typeName := range chain {
		var batch []ColumnRef
		err := c.db.SelectContext(ctx, &batch,
			`SELECT column_name, data_type, full_text_indexed, max_length
			 FROM "SearchPropertyToken"
			 WHERE resource_type = ? AND data_type = ? AND full_text_indexed
			 ORDER BY column_name`, typeName, String)
		if err != nil {
			return nil, fmt.Errorf("catalog: implicit properties lookup: %w", err)
		}
		for _, col := range batch {
			if seen[col.ColumnName] {
				continue
			}
			seen[col.ColumnName] = true
			cols = append(cols, col)
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].ColumnName < cols[j].ColumnName })
	return cols, nil
}

// PredicateToken implements Catalog.
func (c *DB) PredicateToken(ctx context.Context, token string) ([]PredicateInfo, error) {
	var infos []PredicateInfo
	err := c.db.SelectContext(ctx, &infos,
		`SELECT predicate_name, reverse_relation
		 FROM "SearchPredicateToken"
		 WHERE LOWER(token) = LOWER(?)
		 ORDER BY predicate_name`, token)
	if err != nil {
		return nil, fmt.Errorf("catalog: predicate token lookup: %w", err)
	}
	return infos, nil
}

// TypeFilter implements Catalog. The subtype closure is computed with a
// recursive query over the hierarchy table.
func (c *DB) TypeFilter(ctx context.Context, resourceTypeFullName string) (string, error) {
	var names []string
	err := c.db.SelectContext(ctx, &names,
		`WITH RECURSIVE subtypes(name) AS (
		     SELECT CAST(? AS VARCHAR)
		     UNION ALL
		     SELECT h.type_full_name
		     FROM "ResourceTypeHierarchy" h JOIN subtypes s ON h.parent_full_name = s.name
		 )
		 SELECT DISTINCT name FROM subtypes ORDER BY name`, resourceTypeFullName)
	if err != nil {
		return "", fmt.Errorf("catalog: subtype closure: %w", err)
	}

	// The seed row always comes back; an unregistered type is one with no
	// hierarchy row at all.
	var known int
	err = c.db.GetContext(ctx, &known,
		`SELECT COUNT(*) FROM "ResourceTypeHierarchy" WHERE type_full_name = ?`, resourceTypeFullName)
	if err != nil {
		return "", fmt.Errorf("catalog: type lookup: %w", err)
	}
	if known == 0 {
		return "", nil
	}

	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, quoteLiteral(name))
	}
	return `"ResourceTypeFullName" IN (` + strings.Join(quoted, ", ") + `)`, nil
}

// Connection implements Catalog.
func (c *DB) Connection() string {
	return c.conn
}
