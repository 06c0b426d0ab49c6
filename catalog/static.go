package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// StaticCatalog is an immutable catalog implementation built from the
// resquery catalog builder. Token lookups are case-insensitive and walk the
// resource-type hierarchy, so subtypes inherit properties from their parents.
type StaticCatalog struct {
	conn       string
	types      map[string]*resourceType
	predicates map[string][]PredicateInfo
}

// resourceType holds the searchable metadata of one resource type.
type resourceType struct {
	fullName   string
	parent     string
	properties map[string]ColumnRef
	specials   map[string][]ColumnRef
}

// NewStaticCatalog creates an empty static catalog.
// This is exported for use by the resquery package builder.
func NewStaticCatalog(connection string) *StaticCatalog {
	return &StaticCatalog{
		conn:       connection,
		types:      make(map[string]*resourceType),
		predicates: make(map[string][]PredicateInfo),
	}
}

// AddResourceType registers a resource type with an optional parent type.
// Used during catalog building.
func (c *StaticCatalog) AddResourceType(fullName, parentFullName string) {
	c.types[fullName] = &resourceType{
		fullName:   fullName,
		parent:     parentFullName,
		properties: make(map[string]ColumnRef),
		specials:   make(map[string][]ColumnRef),
	}
}

// AddProperty registers a property token on a resource type.
// The type must already be registered.
func (c *StaticCatalog) AddProperty(typeFullName, token string, col ColumnRef) error {
	rt, ok := c.types[typeFullName]
	if !ok {
		return fmt.Errorf("catalog: unknown resource type %q", typeFullName)
	}
	rt.properties[strings.ToLower(token)] = col
	return nil
}

// AddSpecialToken registers a special token expanding to several columns.
// The type must already be registered.
func (c *StaticCatalog) AddSpecialToken(typeFullName, token string, cols []ColumnRef) error {
	rt, ok := c.types[typeFullName]
	if !ok {
		return fmt.Errorf("catalog: unknown resource type %q", typeFullName)
	}
	rt.specials[strings.ToLower(token)] = cols
	return nil
}

// AddPredicate registers a relationship under a predicate token.
func (c *StaticCatalog) AddPredicate(token string, info PredicateInfo) {
	key := strings.ToLower(token)
	c.predicates[key] = append(c.predicates[key], info)
}

// SpecialToken implements Catalog.
func (c *StaticCatalog) SpecialToken(ctx context.Context, token, resourceTypeFullName string) (*SpecialToken, error) {
	key := strings.ToLower(token)
	for rt := c.types[resourceTypeFullName]; rt != nil; rt = c.types[rt.parent] {
		if cols, ok := rt.specials[key]; ok {
			return &SpecialToken{Token: token, Properties: cols}, nil
		}
		if rt.parent == "" {
			break
		}
	}
	return nil, nil // Not found, not an error
}

// PropertyToken implements Catalog.
func (c *StaticCatalog) PropertyToken(ctx context.Context, token, resourceTypeFullName string) (*ColumnRef, error) {
	key := strings.ToLower(token)
	for rt := c.types[resourceTypeFullName]; rt != nil; rt = c.types[rt.parent] {
		if col, ok := rt.properties[key]; ok {
			return &col, nil
		}
		if rt.parent == "" {
			break
		}
	}
	return nil, nil // Not found, not an error
}

// ImplicitProperties implements Catalog. It collects the full-text-indexed
// string columns of the type and its ancestors, deduplicated by column name
// with the nearest declaration winning.
func (c *StaticCatalog) ImplicitProperties(ctx context.Context, resourceTypeFullName string) ([]ColumnRef, error) {
	seen := make(map[string]bool)
	var cols []ColumnRef
	for rt := c.types[resourceTypeFullName]; rt != nil; rt = c.types[rt.parent] {
		for _, col := range rt.properties {
			if col.DataType != String || !col.IsFullTextIndexed || seen[col.ColumnName] {
				continue
			}
			seen[col.ColumnName] = true
			cols = append(cols, col)
		}
		if rt.parent == "" {
			break
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].ColumnName < cols[j].ColumnName })
	return cols, nil
}

// PredicateToken implements Catalog.
func (c *StaticCatalog) PredicateToken(ctx context.Context, token string) ([]PredicateInfo, error) {
	return c.predicates[strings.ToLower(token)], nil
}

// TypeFilter implements Catalog. The predicate covers the type and the
// closure of its subtypes, in sorted order for deterministic output.
func (c *StaticCatalog) TypeFilter(ctx context.Context, resourceTypeFullName string) (string, error) {
	if _, ok := c.types[resourceTypeFullName]; !ok {
		return "", nil // Unknown type, caller decides severity
	}

	names := []string{resourceTypeFullName}
	for i := 0; i < len(names); i++ {
		for _, rt := range c.types {
			if rt.parent == names[i] {
				names = append(names, rt.fullName)
			}
		}
	}
	sort.Strings(names)

	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, quoteLiteral(name))
	}
	return `"ResourceTypeFullName" IN (` + strings.Join(quoted, ", ") + `)`, nil
}

// Connection implements Catalog.
func (c *StaticCatalog) Connection() string {
	return c.conn
}

// quoteLiteral returns a SQL string literal with single quotes doubled.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
