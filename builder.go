package resquery

import (
	"fmt"

	"github.com/resgraph/resquery-go/catalog"
)

// CatalogBuilder builds static token catalogs using fluent API.
// Not thread-safe - use only during initialization.
type CatalogBuilder struct {
	cat   *catalog.StaticCatalog
	errs  []error
	built bool
}

// NewCatalogBuilder creates a new fluent catalog builder. The connection
// string is passed through untouched to the execution dispatch.
//
// Example:
//
//	cat, err := resquery.NewCatalogBuilder("main").
//	    ResourceType("Model.Resource", "").
//	        Property("title", catalog.ColumnRef{ColumnName: "Title", DataType: catalog.String}).
//	    ResourceType("Model.Publication", "Model.Resource").
//	        Property("year", catalog.ColumnRef{ColumnName: "Year", DataType: catalog.Int32}).
//	    Predicate("authorof", "AuthorOf", false).
//	    Build()
func NewCatalogBuilder(connection string) *CatalogBuilder {
	return &CatalogBuilder{
		cat: catalog.NewStaticCatalog(connection),
	}
}

// ResourceType starts defining a resource type. parentFullName may be empty
// for a root type; subtypes inherit their ancestors' property and special
// tokens and are included in the parent's type filter.
func (cb *CatalogBuilder) ResourceType(fullName, parentFullName string) *ResourceTypeBuilder {
	if fullName == "" {
		cb.errs = append(cb.errs, fmt.Errorf("resource type name cannot be empty"))
		return &ResourceTypeBuilder{builder: cb}
	}
	cb.cat.AddResourceType(fullName, parentFullName)
	return &ResourceTypeBuilder{builder: cb, typeName: fullName}
}

// Predicate registers a relationship under a predicate token. reverse marks
// relationships traversed from object to subject.
func (cb *CatalogBuilder) Predicate(token, predicateName string, reverse bool) *CatalogBuilder {
	if token == "" || predicateName == "" {
		cb.errs = append(cb.errs, fmt.Errorf("predicate token and name cannot be empty"))
		return cb
	}
	cb.cat.AddPredicate(token, catalog.PredicateInfo{
		PredicateName:   predicateName,
		ReverseRelation: reverse,
	})
	return cb
}

// Build finalizes the catalog and returns the immutable implementation.
// Can only be called once.
func (cb *CatalogBuilder) Build() (*catalog.StaticCatalog, error) {
	if cb.built {
		return nil, fmt.Errorf("catalog already built")
	}
	if len(cb.errs) > 0 {
		return nil, cb.errs[0]
	}
	cb.built = true
	return cb.cat, nil
}

// ResourceTypeBuilder adds tokens to one resource type.
type ResourceTypeBuilder struct {
	builder  *CatalogBuilder
	typeName string
}

// Property registers a property token resolving to one column.
func (rb *ResourceTypeBuilder) Property(token string, col catalog.ColumnRef) *ResourceTypeBuilder {
	if rb.typeName == "" {
		return rb
	}
	if token == "" || col.ColumnName == "" {
		rb.builder.errs = append(rb.builder.errs,
			fmt.Errorf("property on %s: token and column name cannot be empty", rb.typeName))
		return rb
	}
	if err := rb.builder.cat.AddProperty(rb.typeName, token, col); err != nil {
		rb.builder.errs = append(rb.builder.errs, err)
	}
	return rb
}

// SpecialToken registers a token expanding to several columns, matched with OR.
func (rb *ResourceTypeBuilder) SpecialToken(token string, cols ...catalog.ColumnRef) *ResourceTypeBuilder {
	if rb.typeName == "" {
		return rb
	}
	if token == "" || len(cols) == 0 {
		rb.builder.errs = append(rb.builder.errs,
			fmt.Errorf("special token on %s: token and columns cannot be empty", rb.typeName))
		return rb
	}
	if err := rb.builder.cat.AddSpecialToken(rb.typeName, token, cols); err != nil {
		rb.builder.errs = append(rb.builder.errs, err)
	}
	return rb
}

// ResourceType starts defining the next resource type.
func (rb *ResourceTypeBuilder) ResourceType(fullName, parentFullName string) *ResourceTypeBuilder {
	return rb.builder.ResourceType(fullName, parentFullName)
}

// Predicate registers a relationship under a predicate token.
func (rb *ResourceTypeBuilder) Predicate(token, predicateName string, reverse bool) *CatalogBuilder {
	return rb.builder.Predicate(token, predicateName, reverse)
}

// Build finalizes the catalog.
func (rb *ResourceTypeBuilder) Build() (*catalog.StaticCatalog, error) {
	return rb.builder.Build()
}
