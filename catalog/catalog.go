// Package catalog provides interfaces for resolving search tokens against
// resource-store metadata.
//
// The catalog package follows an interface-based design to support both static
// and dynamic implementations:
//   - Static catalogs: Built using resquery.NewCatalogBuilder() fluent API
//     (immutable, fast lookup, snapshot serialization)
//   - Dynamic catalogs: Custom implementations that can reflect live metadata
//     tables (see DB)
//
// All interfaces are goroutine-safe and support context-based cancellation.
package catalog

import "context"

// Catalog maps human-facing search tokens to physical columns and
// relationship metadata.
//
// Lookups that find nothing return (nil, nil) or an empty slice, never an
// error. Errors are reserved for infrastructure faults (connectivity, bad
// metadata tables) and propagate unchanged.
// All methods MUST be goroutine-safe.
type Catalog interface {
	// SpecialToken resolves a special search keyword for a resource type to
	// the set of related columns it expands to.
	// Returns (nil, nil) if the token is unknown for the type.
	SpecialToken(ctx context.Context, token, resourceTypeFullName string) (*SpecialToken, error)

	// PropertyToken resolves a property keyword for a resource type to
	// exactly one column.
	// Returns (nil, nil) if the token is unknown for the type.
	PropertyToken(ctx context.Context, token, resourceTypeFullName string) (*ColumnRef, error)

	// ImplicitProperties returns all full-text-indexed string columns of a
	// resource type. May be empty; an empty result is not an error.
	ImplicitProperties(ctx context.Context, resourceTypeFullName string) ([]ColumnRef, error)

	// PredicateToken resolves a relationship keyword to the relationships it
	// names. May return multiple entries when the token maps to relationships
	// defined from several source types; entries agree on direction.
	// Returns an empty slice if the token is unknown.
	PredicateToken(ctx context.Context, token string) ([]PredicateInfo, error)

	// TypeFilter returns the SQL predicate restricting resource rows to the
	// given type and its subtypes.
	// Returns ("", nil) if the resource type is unknown.
	TypeFilter(ctx context.Context, resourceTypeFullName string) (string, error)

	// Connection is an opaque connection/identity string passed through to
	// the execution dispatch.
	Connection() string
}
