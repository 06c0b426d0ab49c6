// Package tree models search expressions as typed node trees and converts
// them to SQL selecting resource ids from a schema-driven resource store.
//
// A tree is built (or decoded from its JSON/MessagePack wire form) by the
// caller and handed to a Converter, which resolves search tokens against a
// catalog.Catalog and emits one query fragment per node:
//
//   - AllResources selects every instance of a resource type.
//   - Comparison, WordEqual and WordStartsWith constrain resolved columns.
//   - And and Not combine child fragments with INTERSECT and EXCEPT.
//   - PredicateJoin traverses a relationship (forward or reverse, as the
//     catalog dictates) between a PredicateRef and a target constraint.
//
// An empty fragment is a deliberate non-error signal: a node whose token
// resolves to zero columns contributes nothing, and set combinators absorb
// empty operands instead of failing. Invalid tokens, operators and values
// raise a *SearchError before any SQL is built.
//
// Conversion is pure computation over the tree plus catalog lookups. A tree
// is single-use per conversion pass and must not be shared across concurrent
// conversions.
package tree
