// Package exec dispatches compiled search queries to a resource store and
// returns pages of matching resource ids.
package exec

import (
	"context"

	"github.com/google/uuid"
)

// SortDirection orders a result page.
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

// Executor runs compiled queries against a resource store.
// Implementations MUST be goroutine-safe.
type Executor interface {
	// MatchingResourceIDs runs the query and returns one page of resource
	// ids plus the total number of matching rows across all pages.
	// sortColumn may be empty, in which case rows are ordered by resource id.
	// A non-positive pageSize disables paging.
	MatchingResourceIDs(ctx context.Context, query, connection, sortColumn string, direction SortDirection, cursor, pageSize int) ([]uuid.UUID, int, error)

	// MatchingResourceCount returns the total number of matching rows
	// without fetching any of them.
	MatchingResourceCount(ctx context.Context, query, connection string) (int, error)

	// MatchingResourceScores runs a query projecting a match score and
	// returns one page of (id, score) pairs, best matches first.
	MatchingResourceScores(ctx context.Context, query, connection string, cursor, pageSize int) (map[uuid.UUID]float64, error)

	// AppendAuthorizationCriteria restricts the query to resources granted
	// to the identity. Admin identities get the query back unchanged.
	AppendAuthorizationCriteria(ctx context.Context, identity, query, connection string) (string, error)
}
