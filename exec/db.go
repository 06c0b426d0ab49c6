package exec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/resgraph/resquery-go/auth"
	"github.com/resgraph/resquery-go/tree"
)

// scoreColumn is the alias similarity queries project their formula under.
const scoreColumn = `"MatchScore"`

// DB executes compiled queries on a SQL resource store through sqlx. The
// connection string carried by the catalog is ignored; the store is fixed at
// construction. Authorization filtering consults the configured
// Authenticator for admin bypass.
type DB struct {
	db     *sqlx.DB
	auth   auth.Authenticator
	logger *slog.Logger
}

// DBOptions configures a DB executor.
type DBOptions struct {
	// Auth decides which identities bypass authorization filtering. OPTIONAL.
	// Default: no identity is an admin.
	Auth auth.Authenticator

	// Logger for query dispatch diagnostics. OPTIONAL.
	// Default: slog.Default().
	Logger *slog.Logger
}

// NewDB creates an executor over an open sqlx database handle.
// A nil handle is a programming error.
func NewDB(db *sqlx.DB, opts DBOptions) *DB {
	if db == nil {
		panic("exec: nil database handle")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{db: db, auth: opts.Auth, logger: logger}
}

func (d *DB) MatchingResourceIDs(ctx context.Context, query, connection, sortColumn string, direction SortDirection, cursor, pageSize int) ([]uuid.UUID, int, error) {
	total, err := d.MatchingResourceCount(ctx, query, connection)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	if direction != Descending {
		direction = Ascending
	}
	orderBy := `"ResourceId"`
	if sortColumn != "" {
		orderBy = tree.QuoteIdentifier(sortColumn) + " " + string(direction) + `, "ResourceId"`
	}

	page := fmt.Sprintf(`SELECT "ResourceId" FROM (%s) AS "R" ORDER BY %s%s`,
		query, orderBy, limitClause(cursor, pageSize))
	d.logger.DebugContext(ctx, "fetching matching resource ids",
		slog.Int("query_len", len(page)), slog.Int("total", total))

	var raw []string
	if err := d.db.SelectContext(ctx, &raw, page); err != nil {
		return nil, 0, fmt.Errorf("exec: fetching resource ids: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, 0, fmt.Errorf("exec: resource id %q is not a uuid: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, total, nil
}

func (d *DB) MatchingResourceCount(ctx context.Context, query, connection string) (int, error) {
	var count int
	stmt := fmt.Sprintf(`SELECT COUNT(*) FROM (%s) AS "R"`, query)
	if err := d.db.GetContext(ctx, &count, stmt); err != nil {
		return 0, fmt.Errorf("exec: counting matching resources: %w", err)
	}
	return count, nil
}

func (d *DB) MatchingResourceScores(ctx context.Context, query, connection string, cursor, pageSize int) (map[uuid.UUID]float64, error) {
	page := fmt.Sprintf(`SELECT "ResourceId", %s FROM (%s) AS "R" ORDER BY %s DESC, "ResourceId"%s`,
		scoreColumn, query, scoreColumn, limitClause(cursor, pageSize))
	d.logger.DebugContext(ctx, "fetching match scores", slog.Int("query_len", len(page)))

	rows, err := d.db.QueryxContext(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("exec: fetching match scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[uuid.UUID]float64)
	for rows.Next() {
		var (
			raw   string
			score float64
		)
		if err := rows.Scan(&raw, &score); err != nil {
			return nil, fmt.Errorf("exec: scanning match score row: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("exec: resource id %q is not a uuid: %w", raw, err)
		}
		scores[id] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exec: reading match score rows: %w", err)
	}
	return scores, nil
}

// AppendAuthorizationCriteria wraps the query so only resources granted to
// the identity remain. The wrapper select preserves the query's projection,
// so sort columns and score clauses survive the filter.
func (d *DB) AppendAuthorizationCriteria(ctx context.Context, identity, query, connection string) (string, error) {
	if identity == "" {
		return query, nil
	}
	if d.auth != nil && d.auth.IsAdmin(ctx, identity) {
		return query, nil
	}
	return fmt.Sprintf(
		`SELECT * FROM (%s) AS "R" WHERE "ResourceId" IN (SELECT "ResourceId" FROM "ResourceGrant" WHERE "IdentityName" = %s)`,
		query, tree.QuoteLiteral(identity)), nil
}

func limitClause(cursor, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	if cursor < 0 {
		cursor = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, cursor)
}
