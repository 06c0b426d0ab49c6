package resquery

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/resgraph/resquery-go/auth"
	"github.com/resgraph/resquery-go/catalog"
	"github.com/resgraph/resquery-go/exec"
	"github.com/resgraph/resquery-go/tree"
)

// Interpreter compiles search trees to SQL and dispatches them to the
// execution layer. It is stateless across calls and goroutine-safe; the
// trees passed in are single-use per call and must not be shared across
// concurrent searches.
type Interpreter struct {
	converter  *tree.Converter
	executor   exec.Executor
	auth       auth.Authenticator
	logger     *slog.Logger
	pageSize   int
	connection string
}

// New creates an interpreter from the config.
func New(cfg InterpreterConfig) (*Interpreter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	pageSize := cfg.MaxResultCount
	if pageSize == 0 {
		pageSize = defaultMaxResultCount
	}
	return &Interpreter{
		converter:  tree.NewConverter(cfg.Catalog),
		executor:   cfg.Executor,
		auth:       cfg.Auth,
		logger:     configLogger(&cfg),
		pageSize:   pageSize,
		connection: cfg.Catalog.Connection(),
	}, nil
}

// SortProperty names a catalog property to order results by.
type SortProperty struct {
	// Property is the property token resolved against the catalog.
	Property string

	// Direction orders the page. Defaults to ascending.
	Direction exec.SortDirection
}

// PropertyValue is one weighted-search criterion: a property token and the
// value searched for in it.
type PropertyValue struct {
	Property string
	Value    string
}

// Authenticate validates a bearer token and returns the identity it names,
// for callers that receive tokens rather than resolved identities.
func (i *Interpreter) Authenticate(ctx context.Context, token string) (string, error) {
	if i.auth == nil {
		return "", ErrUnauthorized
	}
	identity, err := i.auth.Authenticate(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return identity, nil
}

// Interpret compiles the tree and returns one page of matching resource ids
// plus the total match count, ordered by resource id.
func (i *Interpreter) Interpret(ctx context.Context, t tree.Node, identity string, cursor int) ([]uuid.UUID, int, error) {
	return i.InterpretSorted(ctx, t, nil, "", identity, cursor)
}

// InterpretSorted is Interpret with an explicit sort property. The property
// is resolved against the catalog for resourceTypeFullName and its column is
// threaded into every emitted select so the outer ordering can reference it.
// A nil sort (or one naming the id column) degrades to the plain form.
func (i *Interpreter) InterpretSorted(ctx context.Context, t tree.Node, sort *SortProperty, resourceTypeFullName, identity string, cursor int) ([]uuid.UUID, int, error) {
	sortColumn := ""
	direction := exec.Ascending

	if sort != nil && sort.Property != "" && !strings.EqualFold(sort.Property, "id") {
		col, err := i.converter.Catalog.PropertyToken(ctx, sort.Property, resourceTypeFullName)
		if err != nil {
			return nil, 0, err
		}
		if col == nil {
			return nil, 0, &tree.SearchError{Message: fmt.Sprintf("invalid sort property %q for resource type %q", sort.Property, resourceTypeFullName)}
		}
		sortColumn = col.ColumnName
		if sort.Direction == exec.Descending {
			direction = exec.Descending
		}
	}

	query, err := i.converter.ConvertWithClause(ctx, t, sortColumn, false)
	if err != nil {
		return nil, 0, err
	}
	if query == "" {
		return nil, 0, nil
	}

	query, err = i.authorize(ctx, identity, query)
	if err != nil {
		return nil, 0, err
	}

	i.logger.DebugContext(ctx, "dispatching search",
		slog.Int("query_len", len(query)), slog.String("sort_column", sortColumn))
	return i.executor.MatchingResourceIDs(ctx, query, i.connection, sortColumn, direction, cursor, i.pageSize)
}

// InterpretSimilarity compiles the tree with a match-percentage projection
// built from the criteria and returns one page of (id, score) pairs plus the
// total match count. Scores are a heuristic: for string properties the
// numerator credits the length of the supplied search value, for other
// properties the stored value's length; the denominator is the stored length
// of every criterion column.
func (i *Interpreter) InterpretSimilarity(ctx context.Context, t tree.Node, resourceTypeFullName string, criteria []PropertyValue, identity string, cursor int) (map[uuid.UUID]float64, int, error) {
	formula, err := i.matchFormula(ctx, resourceTypeFullName, criteria)
	if err != nil {
		return nil, 0, err
	}

	query, err := i.converter.ConvertWithClause(ctx, t, formula, true)
	if err != nil {
		return nil, 0, err
	}
	if query == "" {
		return nil, 0, nil
	}

	query, err = i.authorize(ctx, identity, query)
	if err != nil {
		return nil, 0, err
	}

	// Count first: a zero total skips the score round-trip entirely.
	total, err := i.executor.MatchingResourceCount(ctx, query, i.connection)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return map[uuid.UUID]float64{}, 0, nil
	}

	i.logger.DebugContext(ctx, "dispatching weighted search",
		slog.Int("query_len", len(query)), slog.Int("total", total))
	scores, err := i.executor.MatchingResourceScores(ctx, query, i.connection, cursor, i.pageSize)
	if err != nil {
		return nil, 0, err
	}
	return scores, total, nil
}

// matchFormula builds the match-percentage scalar expression. String
// criteria contribute the literal length of the search value to the
// numerator; every criterion column contributes its stored length to the
// denominator. The asymmetry is deliberate and preserved.
func (i *Interpreter) matchFormula(ctx context.Context, resourceTypeFullName string, criteria []PropertyValue) (string, error) {
	if len(criteria) == 0 {
		return "", &tree.SearchError{Message: "at least one similarity criterion is required"}
	}

	numerator := make([]string, 0, len(criteria))
	denominator := make([]string, 0, len(criteria))
	for _, pv := range criteria {
		col, err := i.converter.Catalog.PropertyToken(ctx, pv.Property, resourceTypeFullName)
		if err != nil {
			return "", err
		}
		if col == nil {
			return "", &tree.SearchError{Message: fmt.Sprintf("invalid property token %q for resource type %q", pv.Property, resourceTypeFullName)}
		}

		length := "LENGTH(" + tree.QuoteIdentifier(col.ColumnName) + ")"
		if col.DataType == catalog.String {
			numerator = append(numerator, strconv.Itoa(len(pv.Value)))
		} else {
			numerator = append(numerator, length)
		}
		denominator = append(denominator, length)
	}

	return "100.0 * (" + strings.Join(numerator, " + ") + ") / (" +
		strings.Join(denominator, " + ") + `) AS "MatchScore"`, nil
}

func (i *Interpreter) authorize(ctx context.Context, identity, query string) (string, error) {
	if identity == "" {
		return query, nil
	}
	return i.executor.AppendAuthorizationCriteria(ctx, identity, query, i.connection)
}
