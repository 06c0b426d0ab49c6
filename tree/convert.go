package tree

import (
	"context"
	"strings"

	"github.com/resgraph/resquery-go/catalog"
	"github.com/resgraph/resquery-go/dates"
)

// Converter converts a search tree to a SQL query selecting resource ids.
//
// An empty result with a nil error means the tree contributes no constraint
// (for example, a token that resolves to zero columns); callers must treat
// that as "matches nothing" rather than as an error.
type Converter struct {
	// Catalog resolves search tokens. REQUIRED.
	Catalog catalog.Catalog
}

// NewConverter creates a converter over the given catalog.
// A nil catalog is a programming error.
func NewConverter(cat catalog.Catalog) *Converter {
	if cat == nil {
		panic("tree: nil catalog")
	}
	return &Converter{Catalog: cat}
}

// extraClause is an optional clause added to every emitted projection. For a
// sort key the clause is a column name the converter quotes; for a similarity
// score it is a complete scalar expression inserted verbatim.
type extraClause struct {
	clause     string
	similarity bool
}

func (e *extraClause) projection() string {
	if e == nil {
		return ""
	}
	if e.similarity {
		return ", " + e.clause
	}
	return ", " + QuoteIdentifier(e.clause)
}

// Convert converts the tree rooted at n to a complete query string.
func (c *Converter) Convert(ctx context.Context, n Node) (string, error) {
	return c.convert(ctx, n, nil)
}

// ConvertWithClause converts the tree with one extra projected clause
// threaded to every emitted SELECT. When similarity is false the clause is a
// column name (quoted by the converter) so a later ORDER BY can reference
// it; when similarity is true it is a scalar expression inserted verbatim.
// An empty clause is equivalent to Convert.
func (c *Converter) ConvertWithClause(ctx context.Context, n Node, clause string, similarity bool) (string, error) {
	if clause == "" {
		return c.convert(ctx, n, nil)
	}
	return c.convert(ctx, n, &extraClause{clause: clause, similarity: similarity})
}

func (c *Converter) convert(ctx context.Context, n Node, extra *extraClause) (string, error) {
	if n == nil {
		return "", searchErrorf("search tree is nil")
	}

	switch node := n.(type) {
	case *AllResources:
		return c.convertAllResources(ctx, node, extra)
	case *Comparison:
		return c.convertComparison(ctx, node, extra)
	case *WordEqual:
		return c.convertContains(ctx, &node.Expression, false, extra)
	case *WordStartsWith:
		return c.convertContains(ctx, &node.Expression, true, extra)
	case *And:
		left, err := c.convert(ctx, node.Left, extra)
		if err != nil {
			return "", err
		}
		right, err := c.convert(ctx, node.Right, extra)
		if err != nil {
			return "", err
		}
		return joinQueries(left, opIntersect, right), nil
	case *Not:
		left, err := c.convert(ctx, node.Left, extra)
		if err != nil {
			return "", err
		}
		right, err := c.convert(ctx, node.Right, extra)
		if err != nil {
			return "", err
		}
		return joinQueries(left, opExcept, right), nil
	case *PredicateJoin:
		return c.convertPredicateJoin(ctx, node, extra)
	case *PredicateRef:
		res, err := c.resolvePredicate(ctx, node)
		if err != nil {
			return "", err
		}
		return res.filter, nil
	default:
		return "", searchErrorf("unsupported node type %q", n.Type())
	}
}

// typeFilter resolves the type-restriction predicate for a resource type.
// An unknown type is a search error, not a silent empty fragment.
func (c *Converter) typeFilter(ctx context.Context, resourceTypeFullName string) (string, error) {
	if resourceTypeFullName == "" {
		return "", searchErrorf("a resource type is required")
	}
	filter, err := c.Catalog.TypeFilter(ctx, resourceTypeFullName)
	if err != nil {
		return "", err
	}
	if filter == "" {
		return "", searchErrorf("invalid resource type %q", resourceTypeFullName)
	}
	return filter, nil
}

func (c *Converter) convertAllResources(ctx context.Context, n *AllResources, extra *extraClause) (string, error) {
	filter, err := c.typeFilter(ctx, n.ResourceTypeFullName)
	if err != nil {
		return "", err
	}
	return selectResources(extra.projection(), filter), nil
}

func (c *Converter) convertComparison(ctx context.Context, n *Comparison, extra *extraClause) (string, error) {
	// Operator check comes first: an invalid operator must fail before any
	// catalog lookup or SQL construction.
	if !n.Operator.valid() {
		return "", searchErrorf("invalid comparison operator %q", n.Operator)
	}
	if err := validateExpression(&n.Expression); err != nil {
		return "", err
	}

	cols, err := c.resolveColumns(ctx, &n.Expression)
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", nil
	}

	preds := make([]string, 0, len(cols))
	for _, col := range cols {
		preds = append(preds, comparisonPredicate(col.ColumnName, n.Operator, n.Value, n.DataType))
	}
	return c.wrapPredicates(ctx, &n.Expression, preds, extra)
}

// comparisonPredicate emits one column predicate. DateTime values are
// compared as half-open day intervals so a stored time-of-day component
// never leaks into date equality.
func comparisonPredicate(column string, op Operator, value string, dt catalog.DataType) string {
	ident := QuoteIdentifier(column)
	if dt != catalog.DateTime {
		return ident + " " + string(op) + " " + literal(value, dt)
	}

	d, _ := dates.Parse(value) // validated upstream
	switch op {
	case OpEqual:
		return "(" + ident + " >= " + QuoteLiteral(d.Start) + " AND " + ident + " < " + QuoteLiteral(d.NextDay) + ")"
	case OpGreater:
		return ident + " >= " + QuoteLiteral(d.NextDay)
	case OpGreaterOrEqual:
		return ident + " >= " + QuoteLiteral(d.Start)
	case OpLess:
		return ident + " < " + QuoteLiteral(d.Start)
	default: // OpLessOrEqual
		return ident + " < " + QuoteLiteral(d.NextDay)
	}
}

func (c *Converter) convertContains(ctx context.Context, e *Expression, prefix bool, extra *extraClause) (string, error) {
	if err := validateExpression(e); err != nil {
		return "", err
	}

	cols, err := c.resolveColumns(ctx, e)
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", nil
	}

	preds := make([]string, 0, len(cols))
	for _, col := range cols {
		preds = append(preds, containsPredicate(col, e.Value, prefix))
	}
	return c.wrapPredicates(ctx, e, preds, extra)
}

// containsPredicate matches one column against a word, using the engine's
// full-text contains predicate when the column is indexed and a LIKE pattern
// otherwise.
func containsPredicate(col catalog.ColumnRef, value string, prefix bool) string {
	ident := QuoteIdentifier(col.ColumnName)
	if col.IsFullTextIndexed {
		term := EscapeContains(value)
		if prefix {
			term += "*"
		}
		return "CONTAINS(" + ident + ", '\"" + term + "\"')"
	}

	pattern := EscapeLike(value)
	if prefix {
		pattern += "%"
	}
	return ident + " LIKE " + QuoteLiteral(pattern) + ` ESCAPE '\'`
}

// wrapPredicates OR-combines per-column predicates, appends the type filter
// and wraps the result in the base select template.
func (c *Converter) wrapPredicates(ctx context.Context, e *Expression, preds []string, extra *extraClause) (string, error) {
	filter, err := c.typeFilter(ctx, e.ResourceTypeFullName)
	if err != nil {
		return "", err
	}

	where := preds[0]
	if len(preds) > 1 {
		where = "(" + strings.Join(preds, " OR ") + ")"
	}
	return selectResources(extra.projection(), where+" AND "+filter), nil
}

// resolveColumns maps an expression token to physical columns. A special or
// property token that resolves to nothing is a search error; an implicit
// properties token legitimately resolves to zero columns, collapsing the
// node's contribution to an empty fragment.
func (c *Converter) resolveColumns(ctx context.Context, e *Expression) ([]catalog.ColumnRef, error) {
	switch e.TokenType {
	case SpecialToken:
		st, err := c.Catalog.SpecialToken(ctx, e.Token, e.ResourceTypeFullName)
		if err != nil {
			return nil, err
		}
		if st == nil || len(st.Properties) == 0 {
			return nil, searchErrorf("invalid special token %q for resource type %q", e.Token, e.ResourceTypeFullName)
		}
		return st.Properties, nil
	case PropertyToken:
		col, err := c.Catalog.PropertyToken(ctx, e.Token, e.ResourceTypeFullName)
		if err != nil {
			return nil, err
		}
		if col == nil {
			return nil, searchErrorf("invalid property token %q for resource type %q", e.Token, e.ResourceTypeFullName)
		}
		return []catalog.ColumnRef{*col}, nil
	default: // ImplicitPropertiesToken, validated upstream
		return c.Catalog.ImplicitProperties(ctx, e.ResourceTypeFullName)
	}
}

// predicateResult carries a resolved relationship filter together with its
// traversal direction. Returning the direction alongside the fragment keeps
// resolution a single pass; the parent join never reads direction state that
// has not been computed yet.
type predicateResult struct {
	filter  string
	reverse bool
}

func (c *Converter) resolvePredicate(ctx context.Context, ref *PredicateRef) (predicateResult, error) {
	if ref == nil || ref.Token == "" {
		return predicateResult{}, searchErrorf("a predicate token is required")
	}

	infos, err := c.Catalog.PredicateToken(ctx, ref.Token)
	if err != nil {
		return predicateResult{}, err
	}
	if len(infos) == 0 {
		return predicateResult{}, searchErrorf("invalid predicate token %q", ref.Token)
	}

	parts := make([]string, 0, len(infos))
	for _, info := range infos {
		parts = append(parts, `"PredicateName" = `+QuoteLiteral(info.PredicateName))
	}

	// Entries for one token are assumed to agree on direction; the first
	// entry decides.
	return predicateResult{
		filter:  strings.Join(parts, " OR "),
		reverse: infos[0].ReverseRelation,
	}, nil
}

func (c *Converter) convertPredicateJoin(ctx context.Context, n *PredicateJoin, extra *extraClause) (string, error) {
	res, err := c.resolvePredicate(ctx, n.Left)
	if err != nil {
		return "", err
	}

	// The right fragment feeds an IN subquery, so it is always converted
	// without the extra clause; only the outer select carries it.
	right, err := c.convert(ctx, n.Right, nil)
	if err != nil {
		return "", err
	}
	if right == "" {
		// No meaningful relationship join against nothing.
		return "", nil
	}

	filter, err := c.typeFilter(ctx, n.ResourceTypeFullName)
	if err != nil {
		return "", err
	}
	return selectRelated(extra.projection(), res.filter, right, filter, res.reverse), nil
}
