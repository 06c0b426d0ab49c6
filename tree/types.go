package tree

import "github.com/resgraph/resquery-go/catalog"

// NodeType identifies the variant of a search-tree node. It never changes
// after construction and determines which conversion behavior is dispatched.
type NodeType string

const (
	TypeAllResources   NodeType = "ALL_RESOURCES"
	TypeComparison     NodeType = "COMPARISON"
	TypeWordEqual      NodeType = "WORD_EQUAL"
	TypeWordStartsWith NodeType = "WORD_STARTS_WITH"
	TypeAnd            NodeType = "AND"
	TypeNot            NodeType = "NOT"
	TypePredicateJoin  NodeType = "PREDICATE_JOIN"
	TypePredicateRef   NodeType = "PREDICATE_REF"
)

// TokenType identifies how an expression token resolves against the catalog.
type TokenType string

const (
	// SpecialToken expands to several related columns combined with OR.
	SpecialToken TokenType = "SPECIAL"

	// PropertyToken resolves to exactly one column.
	PropertyToken TokenType = "PROPERTY"

	// ImplicitPropertiesToken resolves to every full-text-indexed string
	// column of the resource type. Requires a string value.
	ImplicitPropertiesToken TokenType = "IMPLICIT_PROPERTIES"
)

// Operator is a comparison operator. Only the listed values are valid.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
)

// valid reports whether the operator is in the allowed set.
func (o Operator) valid() bool {
	switch o {
	case OpEqual, OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual:
		return true
	}
	return false
}

// Node is the interface implemented by all search-tree node types.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the converter.
type Node interface {
	// Type returns the node's variant identity.
	Type() NodeType

	// nodeMarker is a marker method to prevent external implementation.
	nodeMarker()
}

// ResourceNode is a Node whose fragment selects ids from a type-filtered
// resource universe: every variant except PredicateRef. It types the left
// child of Not, which subtracts from such a universe.
type ResourceNode interface {
	Node
	resourceNode()
}

// AllResources represents every instance of a resource type. It is the base
// predicate other expression nodes narrow.
type AllResources struct {
	// ResourceTypeFullName names the resource type. REQUIRED.
	ResourceTypeFullName string
}

func (*AllResources) Type() NodeType { return TypeAllResources }
func (AllResources) nodeMarker()     {}
func (AllResources) resourceNode()   {}

// Expression carries the token/value/type fields shared by comparison and
// contains nodes. It is not a convertible node on its own.
type Expression struct {
	AllResources

	// TokenType selects the catalog resolution strategy for Token.
	TokenType TokenType

	// Token is the search keyword. Required unless TokenType is
	// ImplicitPropertiesToken.
	Token string

	// Value is the literal being searched for. It must validate against
	// DataType before any SQL is emitted.
	Value string

	// DataType is the value's declared type.
	DataType catalog.DataType
}

// Comparison constrains resolved columns with a relational operator.
// DateTime comparisons are rewritten over day boundaries; see Converter.
type Comparison struct {
	Expression
	Operator Operator
}

func (*Comparison) Type() NodeType { return TypeComparison }

// WordEqual matches a whole word exactly, via the full-text index when the
// column has one and a LIKE pattern otherwise.
type WordEqual struct {
	Expression
}

func (*WordEqual) Type() NodeType { return TypeWordEqual }

// WordStartsWith matches a word prefix, via the full-text index when the
// column has one and a LIKE pattern with a suffix wildcard otherwise.
type WordStartsWith struct {
	Expression
}

func (*WordStartsWith) Type() NodeType { return TypeWordStartsWith }

// And intersects its children: a resource id must satisfy both.
type And struct {
	Left  Node
	Right Node
}

func (*And) Type() NodeType { return TypeAnd }
func (*And) nodeMarker()    {}
func (*And) resourceNode()  {}

// Not subtracts the right child's ids from the left child's. The left child
// operates over a type-filtered universe, so it is a ResourceNode rather
// than an arbitrary Node.
type Not struct {
	Left  ResourceNode
	Right Node
}

func (*Not) Type() NodeType { return TypeNot }
func (*Not) nodeMarker()    {}
func (*Not) resourceNode()  {}

// PredicateJoin constrains resources by a relationship traversal: the left
// predicate names the relationship, the right child constrains the resources
// on the far side. The join direction comes from the catalog.
type PredicateJoin struct {
	AllResources
	Left  *PredicateRef
	Right Node
}

func (*PredicateJoin) Type() NodeType { return TypePredicateJoin }

// PredicateRef is a leaf naming a relationship by its catalog token.
type PredicateRef struct {
	Token string
}

func (*PredicateRef) Type() NodeType { return TypePredicateRef }
func (*PredicateRef) nodeMarker()    {}
