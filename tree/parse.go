package tree

import (
	"encoding/json"

	"github.com/resgraph/resquery-go/catalog"
	"github.com/resgraph/resquery-go/internal/msgpack"
)

// wireNode is the serialized shape of a search-tree node. One struct covers
// every variant; decoding validates that the fields present match the node
// type.
type wireNode struct {
	NodeType     NodeType         `json:"nodeType" msgpack:"nodeType"`
	ResourceType string           `json:"resourceType,omitempty" msgpack:"resourceType,omitempty"`
	TokenType    TokenType        `json:"tokenType,omitempty" msgpack:"tokenType,omitempty"`
	Token        string           `json:"token,omitempty" msgpack:"token,omitempty"`
	Value        string           `json:"value,omitempty" msgpack:"value,omitempty"`
	DataType     catalog.DataType `json:"dataType,omitempty" msgpack:"dataType,omitempty"`
	Operator     Operator         `json:"operator,omitempty" msgpack:"operator,omitempty"`
	Predicate    string           `json:"predicate,omitempty" msgpack:"predicate,omitempty"`
	Left         *wireNode        `json:"left,omitempty" msgpack:"left,omitempty"`
	Right        *wireNode        `json:"right,omitempty" msgpack:"right,omitempty"`
}

// ParseJSON decodes a search tree from its JSON wire form.
func ParseJSON(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, searchErrorf("malformed search tree: %v", err)
	}
	return buildNode(&w)
}

// ParseMsgpack decodes a search tree from its msgpack wire form.
func ParseMsgpack(data []byte) (Node, error) {
	var w wireNode
	if err := msgpack.Decode(data, &w); err != nil {
		return nil, searchErrorf("malformed search tree: %v", err)
	}
	return buildNode(&w)
}

// EncodeJSON encodes a search tree to its JSON wire form.
func EncodeJSON(n Node) ([]byte, error) {
	w, err := wireFromNode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// EncodeMsgpack encodes a search tree to its msgpack wire form.
func EncodeMsgpack(n Node) ([]byte, error) {
	w, err := wireFromNode(n)
	if err != nil {
		return nil, err
	}
	return msgpack.Encode(w)
}

func buildNode(w *wireNode) (Node, error) {
	if w == nil {
		return nil, searchErrorf("search tree is nil")
	}

	switch w.NodeType {
	case TypeAllResources:
		return &AllResources{ResourceTypeFullName: w.ResourceType}, nil

	case TypeComparison:
		return &Comparison{Expression: w.expression(), Operator: w.Operator}, nil

	case TypeWordEqual:
		return &WordEqual{Expression: w.expression()}, nil

	case TypeWordStartsWith:
		return &WordStartsWith{Expression: w.expression()}, nil

	case TypeAnd:
		left, right, err := w.children()
		if err != nil {
			return nil, err
		}
		return &And{Left: left, Right: right}, nil

	case TypeNot:
		left, right, err := w.children()
		if err != nil {
			return nil, err
		}
		rn, ok := left.(ResourceNode)
		if !ok {
			return nil, searchErrorf("node type %q cannot be negated from", left.Type())
		}
		return &Not{Left: rn, Right: right}, nil

	case TypePredicateJoin:
		if w.Left == nil || w.Right == nil {
			return nil, searchErrorf("node type %q requires two children", w.NodeType)
		}
		if w.Left.NodeType != TypePredicateRef {
			return nil, searchErrorf("relationship join requires a predicate on the left, got %q", w.Left.NodeType)
		}
		right, err := buildNode(w.Right)
		if err != nil {
			return nil, err
		}
		return &PredicateJoin{
			AllResources: AllResources{ResourceTypeFullName: w.ResourceType},
			Left:         &PredicateRef{Token: w.Left.Predicate},
			Right:        right,
		}, nil

	case TypePredicateRef:
		return &PredicateRef{Token: w.Predicate}, nil

	default:
		return nil, searchErrorf("unsupported node type %q", w.NodeType)
	}
}

func (w *wireNode) expression() Expression {
	return Expression{
		AllResources: AllResources{ResourceTypeFullName: w.ResourceType},
		TokenType:    w.TokenType,
		Token:        w.Token,
		Value:        w.Value,
		DataType:     w.DataType,
	}
}

func (w *wireNode) children() (Node, Node, error) {
	if w.Left == nil || w.Right == nil {
		return nil, nil, searchErrorf("node type %q requires two children", w.NodeType)
	}
	left, err := buildNode(w.Left)
	if err != nil {
		return nil, nil, err
	}
	right, err := buildNode(w.Right)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func wireFromNode(n Node) (*wireNode, error) {
	if n == nil {
		return nil, searchErrorf("search tree is nil")
	}

	switch node := n.(type) {
	case *AllResources:
		return &wireNode{NodeType: TypeAllResources, ResourceType: node.ResourceTypeFullName}, nil

	case *Comparison:
		w := wireFromExpression(&node.Expression, TypeComparison)
		w.Operator = node.Operator
		return w, nil

	case *WordEqual:
		return wireFromExpression(&node.Expression, TypeWordEqual), nil

	case *WordStartsWith:
		return wireFromExpression(&node.Expression, TypeWordStartsWith), nil

	case *And:
		left, err := wireFromNode(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := wireFromNode(node.Right)
		if err != nil {
			return nil, err
		}
		return &wireNode{NodeType: TypeAnd, Left: left, Right: right}, nil

	case *Not:
		left, err := wireFromNode(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := wireFromNode(node.Right)
		if err != nil {
			return nil, err
		}
		return &wireNode{NodeType: TypeNot, Left: left, Right: right}, nil

	case *PredicateJoin:
		right, err := wireFromNode(node.Right)
		if err != nil {
			return nil, err
		}
		if node.Left == nil {
			return nil, searchErrorf("a predicate token is required")
		}
		return &wireNode{
			NodeType:     TypePredicateJoin,
			ResourceType: node.ResourceTypeFullName,
			Left:         &wireNode{NodeType: TypePredicateRef, Predicate: node.Left.Token},
			Right:        right,
		}, nil

	case *PredicateRef:
		return &wireNode{NodeType: TypePredicateRef, Predicate: node.Token}, nil

	default:
		return nil, searchErrorf("unsupported node type %q", n.Type())
	}
}

func wireFromExpression(e *Expression, t NodeType) *wireNode {
	return &wireNode{
		NodeType:     t,
		ResourceType: e.ResourceTypeFullName,
		TokenType:    e.TokenType,
		Token:        e.Token,
		Value:        e.Value,
		DataType:     e.DataType,
	}
}
