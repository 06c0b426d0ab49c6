package tree

import (
	"strings"
	"testing"

	"github.com/resgraph/resquery-go/catalog"
)

func sampleTree() Node {
	return &And{
		Left: &PredicateJoin{
			AllResources: AllResources{ResourceTypeFullName: "Model.Person"},
			Left:         &PredicateRef{Token: "owns"},
			Right:        &AllResources{ResourceTypeFullName: "Model.Document"},
		},
		Right: &Not{
			Left: &AllResources{ResourceTypeFullName: "Model.Person"},
			Right: &Comparison{
				Expression: Expression{
					AllResources: AllResources{ResourceTypeFullName: "Model.Person"},
					TokenType:    PropertyToken,
					Token:        "birthdate",
					Value:        "last month",
					DataType:     catalog.DateTime,
				},
				Operator: OpGreaterOrEqual,
			},
		},
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	data, err := EncodeJSON(sampleTree())
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	got, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	again, err := EncodeJSON(got)
	if err != nil {
		t.Fatalf("EncodeJSON after parse: %v", err)
	}
	if string(data) != string(again) {
		t.Errorf("round trip changed encoding:\n%s\n%s", data, again)
	}
}

func TestParseMsgpackRoundTrip(t *testing.T) {
	data, err := EncodeMsgpack(sampleTree())
	if err != nil {
		t.Fatalf("EncodeMsgpack: %v", err)
	}

	got, err := ParseMsgpack(data)
	if err != nil {
		t.Fatalf("ParseMsgpack: %v", err)
	}

	wantJSON, err := EncodeJSON(sampleTree())
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	gotJSON, err := EncodeJSON(got)
	if err != nil {
		t.Fatalf("EncodeJSON after parse: %v", err)
	}
	if string(wantJSON) != string(gotJSON) {
		t.Errorf("round trip changed the tree:\n%s\n%s", wantJSON, gotJSON)
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"nodeType": "COMPARISON",
		"resourceType": "Model.Person",
		"tokenType": "PROPERTY",
		"token": "age",
		"value": "42",
		"dataType": "INT32",
		"operator": ">="
	}`)

	n, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	cmp, ok := n.(*Comparison)
	if !ok {
		t.Fatalf("expected *Comparison, got %T", n)
	}
	if cmp.Operator != OpGreaterOrEqual {
		t.Errorf("operator = %q", cmp.Operator)
	}
	if cmp.Token != "age" || cmp.Value != "42" || cmp.DataType != catalog.Int32 {
		t.Errorf("unexpected expression fields: %+v", cmp.Expression)
	}
	if cmp.ResourceTypeFullName != "Model.Person" {
		t.Errorf("resource type = %q", cmp.ResourceTypeFullName)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{
			name: "malformed json",
			data: `{"nodeType":`,
			msg:  "malformed search tree",
		},
		{
			name: "unknown node type",
			data: `{"nodeType": "XOR"}`,
			msg:  "unsupported node type",
		},
		{
			name: "and missing a child",
			data: `{"nodeType": "AND", "left": {"nodeType": "ALL_RESOURCES", "resourceType": "T"}}`,
			msg:  "requires two children",
		},
		{
			name: "not with a predicate reference on the left",
			data: `{"nodeType": "NOT",
				"left": {"nodeType": "PREDICATE_REF", "predicate": "owns"},
				"right": {"nodeType": "ALL_RESOURCES", "resourceType": "T"}}`,
			msg: "cannot be negated from",
		},
		{
			name: "join without a predicate on the left",
			data: `{"nodeType": "PREDICATE_JOIN", "resourceType": "T",
				"left": {"nodeType": "ALL_RESOURCES", "resourceType": "T"},
				"right": {"nodeType": "ALL_RESOURCES", "resourceType": "T"}}`,
			msg: "requires a predicate on the left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsSearchError(err) {
				t.Errorf("expected a search error, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.msg)
			}
		})
	}
}
