package catalog

import (
	"context"
	"testing"
)

func TestMulti(t *testing.T) {
	first := NewStaticCatalog("first-conn")
	first.AddResourceType("Model.Person", "")
	first.AddProperty("Model.Person", "name", ColumnRef{ColumnName: "Name", DataType: String, IsFullTextIndexed: true})
	first.AddPredicate("knows", PredicateInfo{PredicateName: "Knows"})

	second := NewStaticCatalog("second-conn")
	second.AddResourceType("Model.Person", "")
	second.AddProperty("Model.Person", "name", ColumnRef{ColumnName: "ShadowedName", DataType: String})
	second.AddProperty("Model.Person", "email", ColumnRef{ColumnName: "Email", DataType: String})
	second.AddResourceType("Model.Document", "")
	second.AddPredicate("knows", PredicateInfo{PredicateName: "WorksWith"})

	m := NewMulti(first, second)
	ctx := context.Background()

	t.Run("first resolution wins", func(t *testing.T) {
		col, err := m.PropertyToken(ctx, "name", "Model.Person")
		if err != nil {
			t.Fatalf("PropertyToken: %v", err)
		}
		if col == nil || col.ColumnName != "Name" {
			t.Errorf("col = %+v, want Name from first catalog", col)
		}
	})

	t.Run("falls through to later catalogs", func(t *testing.T) {
		col, err := m.PropertyToken(ctx, "email", "Model.Person")
		if err != nil {
			t.Fatalf("PropertyToken: %v", err)
		}
		if col == nil || col.ColumnName != "Email" {
			t.Errorf("col = %+v", col)
		}

		filter, err := m.TypeFilter(ctx, "Model.Document")
		if err != nil {
			t.Fatalf("TypeFilter: %v", err)
		}
		if filter == "" {
			t.Error("expected type filter from second catalog")
		}
	})

	t.Run("predicates concatenate", func(t *testing.T) {
		infos, err := m.PredicateToken(ctx, "knows")
		if err != nil {
			t.Fatalf("PredicateToken: %v", err)
		}
		if len(infos) != 2 {
			t.Errorf("infos = %+v", infos)
		}
	})

	t.Run("unknown stays unknown", func(t *testing.T) {
		col, err := m.PropertyToken(ctx, "nope", "Model.Person")
		if err != nil {
			t.Fatalf("PropertyToken: %v", err)
		}
		if col != nil {
			t.Errorf("col = %+v, want nil", col)
		}
	})

	t.Run("connection comes from the first catalog", func(t *testing.T) {
		if m.Connection() != "first-conn" {
			t.Errorf("connection = %q", m.Connection())
		}
	})
}

func TestNewMultiEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewMulti()
}
