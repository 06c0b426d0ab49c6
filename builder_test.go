package resquery

import (
	"context"
	"testing"

	"github.com/resgraph/resquery-go/catalog"
)

func TestCatalogBuilder(t *testing.T) {
	cat, err := NewCatalogBuilder("conn").
		ResourceType("Model.Resource", "").
		Property("title", catalog.ColumnRef{ColumnName: "Title", DataType: catalog.String, IsFullTextIndexed: true}).
		SpecialToken("anydate",
			catalog.ColumnRef{ColumnName: "CreatedOn", DataType: catalog.DateTime},
			catalog.ColumnRef{ColumnName: "ModifiedOn", DataType: catalog.DateTime}).
		ResourceType("Model.Publication", "Model.Resource").
		Property("year", catalog.ColumnRef{ColumnName: "Year", DataType: catalog.Int32}).
		Predicate("authorof", "AuthorOf", true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ctx := context.Background()

	t.Run("subtype inherits parent property", func(t *testing.T) {
		col, err := cat.PropertyToken(ctx, "title", "Model.Publication")
		if err != nil {
			t.Fatalf("PropertyToken: %v", err)
		}
		if col == nil || col.ColumnName != "Title" {
			t.Errorf("col = %+v", col)
		}
	})

	t.Run("subtype inherits special token", func(t *testing.T) {
		st, err := cat.SpecialToken(ctx, "AnyDate", "Model.Publication")
		if err != nil {
			t.Fatalf("SpecialToken: %v", err)
		}
		if st == nil || len(st.Properties) != 2 {
			t.Errorf("st = %+v", st)
		}
	})

	t.Run("type filter includes subtype closure", func(t *testing.T) {
		filter, err := cat.TypeFilter(ctx, "Model.Resource")
		if err != nil {
			t.Fatalf("TypeFilter: %v", err)
		}
		want := `"ResourceTypeFullName" IN ('Model.Publication', 'Model.Resource')`
		if filter != want {
			t.Errorf("filter = %s, want %s", filter, want)
		}
	})

	t.Run("predicate", func(t *testing.T) {
		infos, err := cat.PredicateToken(ctx, "AuthorOf")
		if err != nil {
			t.Fatalf("PredicateToken: %v", err)
		}
		if len(infos) != 1 || infos[0].PredicateName != "AuthorOf" || !infos[0].ReverseRelation {
			t.Errorf("infos = %+v", infos)
		}
	})

	t.Run("connection passes through", func(t *testing.T) {
		if cat.Connection() != "conn" {
			t.Errorf("connection = %q", cat.Connection())
		}
	})
}

func TestCatalogBuilderErrors(t *testing.T) {
	t.Run("empty resource type name", func(t *testing.T) {
		_, err := NewCatalogBuilder("c").ResourceType("", "").Build()
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("empty property token", func(t *testing.T) {
		_, err := NewCatalogBuilder("c").
			ResourceType("T", "").
			Property("", catalog.ColumnRef{ColumnName: "X"}).
			Build()
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("special token without columns", func(t *testing.T) {
		_, err := NewCatalogBuilder("c").
			ResourceType("T", "").
			SpecialToken("all").
			Build()
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("empty predicate", func(t *testing.T) {
		_, err := NewCatalogBuilder("c").Predicate("", "P", false).Build()
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("double build", func(t *testing.T) {
		b := NewCatalogBuilder("c")
		if _, err := b.Build(); err != nil {
			t.Fatalf("first Build: %v", err)
		}
		if _, err := b.Build(); err == nil {
			t.Error("expected error on second Build")
		}
	})
}
