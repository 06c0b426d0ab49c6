// Package resquery compiles typed search-expression trees into SQL queries
// over a schema-driven resource store and dispatches them for execution.
//
// The resquery package provides:
//   - A search-tree model (package tree) with comparison, word-match,
//     boolean-combination, and relationship-join nodes
//   - Token resolution against a metadata catalog (package catalog) mapping
//     search keywords to physical columns and relationships
//   - An Interpreter running plain, sorted, and weighted similarity searches
//   - Authorization filtering per authenticated identity (package auth)
//
// # Quick Start
//
// Build a catalog, an interpreter, and run a search:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/jmoiron/sqlx"
//	    _ "github.com/duckdb/duckdb-go/v2"
//
//	    "github.com/resgraph/resquery-go"
//	    "github.com/resgraph/resquery-go/catalog"
//	    "github.com/resgraph/resquery-go/exec"
//	    "github.com/resgraph/resquery-go/tree"
//	)
//
//	func main() {
//	    cat, _ := resquery.NewCatalogBuilder("main").
//	        ResourceType("Model.Publication", "").
//	            Property("title", catalog.ColumnRef{ColumnName: "Title", DataType: catalog.String}).
//	            Property("year", catalog.ColumnRef{ColumnName: "Year", DataType: catalog.Int32}).
//	        Build()
//
//	    db, _ := sqlx.Connect("duckdb", "store.db")
//	    interp, _ := resquery.New(resquery.InterpreterConfig{
//	        Catalog:  cat,
//	        Executor: exec.NewDB(db, exec.DBOptions{}),
//	    })
//
//	    query := &tree.Comparison{
//	        Expression: tree.Expression{
//	            AllResources: tree.AllResources{ResourceTypeFullName: "Model.Publication"},
//	            TokenType:    tree.PropertyToken,
//	            Token:        "year",
//	            Value:        "2008",
//	            DataType:     catalog.Int32,
//	        },
//	        Operator: tree.OpGreaterOrEqual,
//	    }
//	    ids, total, err := interp.Interpret(context.Background(), query, "", 0)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Printf("%d of %d matching resources: %v", len(ids), total, ids)
//	}
//
// # Architecture
//
// The package follows an interface-based design:
//
//   - tree.Node: closed set of search-tree variants converted recursively
//   - catalog.Catalog: token resolution (static, DB-backed, or federated)
//   - exec.Executor: query dispatch, paging, and authorization filtering
//   - auth.Authenticator: identity validation and admin bypass
//
// Users can either build static catalogs with the fluent CatalogBuilder or
// implement catalog.Catalog for live metadata.
//
// # Errors
//
// Invalid trees, unknown tokens, bad operators, and mistyped values surface
// as *tree.SearchError (match with tree.IsSearchError); these are caller
// errors and are never retried. Infrastructure faults from the catalog or
// the execution layer propagate unchanged.
//
// # Concurrency
//
// The interpreter is stateless and goroutine-safe. A search tree is owned by
// one conversion pass; do not share a tree across concurrent searches.
package resquery
