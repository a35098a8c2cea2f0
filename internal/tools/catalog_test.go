package tools

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestBuildCatalog_Disjoint(t *testing.T) {
	math := newFakeBackend("math", "add", "subtract", "multiply")
	expense := newFakeBackend("expense", "add_expense", "list_expenses")

	cat, err := BuildCatalog(context.Background(), []Backend{math, expense}, CatalogOptions{})
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	if cat.Len() != 5 {
		t.Fatalf("expected 5 tools, got %d", cat.Len())
	}
	want := []string{"add", "add_expense", "list_expenses", "multiply", "subtract"}
	if got := cat.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	e, ok := cat.Resolve("add_expense")
	if !ok {
		t.Fatal("expected add_expense to resolve")
	}
	if e.Backend() != "expense" {
		t.Errorf("expected backend expense, got %q", e.Backend())
	}
	if _, ok := cat.Resolve("divide"); ok {
		t.Error("expected divide to be missing")
	}
}

func TestBuildCatalog_CollisionRejected(t *testing.T) {
	a := newFakeBackend("beta", "add")
	b := newFakeBackend("alpha", "add", "subtract")

	for _, order := range [][]Backend{{a, b}, {b, a}} {
		_, err := BuildCatalog(context.Background(), order, CatalogOptions{})
		var collision *CatalogCollisionError
		if !errors.As(err, &collision) {
			t.Fatalf("expected *CatalogCollisionError, got %v", err)
		}
		if collision.Tool != "add" || collision.First != "alpha" || collision.Second != "beta" {
			t.Errorf("unexpected collision %+v", collision)
		}
	}
}

func TestBuildCatalog_Namespace(t *testing.T) {
	a := newFakeBackend("math", "add")
	b := newFakeBackend("expense", "add")

	cat, err := BuildCatalog(context.Background(), []Backend{a, b}, CatalogOptions{Namespace: true})
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	want := []string{"expense_add", "math_add"}
	if got := cat.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	e, _ := cat.Resolve("math_add")
	if e.Descriptor.Name != "add" {
		t.Errorf("expected original name add, got %q", e.Descriptor.Name)
	}
}

func TestBuildCatalog_DiscoveryFailure(t *testing.T) {
	ok := newFakeBackend("math", "add")
	bad := newFakeBackend("expense")
	bad.listErr = errors.New("connection reset")

	if _, err := BuildCatalog(context.Background(), []Backend{ok, bad}, CatalogOptions{}); err == nil {
		t.Fatal("expected discovery failure to abort the build")
	}
}

func TestCatalog_ResolveCanonicalID(t *testing.T) {
	cat, err := BuildCatalog(context.Background(), []Backend{newFakeBackend("math", "add")}, CatalogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	e, ok := cat.Resolve("math:add")
	if !ok || e.Name() != "add" {
		t.Errorf("expected math:add to resolve to add, got %v %v", e, ok)
	}
	if _, ok := cat.Resolve("expense:add"); ok {
		t.Error("expected wrong backend id not to resolve")
	}
}

func TestCatalog_LookupDispatchesThroughTool(t *testing.T) {
	b := newFakeBackend("math", "add")
	b.handler = func(ctx context.Context, name string, args map[string]any) (string, error) {
		return "79", nil
	}
	cat, err := BuildCatalog(context.Background(), []Backend{b}, CatalogOptions{Namespace: true})
	if err != nil {
		t.Fatal(err)
	}

	tool, ok := cat.Lookup("math_add")
	if !ok {
		t.Fatal("expected math_add to resolve")
	}
	if tool.Name() != "math_add" || tool.Description() != "add on math" {
		t.Errorf("unexpected tool %q %q", tool.Name(), tool.Description())
	}
	out, err := tool.Execute(context.Background(), map[string]any{"a": 45.0, "b": 34.0})
	if err != nil || out != "79" {
		t.Fatalf("Execute = %q, %v", out, err)
	}
	if calls := b.recorded(); len(calls) != 1 || calls[0].Tool != "add" {
		t.Errorf("expected backend to receive the original name, got %+v", calls)
	}
	if _, ok := cat.Lookup("add"); ok {
		t.Error("namespaced catalog should not resolve the bare name")
	}
}

func TestCatalog_Definitions(t *testing.T) {
	cat, err := BuildCatalog(context.Background(), []Backend{newFakeBackend("math", "subtract", "add")}, CatalogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defs := cat.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	fn := defs[0]["function"].(map[string]any)
	if fn["name"] != "add" {
		t.Errorf("expected definitions sorted by name, first is %v", fn["name"])
	}
	params := fn["parameters"].(map[string]any)
	if params["type"] != "object" {
		t.Errorf("unexpected parameters %v", params)
	}
}
