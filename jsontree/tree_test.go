package jsontree

import (
	"reflect"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	original := map[string]any{
		"host": "db.internal",
		"tunnel": map[string]any{
			"port": 22,
			"keys": []any{"a", "b"},
		},
	}
	cloned, err := Clone(original)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if !reflect.DeepEqual(original, cloned) {
		t.Fatalf("expected clone to equal original, got %#v", cloned)
	}

	cloned["host"] = "changed"
	cloned["tunnel"].(map[string]any)["port"] = 2222
	cloned["tunnel"].(map[string]any)["keys"].([]any)[0] = "z"

	if original["host"] != "db.internal" {
		t.Fatalf("expected original host untouched, got %v", original["host"])
	}
	tunnel := original["tunnel"].(map[string]any)
	if tunnel["port"] != 22 {
		t.Fatalf("expected original nested port untouched, got %v", tunnel["port"])
	}
	if tunnel["keys"].([]any)[0] != "a" {
		t.Fatalf("expected original nested slice untouched")
	}
}

func TestCloneNilReturnsEmptyObject(t *testing.T) {
	cloned, err := Clone(nil)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if cloned == nil || len(cloned) != 0 {
		t.Fatalf("expected empty object, got %#v", cloned)
	}
}

func TestOverlayReplacesNestedValuesWholesale(t *testing.T) {
	base := map[string]any{
		"api_secret": "g",
		"x":          1,
		"api_client": map[string]any{"id": "global", "region": "eu"},
	}
	top := map[string]any{
		"api_secret": "w",
		"api_client": map[string]any{"id": "workspace"},
	}

	merged, err := Overlay(base, top)
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	expected := map[string]any{
		"api_secret": "w",
		"x":          1,
		"api_client": map[string]any{"id": "workspace"},
	}
	if !reflect.DeepEqual(expected, merged) {
		t.Fatalf("expected %#v, got %#v", expected, merged)
	}
	if base["api_secret"] != "g" {
		t.Fatalf("expected base to stay untouched")
	}
}

func TestSetAndKeys(t *testing.T) {
	tree := map[string]any{}
	if err := Set(tree, "b", 2); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Set(tree, "a", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Set(tree, " ", 3); err != nil {
		t.Fatalf("set blank key: %v", err)
	}
	if tree[" "] != 3 {
		t.Fatalf("expected blank key written verbatim, got %#v", tree)
	}
	if err := Set(nil, "a", 1); err == nil {
		t.Fatalf("expected nil object to be rejected")
	}
	if got := Keys(tree); !reflect.DeepEqual(got, []string{" ", "a", "b"}) {
		t.Fatalf("expected sorted keys, got %v", got)
	}
}
