package core

import (
	"reflect"
	"testing"
)

func TestOAuthFlowRegistry_RegisterAndGet(t *testing.T) {
	registry := NewOAuthFlowRegistry()
	flow := &stubOAuthFlow{consentURL: "https://provider.example.com/auth"}
	if err := registry.Register(" def-1 ", flow); err != nil {
		t.Fatalf("register flow: %v", err)
	}
	got, ok := registry.Get("def-1")
	if !ok || got != flow {
		t.Fatalf("expected registered flow to resolve")
	}
	if _, ok := registry.Get("def-2"); ok {
		t.Fatalf("expected unknown definition to miss")
	}
}

func TestOAuthFlowRegistry_RejectsInvalidRegistrations(t *testing.T) {
	registry := NewOAuthFlowRegistry()
	if err := registry.Register("def-1", nil); err == nil {
		t.Fatalf("expected nil flow to be rejected")
	}
	if err := registry.Register(" ", &stubOAuthFlow{}); err == nil {
		t.Fatalf("expected empty definition id to be rejected")
	}
	if err := registry.Register("def-1", &stubOAuthFlow{}); err != nil {
		t.Fatalf("register flow: %v", err)
	}
	if err := registry.Register("def-1", &stubOAuthFlow{}); err == nil {
		t.Fatalf("expected duplicate registration to be rejected")
	}
}

func TestOAuthFlowRegistry_DefinitionIDsSorted(t *testing.T) {
	registry := NewOAuthFlowRegistry()
	for _, id := range []string{"zeta", "alpha", "beta"} {
		if err := registry.Register(id, &stubOAuthFlow{}); err != nil {
			t.Fatalf("register flow: %v", err)
		}
	}
	if got := registry.DefinitionIDs(); !reflect.DeepEqual([]string{"alpha", "beta", "zeta"}, got) {
		t.Fatalf("unexpected ordering %v", got)
	}
}
