package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-connectors/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

type stubDefinitionLookup struct {
	mu         sync.Mutex
	definition core.ConnectorDefinition
	getCalls   int
	getErr     error
}

func (s *stubDefinitionLookup) GetConnectorDefinition(
	_ context.Context,
	kind core.ConnectorKind,
	definitionID string,
) (core.ConnectorDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return core.ConnectorDefinition{}, s.getErr
	}
	if s.definition.ID != definitionID || s.definition.Kind != kind {
		return core.ConnectorDefinition{}, fmt.Errorf("%w: %s %s", core.ErrDefinitionNotFound, kind, definitionID)
	}
	return s.definition, nil
}

func (s *stubDefinitionLookup) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

func TestCachedDefinitionLookup_MissFetchThenHit(t *testing.T) {
	base := &stubDefinitionLookup{definition: core.ConnectorDefinition{
		ID:             "def-1",
		Kind:           core.ConnectorKindSource,
		Name:           "Postgres",
		DockerImageTag: "1.0.0",
	}}
	lookup, err := NewCachedDefinitionLookup(base, newTestDefinitionCacheService(t))
	if err != nil {
		t.Fatalf("new cached lookup: %v", err)
	}

	first, err := lookup.GetConnectorDefinition(context.Background(), core.ConnectorKindSource, "def-1")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if first.Name != "Postgres" {
		t.Fatalf("unexpected definition %+v", first)
	}
	if base.calls() != 1 {
		t.Fatalf("expected one base read, got %d", base.calls())
	}

	if _, err := lookup.GetConnectorDefinition(context.Background(), core.ConnectorKindSource, " def-1 "); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if base.calls() != 1 {
		t.Fatalf("expected trimmed id to hit cache, base calls=%d", base.calls())
	}
}

func TestCachedDefinitionLookup_InvalidateForcesRefetch(t *testing.T) {
	base := &stubDefinitionLookup{definition: core.ConnectorDefinition{
		ID:             "def-2",
		Kind:           core.ConnectorKindDestination,
		DockerImageTag: "1.0.0",
	}}
	lookup, err := NewCachedDefinitionLookup(base, newTestDefinitionCacheService(t))
	if err != nil {
		t.Fatalf("new cached lookup: %v", err)
	}
	ctx := context.Background()
	if _, err := lookup.GetConnectorDefinition(ctx, core.ConnectorKindDestination, "def-2"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	base.mu.Lock()
	base.definition.DockerImageTag = "2.0.0"
	base.mu.Unlock()

	if err := lookup.Invalidate(ctx, core.ConnectorKindDestination, "def-2"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	refreshed, err := lookup.GetConnectorDefinition(ctx, core.ConnectorKindDestination, "def-2")
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if base.calls() != 2 {
		t.Fatalf("expected second base read, got %d", base.calls())
	}
	if refreshed.Version() != "2.0.0" {
		t.Fatalf("expected refreshed version 2.0.0, got %q", refreshed.Version())
	}
}

func TestCachedDefinitionLookup_KindsDoNotShareEntries(t *testing.T) {
	base := &stubDefinitionLookup{definition: core.ConnectorDefinition{
		ID:   "shared",
		Kind: core.ConnectorKindSource,
	}}
	lookup, err := NewCachedDefinitionLookup(base, newTestDefinitionCacheService(t))
	if err != nil {
		t.Fatalf("new cached lookup: %v", err)
	}
	ctx := context.Background()
	if _, err := lookup.GetConnectorDefinition(ctx, core.ConnectorKindSource, "shared"); err != nil {
		t.Fatalf("source get: %v", err)
	}
	_, err = lookup.GetConnectorDefinition(ctx, core.ConnectorKindDestination, "shared")
	if !errors.Is(err, core.ErrDefinitionNotFound) {
		t.Fatalf("expected destination miss to surface not found, got %v", err)
	}
}

func TestCachedDefinitionLookup_ErrorsAreNotCached(t *testing.T) {
	base := &stubDefinitionLookup{getErr: errors.New("connection reset")}
	lookup, err := NewCachedDefinitionLookup(base, newTestDefinitionCacheService(t))
	if err != nil {
		t.Fatalf("new cached lookup: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := lookup.GetConnectorDefinition(ctx, core.ConnectorKindSource, "def-3"); err == nil {
			t.Fatalf("expected base error on attempt %d", i+1)
		}
	}
	if base.calls() != 2 {
		t.Fatalf("expected failed reads to reach base each time, got %d", base.calls())
	}
}

func TestDefinitionCacheKey_EscapesSegments(t *testing.T) {
	key, err := DefinitionCacheKey(core.ConnectorKindSource, "a/b c")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	if key != "go-connectors::definition::v1::source::a%2Fb%20c" {
		t.Fatalf("unexpected cache key %q", key)
	}
	if _, err := DefinitionCacheKey(core.ConnectorKind("widget"), "x"); !errors.Is(err, core.ErrInvalidConnectorKind) {
		t.Fatalf("expected invalid kind error, got %v", err)
	}
	if _, err := DefinitionCacheKey(core.ConnectorKindSource, "  "); err == nil {
		t.Fatalf("expected empty id error")
	}
}

func TestNewCachedDefinitionLookup_RequiresDependencies(t *testing.T) {
	if _, err := NewCachedDefinitionLookup(nil, newTestDefinitionCacheService(t)); err == nil {
		t.Fatalf("expected error for nil base")
	}
	if _, err := NewCachedDefinitionLookup(&stubDefinitionLookup{}, nil); err == nil {
		t.Fatalf("expected error for nil cache")
	}
}

func TestRedactProperties_MasksSensitiveKeys(t *testing.T) {
	redacted := RedactProperties(map[string]any{
		"connector_source": "Postgres",
		"client_secret":    "s3cr3t",
		"nested":           map[string]any{"Api-Key": "k"},
		"items":            []any{map[string]any{"refresh_token": "rt"}},
	})
	if redacted["connector_source"] != "Postgres" {
		t.Fatalf("expected non-sensitive value kept, got %v", redacted["connector_source"])
	}
	if redacted["client_secret"] != core.SecretMask {
		t.Fatalf("expected client_secret redacted, got %v", redacted["client_secret"])
	}
	nested, _ := redacted["nested"].(map[string]any)
	if nested["Api-Key"] != core.SecretMask {
		t.Fatalf("expected nested Api-Key redacted, got %v", nested["Api-Key"])
	}
	items, _ := redacted["items"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["refresh_token"] != core.SecretMask {
		t.Fatalf("expected refresh_token inside list redacted, got %#v", redacted["items"])
	}
}

func newTestDefinitionCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}
