package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-connectors/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const definitionCacheKeyPrefix = "go-connectors::definition::v1"

// CachedDefinitionLookup memoizes definition reads. Misses and lookup
// failures are not cached.
type CachedDefinitionLookup struct {
	base  core.DefinitionLookup
	cache repositorycache.CacheService
}

func NewCachedDefinitionLookup(
	base core.DefinitionLookup,
	cacheService repositorycache.CacheService,
) (*CachedDefinitionLookup, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base definition lookup is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: definition cache service is required")
	}
	return &CachedDefinitionLookup{base: base, cache: cacheService}, nil
}

// DefinitionCacheKey returns the cache key for a definition read:
// go-connectors::definition::v1::<kind>::<definition_id>, each segment URL-path
// escaped.
func DefinitionCacheKey(kind core.ConnectorKind, definitionID string) (string, error) {
	if err := kind.Validate(); err != nil {
		return "", err
	}
	definitionID = strings.TrimSpace(definitionID)
	if definitionID == "" {
		return "", fmt.Errorf("sqlstore: connector definition id is required")
	}
	segments := []string{
		definitionCacheKeyPrefix,
		url.PathEscape(string(kind)),
		url.PathEscape(definitionID),
	}
	return strings.Join(segments, "::"), nil
}

func (l *CachedDefinitionLookup) GetConnectorDefinition(
	ctx context.Context,
	kind core.ConnectorKind,
	definitionID string,
) (core.ConnectorDefinition, error) {
	if l == nil || l.base == nil || l.cache == nil {
		return core.ConnectorDefinition{}, fmt.Errorf("sqlstore: cached definition lookup is not configured")
	}
	definitionID = strings.TrimSpace(definitionID)
	cacheKey, err := DefinitionCacheKey(kind, definitionID)
	if err != nil {
		return core.ConnectorDefinition{}, err
	}
	return repositorycache.GetOrFetch(ctx, l.cache, cacheKey, func(ctx context.Context) (core.ConnectorDefinition, error) {
		return l.base.GetConnectorDefinition(ctx, kind, definitionID)
	})
}

// Invalidate drops a cached definition so the next read reaches the base
// lookup.
func (l *CachedDefinitionLookup) Invalidate(ctx context.Context, kind core.ConnectorKind, definitionID string) error {
	if l == nil || l.cache == nil {
		return fmt.Errorf("sqlstore: cached definition lookup is not configured")
	}
	cacheKey, err := DefinitionCacheKey(kind, definitionID)
	if err != nil {
		return err
	}
	return l.cache.Delete(ctx, cacheKey)
}
