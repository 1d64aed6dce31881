package sqlstore

import (
	"context"
	"fmt"

	"github.com/goliatone/go-connectors/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// RepositoryFactory builds the connector stores over one bun database and
// serves them as a core.ConfigRepository.
type RepositoryFactory struct {
	db      *bun.DB
	secrets core.SecretProvider
	cache   repositorycache.CacheService

	definitionStore    *DefinitionStore
	definitionLookup   core.DefinitionLookup
	parameterSetStore  *ParameterSetStore
	trackingEventStore *TrackingEventStore
}

type FactoryOption func(*RepositoryFactory)

// WithSecretProvider encrypts parameter set configurations at rest.
func WithSecretProvider(secrets core.SecretProvider) FactoryOption {
	return func(f *RepositoryFactory) {
		f.secrets = secrets
	}
}

// WithDefinitionCache routes definition reads through a CachedDefinitionLookup.
func WithDefinitionCache(cacheService repositorycache.CacheService) FactoryOption {
	return func(f *RepositoryFactory) {
		f.cache = cacheService
	}
}

func NewRepositoryFactory(opts ...FactoryOption) *RepositoryFactory {
	factory := &RepositoryFactory{}
	for _, opt := range opts {
		if opt != nil {
			opt(factory)
		}
	}
	return factory
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

// BuildStores accepts a *bun.DB or anything exposing DB() *bun.DB, such as a
// go-persistence-bun client.
func (f *RepositoryFactory) BuildStores(persistenceClient any) (*RepositoryFactory, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.definitionStore != nil && f.parameterSetStore != nil && f.trackingEventStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) GetConnectorDefinition(
	ctx context.Context,
	kind core.ConnectorKind,
	definitionID string,
) (core.ConnectorDefinition, error) {
	if f == nil || f.definitionLookup == nil {
		return core.ConnectorDefinition{}, fmt.Errorf("sqlstore: repository factory stores are not built")
	}
	return f.definitionLookup.GetConnectorDefinition(ctx, kind, definitionID)
}

func (f *RepositoryFactory) ListCredentialParameterSets(
	ctx context.Context,
	kind core.ConnectorKind,
) ([]core.CredentialParameterSet, error) {
	if f == nil || f.parameterSetStore == nil {
		return nil, fmt.Errorf("sqlstore: repository factory stores are not built")
	}
	return f.parameterSetStore.ListCredentialParameterSets(ctx, kind)
}

// Tracker returns the tracking event store as a core.Tracker, or nil before
// BuildStores.
func (f *RepositoryFactory) Tracker() core.Tracker {
	if f == nil || f.trackingEventStore == nil {
		return nil
	}
	return f.trackingEventStore
}

func (f *RepositoryFactory) DefinitionStore() *DefinitionStore {
	if f == nil {
		return nil
	}
	return f.definitionStore
}

func (f *RepositoryFactory) DefinitionLookup() core.DefinitionLookup {
	if f == nil {
		return nil
	}
	return f.definitionLookup
}

func (f *RepositoryFactory) ParameterSetStore() *ParameterSetStore {
	if f == nil {
		return nil
	}
	return f.parameterSetStore
}

func (f *RepositoryFactory) TrackingEventStore() *TrackingEventStore {
	if f == nil {
		return nil
	}
	return f.trackingEventStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	definitionStore, err := NewDefinitionStore(f.db)
	if err != nil {
		return err
	}
	f.definitionStore = definitionStore
	f.definitionLookup = definitionStore
	if f.cache != nil {
		cached, cacheErr := NewCachedDefinitionLookup(definitionStore, f.cache)
		if cacheErr != nil {
			return cacheErr
		}
		f.definitionLookup = cached
	}

	parameterSetStore, err := NewParameterSetStore(f.db, f.secrets)
	if err != nil {
		return err
	}
	f.parameterSetStore = parameterSetStore

	trackingEventStore, err := NewTrackingEventStore(f.db)
	if err != nil {
		return err
	}
	f.trackingEventStore = trackingEventStore
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		if typed == nil {
			return nil, fmt.Errorf("sqlstore: bun db is required")
		}
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
