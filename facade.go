package connectors

import (
	"fmt"

	"github.com/goliatone/go-connectors/catalog"
	connectorscommand "github.com/goliatone/go-connectors/command"
	"github.com/goliatone/go-connectors/core"
	connectorsquery "github.com/goliatone/go-connectors/query"
)

type CommandQueryService interface {
	connectorscommand.OAuthCompleter
	connectorsquery.ParameterInjector
	connectorsquery.ConsentURLReader
}

type Commands struct {
	CompleteOAuth *connectorscommand.CompleteOAuthCommand
}

type Queries struct {
	InjectParameters           *connectorsquery.InjectParametersQuery
	BuildCatalog               *connectorsquery.BuildCatalogQuery
	BuildCatalogFromConfigured *connectorsquery.BuildCatalogFromConfiguredQuery
	BuildConfiguredCatalog     *connectorsquery.BuildConfiguredCatalogQuery
	GetConsentURL              *connectorsquery.GetConsentURLQuery
}

type Facade struct {
	service   CommandQueryService
	converter connectorsquery.CatalogConverter
	commands  Commands
	queries   Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	converter connectorsquery.CatalogConverter
}

// WithCatalogConverter replaces the normalizer built from the service config.
func WithCatalogConverter(converter connectorsquery.CatalogConverter) FacadeOption {
	return func(options *facadeOptions) {
		options.converter = converter
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("connectors: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	converter := cfg.converter
	if converter == nil {
		normalizer, err := resolveNormalizer(service)
		if err != nil {
			return nil, err
		}
		converter = normalizer
	}

	facade := &Facade{service: service, converter: converter}
	facade.commands = Commands{
		CompleteOAuth: connectorscommand.NewCompleteOAuthCommand(service),
	}
	facade.queries = Queries{
		InjectParameters:           connectorsquery.NewInjectParametersQuery(service),
		BuildCatalog:               connectorsquery.NewBuildCatalogQuery(converter),
		BuildCatalogFromConfigured: connectorsquery.NewBuildCatalogFromConfiguredQuery(converter),
		BuildConfiguredCatalog:     connectorsquery.NewBuildConfiguredCatalogQuery(converter),
		GetConsentURL:              connectorsquery.NewGetConsentURLQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

func (f *Facade) CatalogConverter() connectorsquery.CatalogConverter {
	if f == nil {
		return nil
	}
	return f.converter
}

// resolveNormalizer honors Config.Catalog.FallbackSyncMode and the service
// logger when the service exposes them.
func resolveNormalizer(service CommandQueryService) (*catalog.Normalizer, error) {
	var opts []catalog.Option
	if configured, ok := service.(interface{ Config() core.Config }); ok {
		if mode := configured.Config().Catalog.FallbackSyncMode; mode != "" {
			opts = append(opts, catalog.WithFallbackSyncMode(catalog.APISyncMode(mode)))
		}
	}
	if provider, ok := service.(interface {
		Dependencies() core.ServiceDependencies
	}); ok {
		deps := provider.Dependencies()
		if deps.LoggerProvider != nil {
			opts = append(opts, catalog.WithLogger(deps.LoggerProvider.GetLogger("connectors.catalog")))
		} else if deps.Logger != nil {
			opts = append(opts, catalog.WithLogger(deps.Logger))
		}
	}
	return catalog.NewNormalizer(opts...)
}
