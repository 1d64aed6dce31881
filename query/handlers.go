package query

import (
	"context"

	"github.com/goliatone/go-connectors/catalog"
	"github.com/goliatone/go-connectors/core"
)

type ParameterInjector interface {
	Inject(ctx context.Context, req core.InjectRequest) (core.InjectResult, error)
}

type CatalogConverter interface {
	ToAPICatalog(source catalog.Catalog) (catalog.APICatalog, error)
	ConfiguredToAPICatalog(source catalog.ConfiguredCatalog) (catalog.APICatalog, error)
	ToConfiguredCatalog(source catalog.APICatalog) (catalog.ConfiguredCatalog, error)
}

type ConsentURLReader interface {
	GetConsentURL(ctx context.Context, req core.ConsentURLRequest) (string, error)
}

type InjectParametersQuery struct {
	injector ParameterInjector
}

func NewInjectParametersQuery(injector ParameterInjector) *InjectParametersQuery {
	return &InjectParametersQuery{injector: injector}
}

func (q *InjectParametersQuery) Query(ctx context.Context, msg InjectParametersMessage) (core.InjectResult, error) {
	if q == nil || q.injector == nil {
		return core.InjectResult{}, queryDependencyError("query: parameter injector is required")
	}
	if err := msg.Validate(); err != nil {
		return core.InjectResult{}, err
	}
	return q.injector.Inject(ctx, msg.Request)
}

type BuildCatalogQuery struct {
	converter CatalogConverter
}

func NewBuildCatalogQuery(converter CatalogConverter) *BuildCatalogQuery {
	return &BuildCatalogQuery{converter: converter}
}

func (q *BuildCatalogQuery) Query(_ context.Context, msg BuildCatalogMessage) (catalog.APICatalog, error) {
	if q == nil || q.converter == nil {
		return catalog.APICatalog{}, queryDependencyError("query: catalog converter is required")
	}
	if err := msg.Validate(); err != nil {
		return catalog.APICatalog{}, err
	}
	return q.converter.ToAPICatalog(msg.Catalog)
}

type BuildCatalogFromConfiguredQuery struct {
	converter CatalogConverter
}

func NewBuildCatalogFromConfiguredQuery(converter CatalogConverter) *BuildCatalogFromConfiguredQuery {
	return &BuildCatalogFromConfiguredQuery{converter: converter}
}

func (q *BuildCatalogFromConfiguredQuery) Query(
	_ context.Context,
	msg BuildCatalogFromConfiguredMessage,
) (catalog.APICatalog, error) {
	if q == nil || q.converter == nil {
		return catalog.APICatalog{}, queryDependencyError("query: catalog converter is required")
	}
	if err := msg.Validate(); err != nil {
		return catalog.APICatalog{}, err
	}
	return q.converter.ConfiguredToAPICatalog(msg.Catalog)
}

type BuildConfiguredCatalogQuery struct {
	converter CatalogConverter
}

func NewBuildConfiguredCatalogQuery(converter CatalogConverter) *BuildConfiguredCatalogQuery {
	return &BuildConfiguredCatalogQuery{converter: converter}
}

func (q *BuildConfiguredCatalogQuery) Query(
	_ context.Context,
	msg BuildConfiguredCatalogMessage,
) (catalog.ConfiguredCatalog, error) {
	if q == nil || q.converter == nil {
		return catalog.ConfiguredCatalog{}, queryDependencyError("query: catalog converter is required")
	}
	if err := msg.Validate(); err != nil {
		return catalog.ConfiguredCatalog{}, err
	}
	return q.converter.ToConfiguredCatalog(msg.Catalog)
}

type GetConsentURLQuery struct {
	reader ConsentURLReader
}

func NewGetConsentURLQuery(reader ConsentURLReader) *GetConsentURLQuery {
	return &GetConsentURLQuery{reader: reader}
}

func (q *GetConsentURLQuery) Query(ctx context.Context, msg GetConsentURLMessage) (string, error) {
	if q == nil || q.reader == nil {
		return "", queryDependencyError("query: oauth consent reader is required")
	}
	if err := msg.Validate(); err != nil {
		return "", err
	}
	return q.reader.GetConsentURL(ctx, msg.Request)
}
