package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-connectors/catalog"
	"github.com/goliatone/go-connectors/core"
)

var (
	_ gocmd.Querier[InjectParametersMessage, core.InjectResult]               = (*InjectParametersQuery)(nil)
	_ gocmd.Querier[BuildCatalogMessage, catalog.APICatalog]                  = (*BuildCatalogQuery)(nil)
	_ gocmd.Querier[BuildCatalogFromConfiguredMessage, catalog.APICatalog]    = (*BuildCatalogFromConfiguredQuery)(nil)
	_ gocmd.Querier[BuildConfiguredCatalogMessage, catalog.ConfiguredCatalog] = (*BuildConfiguredCatalogQuery)(nil)
	_ gocmd.Querier[GetConsentURLMessage, string]                             = (*GetConsentURLQuery)(nil)

	_ ParameterInjector = (*core.Service)(nil)
	_ ConsentURLReader  = (*core.Service)(nil)
	_ CatalogConverter  = (*catalog.Normalizer)(nil)
)
