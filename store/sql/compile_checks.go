package sqlstore

import "github.com/goliatone/go-connectors/core"

var (
	_ core.DefinitionLookup   = (*DefinitionStore)(nil)
	_ core.DefinitionLookup   = (*CachedDefinitionLookup)(nil)
	_ core.ParameterSetLister = (*ParameterSetStore)(nil)
	_ core.Tracker            = (*TrackingEventStore)(nil)
	_ core.ConfigRepository   = (*RepositoryFactory)(nil)
)
