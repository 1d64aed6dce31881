package query

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-connectors/catalog"
	"github.com/goliatone/go-connectors/core"
)

const (
	TypeInjectParameters           = "connectors.query.parameters.inject"
	TypeBuildCatalog               = "connectors.query.catalog.build"
	TypeBuildCatalogFromConfigured = "connectors.query.catalog.from_configured"
	TypeBuildConfiguredCatalog     = "connectors.query.catalog.configured"
	TypeGetConsentURL              = "connectors.query.oauth.consent_url"
)

type InjectParametersMessage struct {
	Request core.InjectRequest
}

func (InjectParametersMessage) Type() string { return TypeInjectParameters }

func (m InjectParametersMessage) Validate() error {
	if err := m.Request.Kind.Validate(); err != nil {
		return queryValidationError("kind", err.Error())
	}
	if strings.TrimSpace(m.Request.DefinitionID) == "" {
		return queryValidationError("definition_id", "definition id is required")
	}
	if strings.TrimSpace(m.Request.WorkspaceID) == "" {
		return queryValidationError("workspace_id", "workspace id is required")
	}
	if err := m.Request.Mode.Validate(); err != nil {
		return queryValidationError("mode", err.Error())
	}
	return nil
}

type BuildCatalogMessage struct {
	Catalog catalog.Catalog
}

func (BuildCatalogMessage) Type() string { return TypeBuildCatalog }

func (m BuildCatalogMessage) Validate() error {
	for index, stream := range m.Catalog.Streams {
		if stream.Identity().Empty() {
			return queryValidationError(fmt.Sprintf("streams[%d].name", index), "stream name is required")
		}
	}
	return nil
}

type BuildCatalogFromConfiguredMessage struct {
	Catalog catalog.ConfiguredCatalog
}

func (BuildCatalogFromConfiguredMessage) Type() string { return TypeBuildCatalogFromConfigured }

func (m BuildCatalogFromConfiguredMessage) Validate() error {
	for index, configured := range m.Catalog.Streams {
		if configured.Stream.Identity().Empty() {
			return queryValidationError(fmt.Sprintf("streams[%d].stream.name", index), "stream name is required")
		}
		if strings.TrimSpace(string(configured.SyncMode)) == "" {
			return queryValidationError(fmt.Sprintf("streams[%d].sync_mode", index), "sync mode is required")
		}
	}
	return nil
}

type BuildConfiguredCatalogMessage struct {
	Catalog catalog.APICatalog
}

func (BuildConfiguredCatalogMessage) Type() string { return TypeBuildConfiguredCatalog }

// Validate only inspects selected streams; unselected ones are dropped by
// the conversion anyway.
func (m BuildConfiguredCatalogMessage) Validate() error {
	for index, entry := range m.Catalog.Streams {
		if !entry.Config.Selected {
			continue
		}
		if entry.Stream.Identity().Empty() {
			return queryValidationError(fmt.Sprintf("streams[%d].stream.name", index), "stream name is required")
		}
		if strings.TrimSpace(string(entry.Config.SyncMode)) == "" {
			return queryValidationError(fmt.Sprintf("streams[%d].config.syncMode", index), "sync mode is required")
		}
	}
	return nil
}

type GetConsentURLMessage struct {
	Request core.ConsentURLRequest
}

func (GetConsentURLMessage) Type() string { return TypeGetConsentURL }

func (m GetConsentURLMessage) Validate() error {
	if err := m.Request.Kind.Validate(); err != nil {
		return queryValidationError("kind", err.Error())
	}
	if strings.TrimSpace(m.Request.DefinitionID) == "" {
		return queryValidationError("definition_id", "definition id is required")
	}
	if strings.TrimSpace(m.Request.WorkspaceID) == "" {
		return queryValidationError("workspace_id", "workspace id is required")
	}
	if strings.TrimSpace(m.Request.RedirectURL) == "" {
		return queryValidationError("redirect_url", "redirect url is required")
	}
	return nil
}
