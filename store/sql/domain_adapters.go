package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-connectors/core"
)

func newConnectorDefinitionRecord(definition core.ConnectorDefinition, now time.Time) *connectorDefinitionRecord {
	return &connectorDefinitionRecord{
		ID:               strings.TrimSpace(definition.ID),
		Kind:             string(definition.Kind),
		Name:             definition.Name,
		DockerRepository: definition.DockerRepository,
		DockerImageTag:   definition.DockerImageTag,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (r *connectorDefinitionRecord) toDomain() core.ConnectorDefinition {
	if r == nil {
		return core.ConnectorDefinition{}
	}
	return core.ConnectorDefinition{
		ID:               r.ID,
		Kind:             core.ConnectorKind(r.Kind),
		Name:             r.Name,
		DockerRepository: r.DockerRepository,
		DockerImageTag:   r.DockerImageTag,
	}
}

func newCredentialParameterSetRecord(set core.CredentialParameterSet, now time.Time) *credentialParameterSetRecord {
	record := &credentialParameterSetRecord{
		ID:            strings.TrimSpace(set.ID),
		DefinitionID:  strings.TrimSpace(set.DefinitionID),
		Kind:          string(set.Kind),
		Configuration: copyAnyMap(set.Configuration),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if workspaceID := strings.TrimSpace(set.WorkspaceID); workspaceID != "" {
		record.WorkspaceID = &workspaceID
	}
	return record
}

// toDomain maps the plaintext columns. Encrypted configurations are decoded
// by ParameterSetStore.
func (r *credentialParameterSetRecord) toDomain() core.CredentialParameterSet {
	if r == nil {
		return core.CredentialParameterSet{}
	}
	set := core.CredentialParameterSet{
		ID:            r.ID,
		DefinitionID:  r.DefinitionID,
		Kind:          core.ConnectorKind(r.Kind),
		Configuration: copyAnyMap(r.Configuration),
	}
	if r.WorkspaceID != nil {
		set.WorkspaceID = *r.WorkspaceID
	}
	return set
}

func (r *trackingEventRecord) toDomain() TrackingEvent {
	if r == nil {
		return TrackingEvent{}
	}
	return TrackingEvent{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Event:       r.Event,
		Properties:  copyAnyMap(r.Properties),
		CreatedAt:   r.CreatedAt,
	}
}

func copyAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
