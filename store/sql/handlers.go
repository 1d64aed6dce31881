package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func connectorDefinitionHandlers() repository.ModelHandlers[*connectorDefinitionRecord] {
	return repository.ModelHandlers[*connectorDefinitionRecord]{
		NewRecord: func() *connectorDefinitionRecord {
			return &connectorDefinitionRecord{}
		},
		GetID: func(record *connectorDefinitionRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *connectorDefinitionRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *connectorDefinitionRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func credentialParameterSetHandlers() repository.ModelHandlers[*credentialParameterSetRecord] {
	return repository.ModelHandlers[*credentialParameterSetRecord]{
		NewRecord: func() *credentialParameterSetRecord {
			return &credentialParameterSetRecord{}
		},
		GetID: func(record *credentialParameterSetRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *credentialParameterSetRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *credentialParameterSetRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func trackingEventHandlers() repository.ModelHandlers[*trackingEventRecord] {
	return repository.ModelHandlers[*trackingEventRecord]{
		NewRecord: func() *trackingEventRecord {
			return &trackingEventRecord{}
		},
		GetID: func(record *trackingEventRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *trackingEventRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *trackingEventRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
