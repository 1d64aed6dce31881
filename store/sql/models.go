package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type connectorDefinitionRecord struct {
	bun.BaseModel `bun:"table:connector_definitions,alias:cd"`

	ID               string    `bun:"id,pk"`
	Kind             string    `bun:"kind,notnull"`
	Name             string    `bun:"name,notnull"`
	DockerRepository string    `bun:"docker_repository,notnull"`
	DockerImageTag   string    `bun:"docker_image_tag,notnull"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// credentialParameterSetRecord stores either a plaintext configuration or an
// envelope in encrypted_configuration. A nil workspace_id marks a global set.
type credentialParameterSetRecord struct {
	bun.BaseModel `bun:"table:credential_parameter_sets,alias:cps"`

	ID                     string         `bun:"id,pk"`
	DefinitionID           string         `bun:"definition_id,notnull"`
	Kind                   string         `bun:"kind,notnull"`
	WorkspaceID            *string        `bun:"workspace_id"`
	Configuration          map[string]any `bun:"configuration,type:jsonb,notnull"`
	EncryptedConfiguration []byte         `bun:"encrypted_configuration"`
	CreatedAt              time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt              time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type trackingEventRecord struct {
	bun.BaseModel `bun:"table:tracking_events,alias:te"`

	ID          string         `bun:"id,pk"`
	WorkspaceID string         `bun:"workspace_id,notnull"`
	Event       string         `bun:"event,notnull"`
	Properties  map[string]any `bun:"properties,type:jsonb,notnull"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
