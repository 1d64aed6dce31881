package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-connectors/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// DefinitionStore reads connector definitions from connector_definitions.
type DefinitionStore struct {
	db   *bun.DB
	repo repository.Repository[*connectorDefinitionRecord]
}

func NewDefinitionStore(db *bun.DB) (*DefinitionStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*connectorDefinitionRecord](db, connectorDefinitionHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid connector definition repository wiring: %w", err)
		}
	}
	return &DefinitionStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *DefinitionStore) GetConnectorDefinition(
	ctx context.Context,
	kind core.ConnectorKind,
	definitionID string,
) (core.ConnectorDefinition, error) {
	if s == nil || s.db == nil {
		return core.ConnectorDefinition{}, fmt.Errorf("sqlstore: connector definition store is not configured")
	}
	if err := kind.Validate(); err != nil {
		return core.ConnectorDefinition{}, err
	}
	definitionID = strings.TrimSpace(definitionID)
	if definitionID == "" {
		return core.ConnectorDefinition{}, fmt.Errorf("sqlstore: connector definition id is required")
	}

	record := &connectorDefinitionRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", definitionID).
		Where("?TableAlias.kind = ?", string(kind)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ConnectorDefinition{}, fmt.Errorf("%w: %s %s", core.ErrDefinitionNotFound, kind, definitionID)
		}
		return core.ConnectorDefinition{}, err
	}
	return record.toDomain(), nil
}

// List returns the definitions of one kind ordered by name.
func (s *DefinitionStore) List(ctx context.Context, kind core.ConnectorKind) ([]core.ConnectorDefinition, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: connector definition store is not configured")
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("kind", "=", string(kind)),
		repository.OrderBy("name ASC"),
		repository.OrderBy("id ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.ConnectorDefinition, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

// Upsert inserts or replaces a definition by id. Injection never writes
// definitions; this exists for seeding and admin tooling.
func (s *DefinitionStore) Upsert(ctx context.Context, definition core.ConnectorDefinition) (core.ConnectorDefinition, error) {
	if s == nil || s.db == nil {
		return core.ConnectorDefinition{}, fmt.Errorf("sqlstore: connector definition store is not configured")
	}
	if err := definition.Kind.Validate(); err != nil {
		return core.ConnectorDefinition{}, err
	}
	definition.ID = strings.TrimSpace(definition.ID)
	if definition.ID == "" {
		return core.ConnectorDefinition{}, fmt.Errorf("sqlstore: connector definition id is required")
	}

	now := time.Now().UTC()
	var out core.ConnectorDefinition
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := &connectorDefinitionRecord{}
		err := tx.NewSelect().
			Model(existing).
			Where("?TableAlias.id = ?", definition.ID).
			Limit(1).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		record := newConnectorDefinitionRecord(definition, now)
		if errors.Is(err, sql.ErrNoRows) {
			if _, insertErr := tx.NewInsert().Model(record).Exec(ctx); insertErr != nil {
				return insertErr
			}
			out = record.toDomain()
			return nil
		}

		record.CreatedAt = existing.CreatedAt
		if _, updateErr := tx.NewUpdate().
			Model(record).
			Column("kind", "name", "docker_repository", "docker_image_tag", "updated_at").
			Where("id = ?", record.ID).
			Exec(ctx); updateErr != nil {
			return updateErr
		}
		out = record.toDomain()
		return nil
	})
	if err != nil {
		return core.ConnectorDefinition{}, err
	}
	return out, nil
}
