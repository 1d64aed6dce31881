package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-connectors/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ParameterSetStore lists credential parameter sets. When a SecretProvider is
// configured, new sets are written encrypted and encrypted rows are decoded on
// read.
type ParameterSetStore struct {
	db      *bun.DB
	repo    repository.Repository[*credentialParameterSetRecord]
	secrets core.SecretProvider
}

func NewParameterSetStore(db *bun.DB, secrets core.SecretProvider) (*ParameterSetStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*credentialParameterSetRecord](db, credentialParameterSetHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid parameter set repository wiring: %w", err)
		}
	}
	return &ParameterSetStore{
		db:      db,
		repo:    repo,
		secrets: secrets,
	}, nil
}

// ListCredentialParameterSets returns every set of kind in insertion order.
func (s *ParameterSetStore) ListCredentialParameterSets(
	ctx context.Context,
	kind core.ConnectorKind,
) ([]core.CredentialParameterSet, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: parameter set store is not configured")
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	records := make([]credentialParameterSetRecord, 0)
	if err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.kind = ?", string(kind)).
		OrderExpr("?TableAlias.created_at ASC").
		Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]core.CredentialParameterSet, 0, len(records))
	for i := range records {
		set, err := s.decode(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, nil
}

// Create stores a new parameter set and returns it with its generated id.
func (s *ParameterSetStore) Create(ctx context.Context, set core.CredentialParameterSet) (core.CredentialParameterSet, error) {
	if s == nil || s.repo == nil {
		return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: parameter set store is not configured")
	}
	if err := set.Kind.Validate(); err != nil {
		return core.CredentialParameterSet{}, err
	}
	if strings.TrimSpace(set.DefinitionID) == "" {
		return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: connector definition id is required")
	}

	record := newCredentialParameterSetRecord(set, time.Now().UTC())
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if s.secrets != nil {
		plaintext, err := json.Marshal(record.Configuration)
		if err != nil {
			return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: encode parameter set configuration: %w", err)
		}
		ciphertext, err := s.secrets.Encrypt(ctx, plaintext)
		if err != nil {
			return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: encrypt parameter set configuration: %w", err)
		}
		record.EncryptedConfiguration = ciphertext
		record.Configuration = map[string]any{}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.CredentialParameterSet{}, err
	}
	out := created.toDomain()
	out.Configuration = copyAnyMap(set.Configuration)
	return out, nil
}

func (s *ParameterSetStore) decode(ctx context.Context, record *credentialParameterSetRecord) (core.CredentialParameterSet, error) {
	set := record.toDomain()
	if len(record.EncryptedConfiguration) == 0 {
		return set, nil
	}
	if s.secrets == nil {
		return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: parameter set %s is encrypted and no secret provider is configured", record.ID)
	}
	plaintext, err := s.secrets.Decrypt(ctx, record.EncryptedConfiguration)
	if err != nil {
		return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: decrypt parameter set %s: %w", record.ID, err)
	}
	configuration := map[string]any{}
	if err := json.Unmarshal(plaintext, &configuration); err != nil {
		return core.CredentialParameterSet{}, fmt.Errorf("sqlstore: decode parameter set %s: %w", record.ID, err)
	}
	set.Configuration = configuration
	return set, nil
}
