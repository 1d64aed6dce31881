package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-connectors/jsontree"
)

// MemoryConfigRepository is an in-process ConfigRepository. Parameter sets are
// listed in insertion order.
type MemoryConfigRepository struct {
	mu          sync.RWMutex
	definitions map[ConnectorKind]map[string]ConnectorDefinition
	sets        map[ConnectorKind][]CredentialParameterSet
}

func NewMemoryConfigRepository() *MemoryConfigRepository {
	return &MemoryConfigRepository{
		definitions: make(map[ConnectorKind]map[string]ConnectorDefinition),
		sets:        make(map[ConnectorKind][]CredentialParameterSet),
	}
}

func (r *MemoryConfigRepository) PutDefinition(definition ConnectorDefinition) error {
	if err := definition.Kind.Validate(); err != nil {
		return err
	}
	id := strings.TrimSpace(definition.ID)
	if id == "" {
		return fmt.Errorf("core: connector definition id is required")
	}
	definition.ID = id
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.definitions[definition.Kind] == nil {
		r.definitions[definition.Kind] = make(map[string]ConnectorDefinition)
	}
	r.definitions[definition.Kind][id] = definition
	return nil
}

func (r *MemoryConfigRepository) AddParameterSet(set CredentialParameterSet) error {
	if err := set.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(set.DefinitionID) == "" {
		return fmt.Errorf("core: connector definition id is required")
	}
	configuration, err := jsontree.Clone(set.Configuration)
	if err != nil {
		return err
	}
	set.Configuration = configuration
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.Kind] = append(r.sets[set.Kind], set)
	return nil
}

func (r *MemoryConfigRepository) GetConnectorDefinition(
	_ context.Context,
	kind ConnectorKind,
	definitionID string,
) (ConnectorDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	definition, ok := r.definitions[kind][strings.TrimSpace(definitionID)]
	if !ok {
		return ConnectorDefinition{}, fmt.Errorf("%w: %s %s", ErrDefinitionNotFound, kind, definitionID)
	}
	return definition, nil
}

func (r *MemoryConfigRepository) ListCredentialParameterSets(
	_ context.Context,
	kind ConnectorKind,
) ([]CredentialParameterSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.sets[kind]
	out := make([]CredentialParameterSet, 0, len(stored))
	for _, set := range stored {
		configuration, err := jsontree.Clone(set.Configuration)
		if err != nil {
			return nil, err
		}
		set.Configuration = configuration
		out = append(out, set)
	}
	return out, nil
}
