package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryOAuthFlowRegistry maps connector definition ids to their OAuth flow.
type MemoryOAuthFlowRegistry struct {
	mu    sync.RWMutex
	flows map[string]OAuthFlow
}

func NewOAuthFlowRegistry() *MemoryOAuthFlowRegistry {
	return &MemoryOAuthFlowRegistry{flows: make(map[string]OAuthFlow)}
}

func (r *MemoryOAuthFlowRegistry) Register(definitionID string, flow OAuthFlow) error {
	if flow == nil {
		return fmt.Errorf("core: oauth flow is nil")
	}
	id := strings.TrimSpace(definitionID)
	if id == "" {
		return fmt.Errorf("core: connector definition id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.flows[id]; exists {
		return fmt.Errorf("core: oauth flow already registered: %s", id)
	}
	r.flows[id] = flow
	return nil
}

func (r *MemoryOAuthFlowRegistry) Get(definitionID string) (OAuthFlow, bool) {
	id := strings.TrimSpace(definitionID)
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	flow, ok := r.flows[id]
	r.mu.RUnlock()
	return flow, ok
}

// DefinitionIDs lists registered definition ids in sorted order.
func (r *MemoryOAuthFlowRegistry) DefinitionIDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.flows))
	for id := range r.flows {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
