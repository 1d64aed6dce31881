package core

import (
	"strings"

	"github.com/goliatone/go-connectors/jsontree"
)

// ResolvedParameters holds the parameter sets that apply to one
// (definition, workspace) pair. Duplicates counts extra sets found for the
// same scope; the first one in listing order is the one kept.
type ResolvedParameters struct {
	Global     *CredentialParameterSet
	Workspace  *CredentialParameterSet
	Duplicates int
}

func (r ResolvedParameters) Empty() bool {
	return r.Global == nil && r.Workspace == nil
}

type definitionParameters struct {
	global              *CredentialParameterSet
	globalDuplicates    int
	workspaces          map[string]*CredentialParameterSet
	workspaceDuplicates map[string]int
}

// ParameterIndex indexes parameter sets by definition id, then by optional
// workspace id.
type ParameterIndex struct {
	kind         ConnectorKind
	byDefinition map[string]*definitionParameters
}

func NewParameterIndex(kind ConnectorKind, sets []CredentialParameterSet) *ParameterIndex {
	index := &ParameterIndex{
		kind:         kind,
		byDefinition: make(map[string]*definitionParameters),
	}
	for i := range sets {
		set := sets[i]
		if set.Kind != "" && set.Kind != kind {
			continue
		}
		definitionID := strings.TrimSpace(set.DefinitionID)
		if definitionID == "" {
			continue
		}
		entry := index.byDefinition[definitionID]
		if entry == nil {
			entry = &definitionParameters{
				workspaces:          make(map[string]*CredentialParameterSet),
				workspaceDuplicates: make(map[string]int),
			}
			index.byDefinition[definitionID] = entry
		}
		if set.IsGlobal() {
			if entry.global != nil {
				entry.globalDuplicates++
				continue
			}
			entry.global = &set
			continue
		}
		workspaceID := strings.TrimSpace(set.WorkspaceID)
		if _, exists := entry.workspaces[workspaceID]; exists {
			entry.workspaceDuplicates[workspaceID]++
			continue
		}
		entry.workspaces[workspaceID] = &set
	}
	return index
}

func (i *ParameterIndex) Kind() ConnectorKind {
	if i == nil {
		return ""
	}
	return i.kind
}

func (i *ParameterIndex) Resolve(definitionID, workspaceID string) ResolvedParameters {
	if i == nil {
		return ResolvedParameters{}
	}
	entry := i.byDefinition[strings.TrimSpace(definitionID)]
	if entry == nil {
		return ResolvedParameters{}
	}
	workspaceID = strings.TrimSpace(workspaceID)
	resolved := ResolvedParameters{
		Global:     entry.global,
		Duplicates: entry.globalDuplicates,
	}
	if workspaceID != "" {
		resolved.Workspace = entry.workspaces[workspaceID]
		resolved.Duplicates += entry.workspaceDuplicates[workspaceID]
	}
	return resolved
}

// MergeParameters overlays the workspace set on the global set field by
// field. Values are replaced wholesale, never merged below the top level.
func MergeParameters(resolved ResolvedParameters) (map[string]any, error) {
	var global, workspace map[string]any
	if resolved.Global != nil {
		global = resolved.Global.Configuration
	}
	if resolved.Workspace != nil {
		workspace = resolved.Workspace.Configuration
	}
	return jsontree.Overlay(global, workspace)
}
