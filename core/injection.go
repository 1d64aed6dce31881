package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-connectors/jsontree"
	goerrors "github.com/goliatone/go-errors"
)

// InjectSourceParameters writes the stored parameters of a source definition
// into a copy of config, using the service's configured mode.
func (s *Service) InjectSourceParameters(
	ctx context.Context,
	definitionID string,
	workspaceID string,
	config map[string]any,
) (map[string]any, error) {
	return s.injectConfig(ctx, ConnectorKindSource, definitionID, workspaceID, config, InjectionModeDefault)
}

func (s *Service) InjectDestinationParameters(
	ctx context.Context,
	definitionID string,
	workspaceID string,
	config map[string]any,
) (map[string]any, error) {
	return s.injectConfig(ctx, ConnectorKindDestination, definitionID, workspaceID, config, InjectionModeDefault)
}

// MaskSourceParameters reports which fields would be injected without ever
// exposing their values.
func (s *Service) MaskSourceParameters(
	ctx context.Context,
	definitionID string,
	workspaceID string,
	config map[string]any,
) (map[string]any, error) {
	return s.injectConfig(ctx, ConnectorKindSource, definitionID, workspaceID, config, InjectionModeMask)
}

func (s *Service) MaskDestinationParameters(
	ctx context.Context,
	definitionID string,
	workspaceID string,
	config map[string]any,
) (map[string]any, error) {
	return s.injectConfig(ctx, ConnectorKindDestination, definitionID, workspaceID, config, InjectionModeMask)
}

func (s *Service) injectConfig(
	ctx context.Context,
	kind ConnectorKind,
	definitionID string,
	workspaceID string,
	config map[string]any,
	mode InjectionMode,
) (map[string]any, error) {
	result, err := s.Inject(ctx, InjectRequest{
		Kind:         kind,
		DefinitionID: definitionID,
		WorkspaceID:  workspaceID,
		Config:       config,
		Mode:         mode,
	})
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// Inject resolves the parameter sets that apply to the request, merges them
// with workspace precedence and writes them into a deep copy of req.Config.
// req.Config is never modified.
func (s *Service) Inject(ctx context.Context, req InjectRequest) (result InjectResult, err error) {
	op := s.startOperation(ctx, operationInjectParameters, req.Kind, req.DefinitionID, req.WorkspaceID)
	defer func() {
		op.finish(err)
	}()

	if err = req.Validate(); err != nil {
		err = s.mapError(err)
		return InjectResult{}, err
	}
	if s.definitions == nil || s.parameterSets == nil {
		err = s.dependencyError("core: connector config repository is not configured")
		return InjectResult{}, err
	}
	definitionID := strings.TrimSpace(req.DefinitionID)
	workspaceID := strings.TrimSpace(req.WorkspaceID)
	mode := req.Mode
	if mode == InjectionModeDefault {
		mode = s.config.defaultMode()
	}
	op.set("mode", string(mode))

	definition, lookupErr := s.definitions.GetConnectorDefinition(ctx, req.Kind, definitionID)
	if lookupErr != nil {
		err = s.mapError(classifyLookupError(lookupErr, "get connector definition"))
		return InjectResult{}, err
	}
	sets, listErr := s.parameterSets.ListCredentialParameterSets(ctx, req.Kind)
	if listErr != nil {
		err = s.mapError(classifyLookupError(listErr, "list credential parameter sets"))
		return InjectResult{}, err
	}

	resolved := NewParameterIndex(req.Kind, sets).Resolve(definitionID, workspaceID)
	if resolved.Duplicates > 0 {
		s.logWarn(ctx, "duplicate credential parameter sets, using first match", map[string]any{
			"connector_kind": string(req.Kind),
			"definition_id":  definitionID,
			"workspace_id":   workspaceID,
			"duplicates":     resolved.Duplicates,
		})
	}
	merged, mergeErr := MergeParameters(resolved)
	if mergeErr != nil {
		err = s.mapError(mergeErr)
		return InjectResult{}, err
	}

	out, cloneErr := jsontree.Clone(req.Config)
	if cloneErr != nil {
		err = s.mapError(cloneErr)
		return InjectResult{}, err
	}
	if len(merged) == 0 {
		op.set("injected_keys", []string{})
		return InjectResult{Config: out, InjectedKeys: []string{}}, nil
	}

	values := merged
	if mode == InjectionModeMask {
		values = MaskParameters(merged)
	}
	for key, value := range values {
		if setErr := jsontree.Set(out, key, value); setErr != nil {
			err = s.mapError(setErr)
			return InjectResult{}, err
		}
	}

	result = InjectResult{
		Config:       out,
		InjectedKeys: jsontree.Keys(merged),
		Masked:       mode == InjectionModeMask,
	}
	op.set("injected_keys", result.InjectedKeys)
	op.set("masked", result.Masked)

	if mode == InjectionModeReal && !s.config.Injection.DisableTracking {
		result.Tracked = s.trackInjection(ctx, req.Kind, definition, definitionID, workspaceID)
	}
	return result, nil
}

func (s *Service) trackInjection(
	ctx context.Context,
	kind ConnectorKind,
	definition ConnectorDefinition,
	definitionID string,
	workspaceID string,
) bool {
	if s.tracker == nil {
		return false
	}
	if strings.TrimSpace(definition.ID) == "" {
		definition.ID = definitionID
	}
	if err := s.tracker.Track(ctx, workspaceID, s.config.Injection.TrackingEvent, TrackingProperties(kind, definition)); err != nil {
		s.logWarn(ctx, "injection tracking failed", map[string]any{
			"connector_kind": string(kind),
			"definition_id":  definition.ID,
			"workspace_id":   workspaceID,
			"error":          err.Error(),
		})
		return false
	}
	return true
}

// TrackingProperties builds the tracking payload for an injection, keyed by
// connector kind: connector_<kind>, connector_<kind>_definition_id and
// connector_<kind>_version.
func TrackingProperties(kind ConnectorKind, definition ConnectorDefinition) map[string]any {
	prefix := "connector_" + string(kind)
	return map[string]any{
		prefix:                    definition.Name,
		prefix + "_definition_id": definition.ID,
		prefix + "_version":       definition.Version(),
	}
}

func classifyLookupError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return err
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrLookupFailed, operation, err)
}

func (s *Service) dependencyError(message string) error {
	factory := s.errorFactory
	if factory == nil {
		factory = goerrors.New
	}
	return ensureConnectorErrorEnvelope(factory(message, goerrors.CategoryInternal).
		WithTextCode(ConnectorErrorInternal))
}
