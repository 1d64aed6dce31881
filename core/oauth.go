package core

import (
	"context"
	"fmt"
	"strings"
)

// GetConsentURL resolves the connector definition and asks its registered
// OAuth flow for the consent URL.
func (s *Service) GetConsentURL(ctx context.Context, req ConsentURLRequest) (consentURL string, err error) {
	op := s.startOperation(ctx, operationConsentURL, req.Kind, req.DefinitionID, req.WorkspaceID)
	defer func() {
		op.finish(err)
	}()

	if err = req.Validate(); err != nil {
		err = s.mapError(err)
		return "", err
	}
	flow, resolveErr := s.resolveOAuthFlow(ctx, req.Kind, req.DefinitionID)
	if resolveErr != nil {
		err = s.mapError(resolveErr)
		return "", err
	}

	definitionID := strings.TrimSpace(req.DefinitionID)
	workspaceID := strings.TrimSpace(req.WorkspaceID)
	switch req.Kind {
	case ConnectorKindDestination:
		consentURL, err = flow.GetDestinationConsentURL(ctx, workspaceID, definitionID, req.RedirectURL)
	default:
		consentURL, err = flow.GetSourceConsentURL(ctx, workspaceID, definitionID, req.RedirectURL)
	}
	if err != nil {
		err = s.mapError(err)
		return "", err
	}
	return consentURL, nil
}

// CompleteOAuth finishes the flow and returns the raw credential pairs. The
// pairs are handed back to the caller; storing them is not done here.
func (s *Service) CompleteOAuth(ctx context.Context, req CompleteOAuthRequest) (params map[string]any, err error) {
	op := s.startOperation(ctx, operationCompleteOAuth, req.Kind, req.DefinitionID, req.WorkspaceID)
	defer func() {
		op.finish(err)
	}()

	if err = req.Validate(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	flow, resolveErr := s.resolveOAuthFlow(ctx, req.Kind, req.DefinitionID)
	if resolveErr != nil {
		err = s.mapError(resolveErr)
		return nil, err
	}

	definitionID := strings.TrimSpace(req.DefinitionID)
	workspaceID := strings.TrimSpace(req.WorkspaceID)
	switch req.Kind {
	case ConnectorKindDestination:
		params, err = flow.CompleteDestinationOAuth(ctx, workspaceID, definitionID, req.QueryParams, req.RedirectURL)
	default:
		params, err = flow.CompleteSourceOAuth(ctx, workspaceID, definitionID, req.QueryParams, req.RedirectURL)
	}
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	if params == nil {
		params = map[string]any{}
	}
	op.set("returned_keys", len(params))
	return params, nil
}

func (s *Service) resolveOAuthFlow(ctx context.Context, kind ConnectorKind, definitionID string) (OAuthFlow, error) {
	if s.definitions == nil {
		return nil, s.dependencyError("core: connector definition lookup is not configured")
	}
	definitionID = strings.TrimSpace(definitionID)
	if _, err := s.definitions.GetConnectorDefinition(ctx, kind, definitionID); err != nil {
		return nil, classifyLookupError(err, "get connector definition")
	}
	if s.oauthFlows == nil {
		return nil, fmt.Errorf("%w: %s", ErrOAuthFlowNotFound, definitionID)
	}
	flow, ok := s.oauthFlows.Get(definitionID)
	if !ok || flow == nil {
		return nil, fmt.Errorf("%w: %s", ErrOAuthFlowNotFound, definitionID)
	}
	return flow, nil
}
