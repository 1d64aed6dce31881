package command

import (
	"strings"

	"github.com/goliatone/go-connectors/core"
)

const TypeCompleteOAuth = "connectors.command.oauth.complete"

// CompleteOAuthMessage finishes a connector OAuth flow. The handler stores the
// returned credential pairs in the result collector.
type CompleteOAuthMessage struct {
	Request core.CompleteOAuthRequest
}

func (CompleteOAuthMessage) Type() string { return TypeCompleteOAuth }

func (m CompleteOAuthMessage) Validate() error {
	if err := m.Request.Kind.Validate(); err != nil {
		return commandValidationError("kind", err.Error())
	}
	if strings.TrimSpace(m.Request.DefinitionID) == "" {
		return commandValidationError("definition_id", "definition id is required")
	}
	if strings.TrimSpace(m.Request.WorkspaceID) == "" {
		return commandValidationError("workspace_id", "workspace id is required")
	}
	if strings.TrimSpace(m.Request.RedirectURL) == "" {
		return commandValidationError("redirect_url", "redirect url is required")
	}
	return nil
}
