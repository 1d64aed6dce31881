package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConnectorKind = errors.New("core: invalid connector kind")
	ErrDefinitionNotFound   = errors.New("core: connector definition not found")
	ErrOAuthFlowNotFound    = errors.New("core: oauth flow not found")
	ErrLookupFailed         = errors.New("core: connector lookup failed")
)

type ConnectorKind string

const (
	ConnectorKindSource      ConnectorKind = "source"
	ConnectorKindDestination ConnectorKind = "destination"
)

func (k ConnectorKind) Validate() error {
	switch k {
	case ConnectorKindSource, ConnectorKindDestination:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidConnectorKind, string(k))
	}
}

func (k ConnectorKind) String() string {
	return string(k)
}

// ConnectorDefinition identifies a source or destination type.
type ConnectorDefinition struct {
	ID               string
	Kind             ConnectorKind
	Name             string
	DockerRepository string
	DockerImageTag   string
}

// Version reports the definition's image tag, which is what tracking uses as
// the connector version.
func (d ConnectorDefinition) Version() string {
	return d.DockerImageTag
}

type ParameterScope string

const (
	ParameterScopeGlobal    ParameterScope = "global"
	ParameterScopeWorkspace ParameterScope = "workspace"
)

// CredentialParameterSet is an opaque field-name to value mapping supplied
// out-of-band for a connector definition. An empty WorkspaceID marks a global
// set that applies to every workspace.
type CredentialParameterSet struct {
	ID            string
	DefinitionID  string
	Kind          ConnectorKind
	WorkspaceID   string
	Configuration map[string]any
}

func (p CredentialParameterSet) IsGlobal() bool {
	return strings.TrimSpace(p.WorkspaceID) == ""
}

func (p CredentialParameterSet) Scope() ParameterScope {
	if p.IsGlobal() {
		return ParameterScopeGlobal
	}
	return ParameterScopeWorkspace
}

type InjectionMode string

const (
	// InjectionModeDefault defers to Config.Injection.MaskSecrets.
	InjectionModeDefault InjectionMode = ""
	InjectionModeReal    InjectionMode = "real"
	InjectionModeMask    InjectionMode = "mask"
)

func (m InjectionMode) Validate() error {
	switch m {
	case InjectionModeDefault, InjectionModeReal, InjectionModeMask:
		return nil
	default:
		return fmt.Errorf("core: invalid injection mode %q", string(m))
	}
}

type InjectRequest struct {
	Kind         ConnectorKind
	DefinitionID string
	WorkspaceID  string
	Config       map[string]any
	Mode         InjectionMode
}

func (r InjectRequest) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.DefinitionID) == "" {
		return fmt.Errorf("core: connector definition id is required")
	}
	if strings.TrimSpace(r.WorkspaceID) == "" {
		return fmt.Errorf("core: workspace id is required")
	}
	return r.Mode.Validate()
}

type InjectResult struct {
	Config       map[string]any
	InjectedKeys []string
	Masked       bool
	Tracked      bool
}

type ConsentURLRequest struct {
	Kind         ConnectorKind
	DefinitionID string
	WorkspaceID  string
	RedirectURL  string
}

func (r ConsentURLRequest) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.DefinitionID) == "" {
		return fmt.Errorf("core: connector definition id is required")
	}
	if strings.TrimSpace(r.WorkspaceID) == "" {
		return fmt.Errorf("core: workspace id is required")
	}
	if strings.TrimSpace(r.RedirectURL) == "" {
		return fmt.Errorf("core: redirect url is required")
	}
	return nil
}

type CompleteOAuthRequest struct {
	Kind         ConnectorKind
	DefinitionID string
	WorkspaceID  string
	RedirectURL  string
	QueryParams  map[string]any
}

func (r CompleteOAuthRequest) Validate() error {
	return ConsentURLRequest{
		Kind:         r.Kind,
		DefinitionID: r.DefinitionID,
		WorkspaceID:  r.WorkspaceID,
		RedirectURL:  r.RedirectURL,
	}.Validate()
}
