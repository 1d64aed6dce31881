package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// DefinitionLookup resolves connector definitions. Implementations return an
// error wrapping ErrDefinitionNotFound when the id is unknown.
type DefinitionLookup interface {
	GetConnectorDefinition(ctx context.Context, kind ConnectorKind, definitionID string) (ConnectorDefinition, error)
}

// ParameterSetLister returns every stored parameter set of a connector kind.
// Filtering by definition and workspace happens in core.
type ParameterSetLister interface {
	ListCredentialParameterSets(ctx context.Context, kind ConnectorKind) ([]CredentialParameterSet, error)
}

type ConfigRepository interface {
	DefinitionLookup
	ParameterSetLister
}

type Tracker interface {
	Track(ctx context.Context, workspaceID string, event string, properties map[string]any) error
}

// OAuthFlow is the consent/redirect capability of a connector definition.
// It returns raw credential pairs; core never speaks the protocol itself.
type OAuthFlow interface {
	GetSourceConsentURL(ctx context.Context, workspaceID, definitionID, redirectURL string) (string, error)
	GetDestinationConsentURL(ctx context.Context, workspaceID, definitionID, redirectURL string) (string, error)
	CompleteSourceOAuth(
		ctx context.Context,
		workspaceID string,
		definitionID string,
		queryParams map[string]any,
		redirectURL string,
	) (map[string]any, error)
	CompleteDestinationOAuth(
		ctx context.Context,
		workspaceID string,
		definitionID string,
		queryParams map[string]any,
		redirectURL string,
	) (map[string]any, error)
}

type OAuthFlowRegistry interface {
	Register(definitionID string, flow OAuthFlow) error
	Get(definitionID string) (OAuthFlow, bool)
}

// ConnectorService is the surface exposed to command and query handlers.
type ConnectorService interface {
	Inject(ctx context.Context, req InjectRequest) (InjectResult, error)
	InjectSourceParameters(ctx context.Context, definitionID string, workspaceID string, config map[string]any) (map[string]any, error)
	InjectDestinationParameters(ctx context.Context, definitionID string, workspaceID string, config map[string]any) (map[string]any, error)
	MaskSourceParameters(ctx context.Context, definitionID string, workspaceID string, config map[string]any) (map[string]any, error)
	MaskDestinationParameters(ctx context.Context, definitionID string, workspaceID string, config map[string]any) (map[string]any, error)
	GetConsentURL(ctx context.Context, req ConsentURLRequest) (string, error)
	CompleteOAuth(ctx context.Context, req CompleteOAuthRequest) (map[string]any, error)
}

type SecretProvider interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
