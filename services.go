package connectors

import "github.com/goliatone/go-connectors/core"

type Config = core.Config
type InjectionConfig = core.InjectionConfig
type CatalogConfig = core.CatalogConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type ConnectorKind = core.ConnectorKind
type ConnectorDefinition = core.ConnectorDefinition
type CredentialParameterSet = core.CredentialParameterSet
type InjectionMode = core.InjectionMode

type InjectRequest = core.InjectRequest
type InjectResult = core.InjectResult
type ConsentURLRequest = core.ConsentURLRequest
type CompleteOAuthRequest = core.CompleteOAuthRequest

type ConfigRepository = core.ConfigRepository
type DefinitionLookup = core.DefinitionLookup
type ParameterSetLister = core.ParameterSetLister
type Tracker = core.Tracker
type OAuthFlow = core.OAuthFlow
type OAuthFlowRegistry = core.OAuthFlowRegistry
type SecretProvider = core.SecretProvider

const (
	ConnectorKindSource      = core.ConnectorKindSource
	ConnectorKindDestination = core.ConnectorKindDestination

	InjectionModeReal = core.InjectionModeReal
	InjectionModeMask = core.InjectionModeMask
)

var (
	WithLogger                = core.WithLogger
	WithLoggerProvider        = core.WithLoggerProvider
	WithMetricsRecorder       = core.WithMetricsRecorder
	WithErrorFactory          = core.WithErrorFactory
	WithErrorMapper           = core.WithErrorMapper
	WithConfigProvider        = core.WithConfigProvider
	WithOptionsResolver       = core.WithOptionsResolver
	WithConfigRepository      = core.WithConfigRepository
	WithDefinitionLookup      = core.WithDefinitionLookup
	WithParameterSetLister    = core.WithParameterSetLister
	WithTracker               = core.WithTracker
	WithOAuthFlowRegistry     = core.WithOAuthFlowRegistry
	WithMaskSecrets           = core.WithMaskSecrets
	WithTrackingDisabled      = core.WithTrackingDisabled
	NewMemoryConfigRepository = core.NewMemoryConfigRepository
	NewOAuthFlowRegistry      = core.NewOAuthFlowRegistry
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
