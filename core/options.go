package core

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type serviceBuilder struct {
	runtimeConfig    Config
	logger           Logger
	loggerProvider   LoggerProvider
	metricsRecorder  MetricsRecorder
	errorFactory     ErrorFactory
	errorMapper      ErrorMapper
	configProvider   ConfigProvider
	optionsResolver  OptionsResolver
	configRepository ConfigRepository
	definitions      DefinitionLookup
	parameterSets    ParameterSetLister
	tracker          Tracker
	oauthFlows       OAuthFlowRegistry
	maskSecrets      *bool
	disableTracking  *bool
}

type Option func(*serviceBuilder)

func WithLogger(logger Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *serviceBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorFactory(factory ErrorFactory) Option {
	return func(b *serviceBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *serviceBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *serviceBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *serviceBuilder) {
		b.optionsResolver = resolver
	}
}

// WithConfigRepository sets both the definition lookup and the parameter set
// lister from a single repository.
func WithConfigRepository(repository ConfigRepository) Option {
	return func(b *serviceBuilder) {
		b.configRepository = repository
	}
}

func WithDefinitionLookup(lookup DefinitionLookup) Option {
	return func(b *serviceBuilder) {
		b.definitions = lookup
	}
}

func WithParameterSetLister(lister ParameterSetLister) Option {
	return func(b *serviceBuilder) {
		b.parameterSets = lister
	}
}

func WithTracker(tracker Tracker) Option {
	return func(b *serviceBuilder) {
		b.tracker = tracker
	}
}

func WithOAuthFlowRegistry(registry OAuthFlowRegistry) Option {
	return func(b *serviceBuilder) {
		b.oauthFlows = registry
	}
}

// WithMaskSecrets sets injection.mask_secrets after every config layer is
// merged, so it can also switch masking off.
func WithMaskSecrets(enabled bool) Option {
	return func(b *serviceBuilder) {
		b.maskSecrets = &enabled
	}
}

// WithTrackingDisabled sets injection.disable_tracking after every config
// layer is merged, so it can also re-enable tracking.
func WithTrackingDisabled(disabled bool) Option {
	return func(b *serviceBuilder) {
		b.disableTracking = &disabled
	}
}

// applySwitches writes the explicit boolean options over the merged config.
func (b serviceBuilder) applySwitches(cfg Config) Config {
	if b.maskSecrets != nil {
		cfg.Injection.MaskSecrets = *b.maskSecrets
	}
	if b.disableTracking != nil {
		cfg.Injection.DisableTracking = *b.disableTracking
	}
	return cfg
}

func defaultServiceBuilder(runtime Config) serviceBuilder {
	loggerProvider, logger := glog.Resolve("connectors", nil, nil)
	return serviceBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorFactory:    goerrors.New,
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
		tracker:         NopTracker{},
		oauthFlows:      NewOAuthFlowRegistry(),
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return connectorErrorMapper(err)
}
