package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

type staticRawConfigLoader struct {
	values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}

// NewStaticConfigLoader returns a RawConfigLoader serving fixed values, for
// embedding callers that already parsed their configuration.
func NewStaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{values: values}
}

// CfgxConfigProvider decodes raw values over the defaults with cfgx and
// validates the result.
type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil || p.Loader == nil {
		return defaults, nil
	}
	raw, err := p.Loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("core: load raw config: %w", err)
	}
	return buildConfig(raw, defaults)
}

// GoOptionsResolver merges defaults < loaded < runtime with a go-options
// stack. Loaded and runtime layers only carry the fields they set. A false
// boolean reads as unset, so these layers can switch mask_secrets and
// disable_tracking on but never off; WithMaskSecrets and WithTrackingDisabled
// set either flag both ways.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			configLayer(defaults, true),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			configLayer(loaded, false),
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			configLayer(runtime, false),
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: build config layers: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: merge config layers: %w", err)
	}
	return buildConfig(merged.Value, defaults)
}

func buildConfig(raw map[string]any, defaults Config) (Config, error) {
	return cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
}

// configField maps one Config field to its key in a layer map. section is
// empty for top level keys.
type configField struct {
	section string
	key     string
	value   func(Config) any
	set     func(Config) bool
}

var configFields = []configField{
	{
		key:   "service_name",
		value: func(c Config) any { return c.ServiceName },
		set:   func(c Config) bool { return strings.TrimSpace(c.ServiceName) != "" },
	},
	{
		section: "injection",
		key:     "mask_secrets",
		value:   func(c Config) any { return c.Injection.MaskSecrets },
		set:     func(c Config) bool { return c.Injection.MaskSecrets },
	},
	{
		section: "injection",
		key:     "disable_tracking",
		value:   func(c Config) any { return c.Injection.DisableTracking },
		set:     func(c Config) bool { return c.Injection.DisableTracking },
	},
	{
		section: "injection",
		key:     "tracking_event",
		value:   func(c Config) any { return c.Injection.TrackingEvent },
		set:     func(c Config) bool { return strings.TrimSpace(c.Injection.TrackingEvent) != "" },
	},
	{
		section: "catalog",
		key:     "fallback_sync_mode",
		value:   func(c Config) any { return c.Catalog.FallbackSyncMode },
		set:     func(c Config) bool { return strings.TrimSpace(c.Catalog.FallbackSyncMode) != "" },
	},
}

// configLayer renders cfg as a layer map. Unless complete is set, zero
// fields are left out so a sparse layer never erases a lower one.
func configLayer(cfg Config, complete bool) map[string]any {
	layer := map[string]any{}
	for _, field := range configFields {
		if !complete && !field.set(cfg) {
			continue
		}
		target := layer
		if field.section != "" {
			section, ok := layer[field.section].(map[string]any)
			if !ok {
				section = map[string]any{}
				layer[field.section] = section
			}
			target = section
		}
		target[field.key] = field.value(cfg)
	}
	return layer
}
