package core

import (
	"fmt"
	"strings"
)

const DefaultTrackingEvent = "OAuth Injection - Backend"

type InjectionConfig struct {
	MaskSecrets     bool   `koanf:"mask_secrets" mapstructure:"mask_secrets"`
	DisableTracking bool   `koanf:"disable_tracking" mapstructure:"disable_tracking"`
	TrackingEvent   string `koanf:"tracking_event" mapstructure:"tracking_event"`
}

type CatalogConfig struct {
	FallbackSyncMode string `koanf:"fallback_sync_mode" mapstructure:"fallback_sync_mode"`
}

type Config struct {
	ServiceName string          `koanf:"service_name" mapstructure:"service_name"`
	Injection   InjectionConfig `koanf:"injection" mapstructure:"injection"`
	Catalog     CatalogConfig   `koanf:"catalog" mapstructure:"catalog"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "connectors",
		Injection: InjectionConfig{
			TrackingEvent: DefaultTrackingEvent,
		},
		Catalog: CatalogConfig{
			FallbackSyncMode: "incremental",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Injection.TrackingEvent) == "" {
		return fmt.Errorf("core: injection.tracking_event is required")
	}
	switch strings.TrimSpace(c.Catalog.FallbackSyncMode) {
	case "full_refresh", "incremental":
	default:
		return fmt.Errorf("core: catalog.fallback_sync_mode %q is invalid", c.Catalog.FallbackSyncMode)
	}
	return nil
}

func (c Config) defaultMode() InjectionMode {
	if c.Injection.MaskSecrets {
		return InjectionModeMask
	}
	return InjectionModeReal
}
