package core

import (
	"fmt"
	"strings"
)

type SnapshotConfig struct {
	ProfileID string `koanf:"profile_id" mapstructure:"profile_id"`
}

type Config struct {
	ServiceName string `koanf:"service_name" mapstructure:"service_name"`
	// DefaultProvider names the bundle resolved through the registry when no
	// explicit role source is injected.
	DefaultProvider string `koanf:"default_provider" mapstructure:"default_provider"`
	// DefaultVisibility is the level every descriptor is normalized to at
	// store construction. "unset" keeps the deployment default.
	DefaultVisibility string         `koanf:"default_visibility" mapstructure:"default_visibility"`
	Snapshot          SnapshotConfig `koanf:"snapshot" mapstructure:"snapshot"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:       "catalog",
		DefaultProvider:   "identity",
		DefaultVisibility: "unset",
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.DefaultProvider) == "" {
		return fmt.Errorf("core: default_provider is required")
	}
	if _, err := ParseVisibility(c.DefaultVisibility); err != nil {
		return fmt.Errorf("core: default_visibility: %w", err)
	}
	return nil
}
