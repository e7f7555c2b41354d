package opencloud

import (
	"fmt"

	"github.com/goliatone/go-service-catalog/core"
)

const (
	// AuthVersionDiscoverable negotiates the identity version at runtime.
	AuthVersionDiscoverable = "discoverable"
	AuthVersionV2           = "v2"
	AuthVersionV3           = "v3"
)

type authPlugin struct {
	version string
}

func (p authPlugin) AuthVersion() string { return p.version }

func authFactoryFor(version string) (core.AuthFactory, error) {
	switch version {
	case AuthVersionDiscoverable, AuthVersionV2, AuthVersionV3:
		return func() core.AuthPlugin {
			return authPlugin{version: version}
		}, nil
	default:
		return nil, fmt.Errorf("opencloud: unsupported auth version %q", version)
	}
}
