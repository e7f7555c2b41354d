package catalog

import (
	"fmt"

	"github.com/goliatone/go-service-catalog/core"
	"github.com/goliatone/go-service-catalog/providers/opencloud"
)

func OpenCloudProvider(cfg opencloud.Config) (core.Provider, error) {
	return opencloud.New(cfg)
}

func IdentityProvider() (core.Provider, error) {
	return opencloud.Identity()
}

func OpenCloudIdentityV2Provider() (core.Provider, error) {
	return opencloud.IdentityV2()
}

func OpenCloudIdentityV3Provider() (core.Provider, error) {
	return opencloud.IdentityV3()
}

// RegisterBuiltins registers the opencloud bundle, its "identity" alias,
// and the pinned identity derivations on the given registry. The alias is
// what DefaultConfig's DefaultProvider resolves.
func RegisterBuiltins(registry core.Registry) error {
	if registry == nil {
		return fmt.Errorf("catalog: registry is required")
	}
	base, err := opencloud.New(opencloud.Config{})
	if err != nil {
		return err
	}
	identity, err := opencloud.Identity()
	if err != nil {
		return err
	}
	v2, err := opencloud.IdentityV2()
	if err != nil {
		return err
	}
	v3, err := opencloud.IdentityV3()
	if err != nil {
		return err
	}
	for _, provider := range []core.Provider{base, identity, v2, v3} {
		if err := registry.Register(provider); err != nil {
			return err
		}
	}
	return nil
}
