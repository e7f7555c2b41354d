package opencloud

import (
	"github.com/goliatone/go-service-catalog/core"
	"github.com/goliatone/go-service-catalog/providers"
)

const (
	// ProviderID is the registry name of the base bundle.
	ProviderID = "opencloud"

	// ProviderIDIdentity is the base bundle aliased under the name the
	// default configuration resolves.
	ProviderIDIdentity = "identity"

	ProviderIDIdentityV2 = "opencloud-identity-v2"
	ProviderIDIdentityV3 = "opencloud-identity-v3"
)

// Config narrows the bundle before construction. Zero values keep the full
// role table with discoverable auth.
type Config struct {
	Name        string
	AuthVersion string
	// ExcludeRoles drops roles from the table, e.g. for deployments
	// without an orchestration endpoint.
	ExcludeRoles []string
}

func DefaultConfig() Config {
	return Config{
		Name:        ProviderID,
		AuthVersion: AuthVersionDiscoverable,
	}
}

// New builds the base opencloud bundle: every canonical service role bound
// to a descriptor factory, plus the auth role.
func New(cfg Config) (core.Provider, error) {
	defaults := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.AuthVersion == "" {
		cfg.AuthVersion = defaults.AuthVersion
	}

	authFactory, err := authFactoryFor(cfg.AuthVersion)
	if err != nil {
		return core.Provider{}, err
	}

	excluded := map[string]struct{}{}
	for _, role := range cfg.ExcludeRoles {
		excluded[role] = struct{}{}
	}

	bindings := []core.RoleBinding{providers.AuthBinding(authFactory)}
	for _, role := range serviceRoles() {
		if _, skip := excluded[role]; skip {
			continue
		}
		bindings = append(bindings, providers.ServiceBinding(role, role))
	}
	return core.NewProvider(cfg.Name, bindings...)
}

// Identity is the base bundle under its default-configuration alias:
// discoverable auth, full role table, nothing overridden.
func Identity() (core.Provider, error) {
	base, err := New(Config{})
	if err != nil {
		return core.Provider{}, err
	}
	return base.Derive(ProviderIDIdentity)
}

// IdentityV2 derives the base bundle with version 2 identity auth pinned.
// Only the auth role changes; the service table is shared with the base.
func IdentityV2() (core.Provider, error) {
	return deriveWithAuth(ProviderIDIdentityV2, AuthVersionV2)
}

// IdentityV3 derives the base bundle with version 3 identity auth pinned.
func IdentityV3() (core.Provider, error) {
	return deriveWithAuth(ProviderIDIdentityV3, AuthVersionV3)
}

func deriveWithAuth(name string, version string) (core.Provider, error) {
	base, err := New(Config{})
	if err != nil {
		return core.Provider{}, err
	}
	factory, err := authFactoryFor(version)
	if err != nil {
		return core.Provider{}, err
	}
	return base.Derive(name, providers.AuthBinding(factory))
}

func serviceRoles() []string {
	return []string{
		providers.RoleCompute,
		providers.RoleDatabase,
		providers.RoleIdentity,
		providers.RoleImage,
		providers.RoleKeystore,
		providers.RoleNetwork,
		providers.RoleObjectStore,
		providers.RoleOrchestration,
		providers.RoleTelemetry,
	}
}
