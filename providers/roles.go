package providers

import "github.com/goliatone/go-service-catalog/core"

// Canonical role names shared by the built-in bundles. A bundle binds a
// subset of these; the auth role always carries an auth plugin factory
// instead of a descriptor factory.
const (
	RoleAuth          = core.RoleAuth
	RoleCompute       = "compute"
	RoleDatabase      = "database"
	RoleIdentity      = "identity"
	RoleImage         = "image"
	RoleKeystore      = "keystore"
	RoleNetwork       = "network"
	RoleObjectStore   = "object-store"
	RoleOrchestration = "orchestration"
	RoleTelemetry     = "telemetry"
)

// ServiceBinding builds a role binding whose descriptor factory yields a
// fresh descriptor for the given service type on every call.
func ServiceBinding(role string, serviceType string) core.RoleBinding {
	return core.RoleBinding{
		Role: role,
		NewDescriptor: func() (*core.ServiceDescriptor, error) {
			return core.NewServiceDescriptor(serviceType)
		},
	}
}

// AuthBinding builds the auth role binding for a plugin factory.
func AuthBinding(factory core.AuthFactory) core.RoleBinding {
	return core.RoleBinding{
		Role:          core.RoleAuth,
		NewAuthPlugin: factory,
	}
}
