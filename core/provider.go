package core

import (
	"fmt"
	"sort"
	"strings"
)

// RoleAuth is the reserved role carrying an auth-plugin factory instead of a
// service descriptor factory. The preference store skips it at construction.
const RoleAuth = "auth"

type DescriptorFactory func() (*ServiceDescriptor, error)

// AuthPlugin is the minimal contract the catalog needs from an auth
// implementation: the token-exchange flows themselves live outside core.
type AuthPlugin interface {
	AuthVersion() string
}

type AuthFactory func() AuthPlugin

// RoleBinding associates a role name with exactly one factory. The auth role
// must carry an auth factory; every other role a descriptor factory.
type RoleBinding struct {
	Role          string
	NewDescriptor DescriptorFactory
	NewAuthPlugin AuthFactory
}

func (b RoleBinding) Validate() error {
	role := strings.TrimSpace(b.Role)
	if role == "" {
		return fmt.Errorf("%w: role name is required", ErrInvalidRoleBinding)
	}
	if role == RoleAuth {
		if b.NewAuthPlugin == nil {
			return fmt.Errorf("%w: auth role requires an auth factory", ErrInvalidRoleBinding)
		}
		if b.NewDescriptor != nil {
			return fmt.Errorf("%w: auth role cannot carry a descriptor factory", ErrInvalidRoleBinding)
		}
		return nil
	}
	if b.NewDescriptor == nil {
		return fmt.Errorf("%w: role %q requires a descriptor factory", ErrInvalidRoleBinding, role)
	}
	if b.NewAuthPlugin != nil {
		return fmt.Errorf("%w: role %q cannot carry an auth factory", ErrInvalidRoleBinding, role)
	}
	return nil
}

// RoleSource is the read contract shared by Provider and MultiProvider; the
// preference store is built against it rather than a concrete table.
type RoleSource interface {
	Name() string
	RoleNames() []string
	Binding(role string) (RoleBinding, bool)
}

// Provider is a named, closed role table. The table is copied at
// construction and never mutated afterwards; variation happens through
// Derive, not in place.
type Provider struct {
	name  string
	roles map[string]RoleBinding
}

func NewProvider(name string, bindings ...RoleBinding) (Provider, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Provider{}, fmt.Errorf("core: provider name is required")
	}
	roles := make(map[string]RoleBinding, len(bindings))
	for _, binding := range bindings {
		if err := binding.Validate(); err != nil {
			return Provider{}, err
		}
		role := strings.TrimSpace(binding.Role)
		if _, exists := roles[role]; exists {
			return Provider{}, fmt.Errorf("core: provider %q binds role %q twice", trimmed, role)
		}
		binding.Role = role
		roles[role] = binding
	}
	return Provider{name: trimmed, roles: roles}, nil
}

func (p Provider) Name() string {
	return p.name
}

func (p Provider) RoleNames() []string {
	names := make([]string, 0, len(p.roles))
	for role := range p.roles {
		names = append(names, role)
	}
	sort.Strings(names)
	return names
}

func (p Provider) Binding(role string) (RoleBinding, bool) {
	binding, ok := p.roles[strings.TrimSpace(role)]
	return binding, ok
}

// Derive builds a new provider that replaces the listed roles and inherits
// every other binding from p. Overrides must target roles the base already
// defines: a derived provider varies one axis, it does not grow the table.
func (p Provider) Derive(name string, overrides ...RoleBinding) (Provider, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Provider{}, fmt.Errorf("core: derived provider name is required")
	}
	roles := make(map[string]RoleBinding, len(p.roles))
	for role, binding := range p.roles {
		roles[role] = binding
	}
	for _, override := range overrides {
		if err := override.Validate(); err != nil {
			return Provider{}, err
		}
		role := strings.TrimSpace(override.Role)
		if _, exists := roles[role]; !exists {
			return Provider{}, fmt.Errorf(
				"core: provider %q cannot override role %q: not defined by base %q",
				trimmed, role, p.name,
			)
		}
		override.Role = role
		roles[role] = override
	}
	return Provider{name: trimmed, roles: roles}, nil
}

// MultiProvider is an ordered sequence of providers. Lookup probes members
// in order and the first defined binding wins; role-name introspection is
// the union across members.
type MultiProvider struct {
	providers []Provider
}

func NewMultiProvider(providers ...Provider) MultiProvider {
	copied := make([]Provider, len(providers))
	copy(copied, providers)
	return MultiProvider{providers: copied}
}

func (m MultiProvider) Name() string {
	names := make([]string, 0, len(m.providers))
	for _, provider := range m.providers {
		names = append(names, provider.Name())
	}
	return strings.Join(names, "+")
}

func (m MultiProvider) Providers() []Provider {
	copied := make([]Provider, len(m.providers))
	copy(copied, m.providers)
	return copied
}

func (m MultiProvider) RoleNames() []string {
	seen := map[string]struct{}{}
	names := []string{}
	for _, provider := range m.providers {
		for _, role := range provider.RoleNames() {
			if _, exists := seen[role]; exists {
				continue
			}
			seen[role] = struct{}{}
			names = append(names, role)
		}
	}
	sort.Strings(names)
	return names
}

func (m MultiProvider) Binding(role string) (RoleBinding, bool) {
	for _, provider := range m.providers {
		if binding, ok := provider.Binding(role); ok {
			return binding, true
		}
	}
	return RoleBinding{}, false
}

// GetRole is Binding with a typed miss: callers that need the failure to
// carry member names use this instead of the boolean form.
func (m MultiProvider) GetRole(role string) (RoleBinding, error) {
	if binding, ok := m.Binding(role); ok {
		return binding, nil
	}
	names := make([]string, 0, len(m.providers))
	for _, provider := range m.providers {
		names = append(names, provider.Name())
	}
	return RoleBinding{}, &RoleLookupError{Role: strings.TrimSpace(role), Providers: names}
}

var (
	_ RoleSource = Provider{}
	_ RoleSource = MultiProvider{}
)
