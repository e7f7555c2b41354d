package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ProviderRegistry is the injected discovery mechanism: provider bundles
// register under a name and Resolve requires exactly one match, the same
// contract an entry-point or manifest scan would satisfy. Multiple sources
// may legitimately claim the same name; that only becomes an error when
// someone asks for it.
type ProviderRegistry struct {
	mu            sync.RWMutex
	registrations map[string][]Provider
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{registrations: make(map[string][]Provider)}
}

func (r *ProviderRegistry) Register(provider Provider) error {
	name := strings.TrimSpace(provider.Name())
	if name == "" {
		return fmt.Errorf("core: provider name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations[name] = append(r.registrations[name], provider)
	return nil
}

// Resolve returns the single provider registered under name. Zero or
// multiple registrations fail with ErrProviderResolution; ambiguity is a
// configuration mistake, never something to guess through.
func (r *ProviderRegistry) Resolve(name string) (Provider, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Provider{}, fmt.Errorf("%w: provider name is required", ErrProviderResolution)
	}
	r.mu.RLock()
	matches := r.registrations[trimmed]
	r.mu.RUnlock()
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Provider{}, fmt.Errorf(
			"%w: no provider registered as %q (known: %v)",
			ErrProviderResolution, trimmed, r.names(),
		)
	default:
		return Provider{}, fmt.Errorf(
			"%w: provider name %q is ambiguous: %d registrations",
			ErrProviderResolution, trimmed, len(matches),
		)
	}
}

func (r *ProviderRegistry) Get(name string) (Provider, bool) {
	provider, err := r.Resolve(name)
	if err != nil {
		return Provider{}, false
	}
	return provider, true
}

func (r *ProviderRegistry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.registrations))
	for name := range r.registrations {
		names = append(names, name)
	}
	sort.Strings(names)
	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		providers = append(providers, r.registrations[name]...)
	}
	return providers
}

func (r *ProviderRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.registrations))
	for name := range r.registrations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ Registry = (*ProviderRegistry)(nil)
