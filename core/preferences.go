package core

import (
	"fmt"
	"sort"
	"strings"
)

// All is the wildcard selector: apply a preference to every known service.
const All = "*"

// PreferenceStore materializes one descriptor per non-auth role of its role
// source and tracks which of them a caller has customized. It is owned by a
// single session configuration and performs no internal locking; concurrent
// callers must serialize externally.
type PreferenceStore struct {
	source            RoleSource
	services          map[string]*ServiceDescriptor
	preferences       map[string]*ServiceDescriptor
	serviceNames      []string
	defaultVisibility Visibility
}

type PreferenceStoreOption func(*PreferenceStore)

// WithDefaultVisibility sets the visibility every descriptor is normalized
// to at construction. The default is VisibilityUnset.
func WithDefaultVisibility(visibility Visibility) PreferenceStoreOption {
	return func(s *PreferenceStore) {
		s.defaultVisibility = visibility
	}
}

// NewPreferenceStore instantiates one descriptor per non-auth role known to
// source. Two roles resolving to the same service type fail construction:
// silently overwriting would make the surviving binding depend on iteration
// order.
func NewPreferenceStore(source RoleSource, opts ...PreferenceStoreOption) (*PreferenceStore, error) {
	if source == nil {
		return nil, fmt.Errorf("core: role source is required")
	}
	store := &PreferenceStore{
		source:      source,
		services:    make(map[string]*ServiceDescriptor),
		preferences: make(map[string]*ServiceDescriptor),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(store)
	}

	roleByService := map[string]string{}
	for _, role := range source.RoleNames() {
		if role == RoleAuth {
			continue
		}
		binding, ok := source.Binding(role)
		if !ok {
			return nil, fmt.Errorf("%w: source %q lists role %q but does not bind it",
				ErrRoleNotFound, source.Name(), role)
		}
		if err := binding.Validate(); err != nil {
			return nil, err
		}
		descriptor, err := binding.NewDescriptor()
		if err != nil {
			return nil, fmt.Errorf("core: role %q descriptor factory failed: %w", role, err)
		}
		if descriptor == nil {
			return nil, fmt.Errorf("core: role %q descriptor factory returned nil", role)
		}
		serviceType := descriptor.ServiceType()
		if serviceType == "" {
			return nil, fmt.Errorf("core: role %q produced a descriptor with %v", role, ErrEmptyServiceType)
		}
		if previous, exists := roleByService[serviceType]; exists {
			return nil, &ServiceCollisionError{
				ServiceType: serviceType,
				Roles:       []string{previous, role},
			}
		}
		descriptor.visibility = store.defaultVisibility
		roleByService[serviceType] = role
		store.services[serviceType] = descriptor
	}

	store.serviceNames = make([]string, 0, len(store.services))
	for serviceType := range store.services {
		store.serviceNames = append(store.serviceNames, serviceType)
	}
	sort.Strings(store.serviceNames)
	return store, nil
}

// ServiceNames returns the sorted service types known to the store,
// computed once at construction.
func (s *PreferenceStore) ServiceNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.serviceNames))
	copy(names, s.serviceNames)
	return names
}

// GetServices returns every known descriptor regardless of customization
// state, each exactly once.
func (s *PreferenceStore) GetServices() []*ServiceDescriptor {
	if s == nil {
		return nil
	}
	services := make([]*ServiceDescriptor, 0, len(s.serviceNames))
	for _, serviceType := range s.serviceNames {
		services = append(services, s.services[serviceType])
	}
	return services
}

// GetPreference returns the descriptor for serviceType and whether a setter
// has ever touched it. "Never customized" and "customized back to a default"
// are different answers; only the former reports touched=false.
func (s *PreferenceStore) GetPreference(serviceType string) (*ServiceDescriptor, bool, error) {
	if s == nil {
		return nil, false, fmt.Errorf("core: preference store is not configured")
	}
	trimmed := strings.TrimSpace(serviceType)
	if _, known := s.services[trimmed]; !known {
		return nil, false, s.unknownService(trimmed)
	}
	descriptor, touched := s.preferences[trimmed]
	if !touched {
		return nil, false, nil
	}
	return descriptor, true, nil
}

// SetName sets the desired deployment name for the selected service(s).
func (s *PreferenceStore) SetName(selector, name string) error {
	return s.apply(selector, func(d *ServiceDescriptor) error {
		d.SetName(name)
		return nil
	})
}

// SetRegion sets the desired region for the selected service(s).
func (s *PreferenceStore) SetRegion(selector, region string) error {
	return s.apply(selector, func(d *ServiceDescriptor) error {
		d.SetRegion(region)
		return nil
	})
}

// SetVersion sets the desired API version for the selected service(s).
func (s *PreferenceStore) SetVersion(selector, version string) error {
	return s.apply(selector, func(d *ServiceDescriptor) error {
		d.SetVersion(version)
		return nil
	})
}

// SetVisibility sets the desired endpoint visibility for the selected
// service(s). Validation belongs to the descriptor: an unknown level fails
// there, after the descriptor has already been marked as touched.
func (s *PreferenceStore) SetVisibility(selector, visibility string) error {
	return s.apply(selector, func(d *ServiceDescriptor) error {
		return d.SetVisibility(visibility)
	})
}

// apply expands the selector and runs mutate over each target through the
// single-service path. A wildcard broadcast is not transactional: services
// updated before a failure stay updated.
func (s *PreferenceStore) apply(selector string, mutate func(*ServiceDescriptor) error) error {
	if s == nil {
		return fmt.Errorf("core: preference store is not configured")
	}
	targets := []string{strings.TrimSpace(selector)}
	if targets[0] == All {
		targets = s.serviceNames
	}
	for _, serviceType := range targets {
		descriptor, err := s.touch(serviceType)
		if err != nil {
			return err
		}
		if err := mutate(descriptor); err != nil {
			return err
		}
	}
	return nil
}

// touch validates the key before any mutation, then records the descriptor
// as customized. Re-touching is idempotent.
func (s *PreferenceStore) touch(serviceType string) (*ServiceDescriptor, error) {
	descriptor, known := s.services[serviceType]
	if !known {
		return nil, s.unknownService(serviceType)
	}
	s.preferences[serviceType] = descriptor
	return descriptor, nil
}

func (s *PreferenceStore) unknownService(serviceType string) error {
	return &UnknownServiceError{
		ServiceType: serviceType,
		Known:       s.ServiceNames(),
	}
}

// Export captures the touched preferences as detached records, sorted by
// service type, for snapshot persistence.
func (s *PreferenceStore) Export() []PreferenceRecord {
	if s == nil {
		return nil
	}
	records := make([]PreferenceRecord, 0, len(s.preferences))
	for _, serviceType := range s.serviceNames {
		descriptor, touched := s.preferences[serviceType]
		if !touched {
			continue
		}
		records = append(records, PreferenceRecord{
			ServiceType: descriptor.ServiceType(),
			ServiceName: descriptor.Name(),
			Region:      descriptor.Region(),
			Version:     descriptor.Version(),
			Visibility:  descriptor.Visibility(),
		})
	}
	return records
}

// Apply restores previously exported records through the same validation
// path the setters use. Like a wildcard broadcast it is not transactional.
func (s *PreferenceStore) Apply(records []PreferenceRecord) error {
	if s == nil {
		return fmt.Errorf("core: preference store is not configured")
	}
	for _, record := range records {
		descriptor, err := s.touch(strings.TrimSpace(record.ServiceType))
		if err != nil {
			return err
		}
		descriptor.SetName(record.ServiceName)
		descriptor.SetRegion(record.Region)
		descriptor.SetVersion(record.Version)
		if err := descriptor.SetVisibility(string(record.Visibility)); err != nil {
			return err
		}
	}
	return nil
}
