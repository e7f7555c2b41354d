package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyServiceType   = errors.New("core: service type is required")
	ErrInvalidVisibility  = errors.New("core: invalid visibility")
	ErrUnknownService     = errors.New("core: unknown service")
	ErrServiceCollision   = errors.New("core: service type collision")
	ErrRoleNotFound       = errors.New("core: role not found")
	ErrProviderResolution = errors.New("core: provider resolution failed")
	ErrInvalidRoleBinding = errors.New("core: invalid role binding")
)

// Visibility classifies how a service endpoint is exposed. The zero value
// means "no preference": callers that never set a visibility keep the
// deployment default, which is distinct from explicitly selecting public.
type Visibility string

const (
	VisibilityUnset    Visibility = ""
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
	VisibilityAdmin    Visibility = "admin"
)

// ParseVisibility normalizes raw input into a closed visibility level.
// Empty input and the literal "unset" both normalize to VisibilityUnset.
func ParseVisibility(value string) (Visibility, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "unset":
		return VisibilityUnset, nil
	case string(VisibilityPublic):
		return VisibilityPublic, nil
	case string(VisibilityInternal):
		return VisibilityInternal, nil
	case string(VisibilityAdmin):
		return VisibilityAdmin, nil
	}
	return VisibilityUnset, fmt.Errorf("%w: %q", ErrInvalidVisibility, value)
}

func (v Visibility) String() string {
	if v == VisibilityUnset {
		return "unset"
	}
	return string(v)
}

// ServiceDescriptor is the mutable per-service preference record. The
// service type is fixed at construction; every other field is owned and
// mutated by the PreferenceStore that instantiated the descriptor.
type ServiceDescriptor struct {
	serviceType string
	serviceName string
	region      string
	version     string
	visibility  Visibility
}

func NewServiceDescriptor(serviceType string) (*ServiceDescriptor, error) {
	trimmed := strings.TrimSpace(serviceType)
	if trimmed == "" {
		return nil, ErrEmptyServiceType
	}
	return &ServiceDescriptor{serviceType: trimmed}, nil
}

func (d *ServiceDescriptor) ServiceType() string {
	if d == nil {
		return ""
	}
	return d.serviceType
}

func (d *ServiceDescriptor) Name() string {
	if d == nil {
		return ""
	}
	return d.serviceName
}

func (d *ServiceDescriptor) SetName(name string) {
	if d == nil {
		return
	}
	d.serviceName = strings.TrimSpace(name)
}

func (d *ServiceDescriptor) Region() string {
	if d == nil {
		return ""
	}
	return d.region
}

func (d *ServiceDescriptor) SetRegion(region string) {
	if d == nil {
		return
	}
	d.region = strings.TrimSpace(region)
}

func (d *ServiceDescriptor) Version() string {
	if d == nil {
		return ""
	}
	return d.version
}

func (d *ServiceDescriptor) SetVersion(version string) {
	if d == nil {
		return
	}
	d.version = strings.TrimSpace(version)
}

func (d *ServiceDescriptor) Visibility() Visibility {
	if d == nil {
		return VisibilityUnset
	}
	return d.visibility
}

// SetVisibility validates against the closed visibility set before
// assigning; the descriptor, not its caller, rejects unknown levels.
func (d *ServiceDescriptor) SetVisibility(value string) error {
	if d == nil {
		return nil
	}
	visibility, err := ParseVisibility(value)
	if err != nil {
		return err
	}
	d.visibility = visibility
	return nil
}

// Clone returns an independent copy for snapshot export; the original
// stays owned by its store.
func (d *ServiceDescriptor) Clone() *ServiceDescriptor {
	if d == nil {
		return nil
	}
	copied := *d
	return &copied
}

// Equal reports field-for-field equality, including the identity key.
func (d *ServiceDescriptor) Equal(other *ServiceDescriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return *d == *other
}

func (d *ServiceDescriptor) String() string {
	if d == nil {
		return ""
	}
	parts := []string{"service_type=" + d.serviceType}
	if d.serviceName != "" {
		parts = append(parts, "service_name="+d.serviceName)
	}
	if d.region != "" {
		parts = append(parts, "region="+d.region)
	}
	if d.version != "" {
		parts = append(parts, "version="+d.version)
	}
	if d.visibility != VisibilityUnset {
		parts = append(parts, "visibility="+string(d.visibility))
	}
	return strings.Join(parts, ",")
}
