package core

import "testing"

type staticAuthPlugin struct {
	version string
}

func (p staticAuthPlugin) AuthVersion() string { return p.version }

func descriptorBinding(role string, serviceType string) RoleBinding {
	return RoleBinding{
		Role: role,
		NewDescriptor: func() (*ServiceDescriptor, error) {
			return NewServiceDescriptor(serviceType)
		},
	}
}

func authBinding(version string) RoleBinding {
	return RoleBinding{
		Role: RoleAuth,
		NewAuthPlugin: func() AuthPlugin {
			return staticAuthPlugin{version: version}
		},
	}
}

func newTestProvider(t *testing.T, name string) Provider {
	t.Helper()
	provider, err := NewProvider(name,
		authBinding("discoverable"),
		descriptorBinding("compute", "compute"),
		descriptorBinding("identity", "identity"),
		descriptorBinding("network", "network"),
		descriptorBinding("object-store", "object-store"),
	)
	if err != nil {
		t.Fatalf("new provider %s: %v", name, err)
	}
	return provider
}

func newTestStore(t *testing.T, opts ...PreferenceStoreOption) *PreferenceStore {
	t.Helper()
	store, err := NewPreferenceStore(newTestProvider(t, "testcloud"), opts...)
	if err != nil {
		t.Fatalf("new preference store: %v", err)
	}
	return store
}
