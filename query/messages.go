package query

import "strings"

const (
	TypeGetPreference    = "catalog.query.preference.get"
	TypeListServices     = "catalog.query.service.list"
	TypeListServiceNames = "catalog.query.service.names"
	TypeGetProvider      = "catalog.query.provider.get"
	TypeListProviders    = "catalog.query.provider.list"
)

type GetPreferenceMessage struct {
	ServiceType string
}

func (GetPreferenceMessage) Type() string { return TypeGetPreference }

func (m GetPreferenceMessage) Validate() error {
	if strings.TrimSpace(m.ServiceType) == "" {
		return queryValidationError("service_type", "service type is required")
	}
	return nil
}

type ListServicesMessage struct{}

func (ListServicesMessage) Type() string { return TypeListServices }

func (ListServicesMessage) Validate() error { return nil }

type ListServiceNamesMessage struct{}

func (ListServiceNamesMessage) Type() string { return TypeListServiceNames }

func (ListServiceNamesMessage) Validate() error { return nil }

type GetProviderMessage struct {
	Name string
}

func (GetProviderMessage) Type() string { return TypeGetProvider }

func (m GetProviderMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return queryValidationError("name", "provider name is required")
	}
	return nil
}

type ListProvidersMessage struct{}

func (ListProvidersMessage) Type() string { return TypeListProviders }

func (ListProvidersMessage) Validate() error { return nil }
