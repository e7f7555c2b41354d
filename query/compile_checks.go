package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-service-catalog/core"
)

var (
	_ gocmd.Querier[GetPreferenceMessage, PreferenceResult]         = (*GetPreferenceQuery)(nil)
	_ gocmd.Querier[ListServicesMessage, []*core.ServiceDescriptor] = (*ListServicesQuery)(nil)
	_ gocmd.Querier[ListServiceNamesMessage, []string]              = (*ListServiceNamesQuery)(nil)
	_ gocmd.Querier[GetProviderMessage, core.Provider]              = (*GetProviderQuery)(nil)
	_ gocmd.Querier[ListProvidersMessage, []core.Provider]          = (*ListProvidersQuery)(nil)
)
