package catalog

import (
	"fmt"

	catalogcommand "github.com/goliatone/go-service-catalog/command"
	"github.com/goliatone/go-service-catalog/core"
	catalogquery "github.com/goliatone/go-service-catalog/query"
)

type CommandQueryService interface {
	catalogcommand.MutatingService
	catalogquery.PreferenceReader
}

type Commands struct {
	SetName              *catalogcommand.SetNameCommand
	SetRegion            *catalogcommand.SetRegionCommand
	SetVersion           *catalogcommand.SetVersionCommand
	SetVisibility        *catalogcommand.SetVisibilityCommand
	SaveSnapshot         *catalogcommand.SaveSnapshotCommand
	ApplySnapshot        *catalogcommand.ApplySnapshotCommand
	DeleteSnapshot       *catalogcommand.DeleteSnapshotCommand
	EnqueueSnapshotFlush *catalogcommand.EnqueueSnapshotFlushCommand
}

type Queries struct {
	GetPreference    *catalogquery.GetPreferenceQuery
	ListServices     *catalogquery.ListServicesQuery
	ListServiceNames *catalogquery.ListServiceNamesQuery
	GetProvider      *catalogquery.GetProviderQuery
	ListProviders    *catalogquery.ListProvidersQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	providerReader catalogquery.ProviderReader
}

func WithProviderReader(reader catalogquery.ProviderReader) FacadeOption {
	return func(options *facadeOptions) {
		options.providerReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("catalog: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reader := cfg.providerReader
	if reader == nil {
		reader = resolveProviderReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		SetName:              catalogcommand.NewSetNameCommand(service),
		SetRegion:            catalogcommand.NewSetRegionCommand(service),
		SetVersion:           catalogcommand.NewSetVersionCommand(service),
		SetVisibility:        catalogcommand.NewSetVisibilityCommand(service),
		SaveSnapshot:         catalogcommand.NewSaveSnapshotCommand(service),
		ApplySnapshot:        catalogcommand.NewApplySnapshotCommand(service),
		DeleteSnapshot:       catalogcommand.NewDeleteSnapshotCommand(service),
		EnqueueSnapshotFlush: catalogcommand.NewEnqueueSnapshotFlushCommand(service),
	}
	facade.queries = Queries{
		GetPreference:    catalogquery.NewGetPreferenceQuery(service),
		ListServices:     catalogquery.NewListServicesQuery(service),
		ListServiceNames: catalogquery.NewListServiceNamesQuery(service),
		GetProvider:      catalogquery.NewGetProviderQuery(reader),
		ListProviders:    catalogquery.NewListProvidersQuery(reader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// resolveProviderReader falls back to the orchestrator's registry when the
// caller did not supply a provider reader. Provider queries surface a
// dependency error when neither is available.
func resolveProviderReader(service CommandQueryService) catalogquery.ProviderReader {
	if service == nil {
		return nil
	}
	if reader, ok := service.(catalogquery.ProviderReader); ok {
		return reader
	}
	provider, ok := service.(interface {
		Dependencies() core.ServiceDependencies
	})
	if !ok {
		return nil
	}
	deps := provider.Dependencies()
	if deps.Registry == nil {
		return nil
	}
	return deps.Registry
}
