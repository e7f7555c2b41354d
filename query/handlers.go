package query

import (
	"context"

	"github.com/goliatone/go-service-catalog/core"
)

type PreferenceReader interface {
	GetPreference(ctx context.Context, serviceType string) (*core.ServiceDescriptor, bool, error)
	ListServices(ctx context.Context) ([]*core.ServiceDescriptor, error)
	ServiceNames() []string
}

type ProviderReader interface {
	Resolve(name string) (core.Provider, error)
	List() []core.Provider
}

// PreferenceResult pairs a descriptor with whether a session ever
// customized it. An un-customized service yields a nil descriptor.
type PreferenceResult struct {
	Descriptor *core.ServiceDescriptor
	Customized bool
}

type GetPreferenceQuery struct {
	reader PreferenceReader
}

func NewGetPreferenceQuery(reader PreferenceReader) *GetPreferenceQuery {
	return &GetPreferenceQuery{reader: reader}
}

func (q *GetPreferenceQuery) Query(ctx context.Context, msg GetPreferenceMessage) (PreferenceResult, error) {
	if q == nil || q.reader == nil {
		return PreferenceResult{}, queryDependencyError("query: preference reader is required")
	}
	descriptor, customized, err := q.reader.GetPreference(ctx, msg.ServiceType)
	if err != nil {
		return PreferenceResult{}, err
	}
	return PreferenceResult{Descriptor: descriptor, Customized: customized}, nil
}

type ListServicesQuery struct {
	reader PreferenceReader
}

func NewListServicesQuery(reader PreferenceReader) *ListServicesQuery {
	return &ListServicesQuery{reader: reader}
}

func (q *ListServicesQuery) Query(ctx context.Context, msg ListServicesMessage) ([]*core.ServiceDescriptor, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: preference reader is required")
	}
	return q.reader.ListServices(ctx)
}

type ListServiceNamesQuery struct {
	reader PreferenceReader
}

func NewListServiceNamesQuery(reader PreferenceReader) *ListServiceNamesQuery {
	return &ListServiceNamesQuery{reader: reader}
}

func (q *ListServiceNamesQuery) Query(ctx context.Context, msg ListServiceNamesMessage) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: preference reader is required")
	}
	return q.reader.ServiceNames(), nil
}

type GetProviderQuery struct {
	reader ProviderReader
}

func NewGetProviderQuery(reader ProviderReader) *GetProviderQuery {
	return &GetProviderQuery{reader: reader}
}

func (q *GetProviderQuery) Query(ctx context.Context, msg GetProviderMessage) (core.Provider, error) {
	if q == nil || q.reader == nil {
		return core.Provider{}, queryDependencyError("query: provider reader is required")
	}
	return q.reader.Resolve(msg.Name)
}

type ListProvidersQuery struct {
	reader ProviderReader
}

func NewListProvidersQuery(reader ProviderReader) *ListProvidersQuery {
	return &ListProvidersQuery{reader: reader}
}

func (q *ListProvidersQuery) Query(ctx context.Context, msg ListProvidersMessage) ([]core.Provider, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: provider reader is required")
	}
	return q.reader.List(), nil
}
