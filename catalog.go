package catalog

import "github.com/goliatone/go-service-catalog/core"

type Config = core.Config

type SnapshotConfig = core.SnapshotConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type ServiceDescriptor = core.ServiceDescriptor
type Provider = core.Provider
type MultiProvider = core.MultiProvider
type ProviderRegistry = core.ProviderRegistry
type PreferenceStore = core.PreferenceStore
type PreferenceRecord = core.PreferenceRecord
type SnapshotStore = core.SnapshotStore
type SnapshotInfo = core.SnapshotInfo
type Visibility = core.Visibility

const All = core.All

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithRegistry          = core.WithRegistry
	WithRoleSource        = core.WithRoleSource
	WithSnapshotStore     = core.WithSnapshotStore
	WithJobEnqueuer       = core.WithJobEnqueuer
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func NewProviderRegistry() *ProviderRegistry {
	return core.NewProviderRegistry()
}
