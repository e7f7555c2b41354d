package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const (
	JobIDSnapshotFlush = "catalog.snapshot.flush"
	JobIDSnapshotApply = "catalog.snapshot.apply"
)

// Service wraps the pure preference store with configuration resolution,
// discovery, snapshot persistence, and observability. Construction performs
// provider discovery exactly once; every later operation is a synchronous
// in-memory call plus logging and metrics.
type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	registry          Registry
	snapshotStore     SnapshotStore
	jobEnqueuer       JobEnqueuer
	persistenceClient any
	repositoryFactory any
	preferences       *PreferenceStore
}

type ServiceDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	Registry          Registry
	SnapshotStore     SnapshotStore
	JobEnqueuer       JobEnqueuer
	PersistenceClient any
	RepositoryFactory any
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("catalog", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("catalog"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewProviderRegistry()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.snapshotStore == nil && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			storeProvider, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if storeProvider != nil {
				builder.snapshotStore = storeProvider.SnapshotStore()
			}
		} else if storeProvider, ok := builder.repositoryFactory.(StoreProvider); ok {
			builder.snapshotStore = storeProvider.SnapshotStore()
		}
	}

	source := builder.roleSource
	if source == nil {
		resolved, resolveErr := builder.registry.Resolve(finalConfig.DefaultProvider)
		if resolveErr != nil {
			return nil, mapBuildError(builder.errorMapper, resolveErr)
		}
		source = resolved
	}

	defaultVisibility, err := ParseVisibility(finalConfig.DefaultVisibility)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	preferences, err := NewPreferenceStore(source, WithDefaultVisibility(defaultVisibility))
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		registry:          builder.registry,
		snapshotStore:     builder.snapshotStore,
		jobEnqueuer:       builder.jobEnqueuer,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		preferences:       preferences,
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:            s.logger,
		LoggerProvider:    s.loggerProvider,
		MetricsRecorder:   s.metricsRecorder,
		ErrorFactory:      s.errorFactory,
		ErrorMapper:       s.errorMapper,
		ConfigProvider:    s.configProvider,
		OptionsResolver:   s.optionsResolver,
		Registry:          s.registry,
		SnapshotStore:     s.snapshotStore,
		JobEnqueuer:       s.jobEnqueuer,
		PersistenceClient: s.persistenceClient,
		RepositoryFactory: s.repositoryFactory,
	}
}

// Preferences exposes the underlying store for callers that already hold
// the single-owner session context.
func (s *Service) Preferences() *PreferenceStore {
	if s == nil {
		return nil
	}
	return s.preferences
}

func (s *Service) SetName(ctx context.Context, selector string, name string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "preference_set_name", err, map[string]any{
			"service_type": selector,
		})
	}()
	if s == nil || s.preferences == nil {
		err = s.dependencyError("preference store is not configured")
		return err
	}
	if applyErr := s.preferences.SetName(selector, name); applyErr != nil {
		err = s.mapError(applyErr)
		return err
	}
	return nil
}

func (s *Service) SetRegion(ctx context.Context, selector string, region string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "preference_set_region", err, map[string]any{
			"service_type": selector,
		})
	}()
	if s == nil || s.preferences == nil {
		err = s.dependencyError("preference store is not configured")
		return err
	}
	if applyErr := s.preferences.SetRegion(selector, region); applyErr != nil {
		err = s.mapError(applyErr)
		return err
	}
	return nil
}

func (s *Service) SetVersion(ctx context.Context, selector string, version string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "preference_set_version", err, map[string]any{
			"service_type": selector,
		})
	}()
	if s == nil || s.preferences == nil {
		err = s.dependencyError("preference store is not configured")
		return err
	}
	if applyErr := s.preferences.SetVersion(selector, version); applyErr != nil {
		err = s.mapError(applyErr)
		return err
	}
	return nil
}

func (s *Service) SetVisibility(ctx context.Context, selector string, visibility string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "preference_set_visibility", err, map[string]any{
			"service_type": selector,
		})
	}()
	if s == nil || s.preferences == nil {
		err = s.dependencyError("preference store is not configured")
		return err
	}
	if applyErr := s.preferences.SetVisibility(selector, visibility); applyErr != nil {
		err = s.mapError(applyErr)
		return err
	}
	return nil
}

func (s *Service) GetPreference(ctx context.Context, serviceType string) (*ServiceDescriptor, bool, error) {
	if s == nil || s.preferences == nil {
		return nil, false, s.dependencyError("preference store is not configured")
	}
	descriptor, touched, err := s.preferences.GetPreference(serviceType)
	if err != nil {
		return nil, false, s.mapError(err)
	}
	return descriptor, touched, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*ServiceDescriptor, error) {
	if s == nil || s.preferences == nil {
		return nil, s.dependencyError("preference store is not configured")
	}
	return s.preferences.GetServices(), nil
}

func (s *Service) ServiceNames() []string {
	if s == nil || s.preferences == nil {
		return nil
	}
	return s.preferences.ServiceNames()
}

// SaveSnapshot persists the touched preferences under a profile id. An
// empty id falls back to the configured profile, then to a fresh uuid.
func (s *Service) SaveSnapshot(ctx context.Context, profileID string) (info SnapshotInfo, err error) {
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "snapshot_save", err, map[string]any{
			"profile_id": info.ProfileID,
		})
	}()
	if s == nil || s.preferences == nil {
		err = s.dependencyError("preference store is not configured")
		return SnapshotInfo{}, err
	}
	if s.snapshotStore == nil {
		err = s.operationError("snapshot store is not configured")
		return SnapshotInfo{}, err
	}

	info.ProfileID = s.resolveProfileID(profileID)
	records := s.preferences.Export()
	if saveErr := s.snapshotStore.SaveSnapshot(ctx, info.ProfileID, records); saveErr != nil {
		err = s.mapError(saveErr)
		return SnapshotInfo{}, err
	}
	info.SavedAt = time.Now().UTC()
	info.ServiceTypes = make([]string, 0, len(records))
	for _, record := range records {
		info.ServiceTypes = append(info.ServiceTypes, record.ServiceType)
	}
	return info, nil
}

// ApplySnapshot loads a stored profile and replays it through the setters'
// validation path. Replay is not transactional, matching broadcast
// semantics.
func (s *Service) ApplySnapshot(ctx context.Context, profileID string) (err error) {
	startedAt := time.Now()
	resolvedProfile := s.resolveProfileID(profileID)
	defer func() {
		s.observeOperation(ctx, startedAt, "snapshot_apply", err, map[string]any{
			"profile_id": resolvedProfile,
		})
	}()
	if s == nil || s.preferences == nil {
		err = s.dependencyError("preference store is not configured")
		return err
	}
	if s.snapshotStore == nil {
		err = s.operationError("snapshot store is not configured")
		return err
	}
	records, loadErr := s.snapshotStore.LoadSnapshot(ctx, resolvedProfile)
	if loadErr != nil {
		err = s.mapError(loadErr)
		return err
	}
	if applyErr := s.preferences.Apply(records); applyErr != nil {
		err = s.mapError(applyErr)
		return err
	}
	return nil
}

func (s *Service) DeleteSnapshot(ctx context.Context, profileID string) (err error) {
	startedAt := time.Now()
	resolvedProfile := s.resolveProfileID(profileID)
	defer func() {
		s.observeOperation(ctx, startedAt, "snapshot_delete", err, map[string]any{
			"profile_id": resolvedProfile,
		})
	}()
	if s == nil {
		return nil
	}
	if s.snapshotStore == nil {
		err = s.operationError("snapshot store is not configured")
		return err
	}
	if deleteErr := s.snapshotStore.DeleteSnapshot(ctx, resolvedProfile); deleteErr != nil {
		err = s.mapError(deleteErr)
		return err
	}
	return nil
}

// EnqueueSnapshotFlush defers snapshot persistence to a queue worker.
func (s *Service) EnqueueSnapshotFlush(ctx context.Context, profileID string) (err error) {
	startedAt := time.Now()
	resolvedProfile := s.resolveProfileID(profileID)
	defer func() {
		s.observeOperation(ctx, startedAt, "snapshot_flush_enqueue", err, map[string]any{
			"profile_id": resolvedProfile,
		})
	}()
	if s == nil {
		return nil
	}
	if s.jobEnqueuer == nil {
		err = s.operationError("job enqueuer is not configured")
		return err
	}
	msg := &JobExecutionMessage{
		JobID: JobIDSnapshotFlush,
		Parameters: map[string]any{
			"profile_id": resolvedProfile,
		},
		IdempotencyKey: JobIDSnapshotFlush + "::" + resolvedProfile,
	}
	if enqueueErr := s.jobEnqueuer.Enqueue(ctx, msg); enqueueErr != nil {
		err = s.mapError(enqueueErr)
		return err
	}
	return nil
}

func (s *Service) resolveProfileID(profileID string) string {
	trimmed := strings.TrimSpace(profileID)
	if trimmed != "" {
		return trimmed
	}
	if s != nil {
		if configured := strings.TrimSpace(s.config.Snapshot.ProfileID); configured != "" {
			return configured
		}
	}
	return uuid.NewString()
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) dependencyError(message string) error {
	return s.richError(message, goerrors.CategoryInternal, CatalogErrorInternal)
}

func (s *Service) operationError(message string) error {
	return s.richError(message, goerrors.CategoryOperation, CatalogErrorSnapshotFailed)
}

func (s *Service) richError(message string, category goerrors.Category, textCode string) error {
	factory := goerrors.New
	if s != nil && s.errorFactory != nil {
		factory = s.errorFactory
	}
	return ensureCatalogErrorEnvelope(
		factory(fmt.Sprintf("core: %s", message), category).WithTextCode(textCode),
	)
}
