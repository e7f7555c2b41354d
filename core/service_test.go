package core

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type memorySnapshotStore struct {
	snapshots map[string][]PreferenceRecord
	saveErr   error
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{snapshots: map[string][]PreferenceRecord{}}
}

func (s *memorySnapshotStore) SaveSnapshot(_ context.Context, profileID string, records []PreferenceRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	stored := make([]PreferenceRecord, len(records))
	copy(stored, records)
	s.snapshots[profileID] = stored
	return nil
}

func (s *memorySnapshotStore) LoadSnapshot(_ context.Context, profileID string) ([]PreferenceRecord, error) {
	records, ok := s.snapshots[profileID]
	if !ok {
		return nil, &UnknownServiceError{ServiceType: profileID}
	}
	return records, nil
}

func (s *memorySnapshotStore) DeleteSnapshot(_ context.Context, profileID string) error {
	delete(s.snapshots, profileID)
	return nil
}

type recordingEnqueuer struct {
	messages []*JobExecutionMessage
	err      error
}

func (e *recordingEnqueuer) Enqueue(_ context.Context, msg *JobExecutionMessage) error {
	if e.err != nil {
		return e.err
	}
	e.messages = append(e.messages, msg)
	return nil
}

func newTestService(t *testing.T, options ...Option) *Service {
	t.Helper()
	base := []Option{WithRoleSource(newTestProvider(t, "testcloud"))}
	service, err := NewService(Config{}, append(base, options...)...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestNewService_ResolvesProviderFromRegistry(t *testing.T) {
	registry := NewProviderRegistry()
	if err := registry.Register(newTestProvider(t, "identity")); err != nil {
		t.Fatalf("register: %v", err)
	}

	service, err := NewService(Config{}, WithRegistry(registry))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if service.Config().DefaultProvider != "identity" {
		t.Fatalf("unexpected default provider: %q", service.Config().DefaultProvider)
	}
	if len(service.ServiceNames()) == 0 {
		t.Fatalf("expected discovery to populate the service list")
	}
}

func TestNewService_UnresolvableProviderFails(t *testing.T) {
	_, err := NewService(Config{DefaultProvider: "ghost"})
	if err == nil {
		t.Fatalf("expected construction to fail without a registered provider")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected mapped rich error, got %T", err)
	}
	if richErr.TextCode != CatalogErrorProviderResolution {
		t.Fatalf("unexpected text code: %q", richErr.TextCode)
	}
}

func TestNewService_RuntimeConfigOverridesDefaults(t *testing.T) {
	service := newTestService(t)
	if service.Config().ServiceName != "catalog" {
		t.Fatalf("expected default service name, got %q", service.Config().ServiceName)
	}

	custom, err := NewService(
		Config{ServiceName: "catalog-test", DefaultVisibility: "public"},
		WithRoleSource(newTestProvider(t, "testcloud")),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if custom.Config().ServiceName != "catalog-test" {
		t.Fatalf("runtime service name not applied: %q", custom.Config().ServiceName)
	}
	for _, descriptor := range custom.Preferences().GetServices() {
		if descriptor.Visibility() != VisibilityPublic {
			t.Fatalf("configured default visibility not applied to %q", descriptor.ServiceType())
		}
	}
}

func TestNewService_InvalidDefaultVisibilityFails(t *testing.T) {
	_, err := NewService(
		Config{DefaultVisibility: "sideways"},
		WithRoleSource(newTestProvider(t, "testcloud")),
	)
	if err == nil {
		t.Fatalf("expected invalid default visibility to fail construction")
	}
}

func TestService_SettersUpdatePreferences(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if err := service.SetName(ctx, All, "matrix"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := service.SetRegion(ctx, "compute", "zion"); err != nil {
		t.Fatalf("set region: %v", err)
	}
	if err := service.SetVersion(ctx, "identity", "v3"); err != nil {
		t.Fatalf("set version: %v", err)
	}
	if err := service.SetVisibility(ctx, "identity", "internal"); err != nil {
		t.Fatalf("set visibility: %v", err)
	}

	descriptor, touched, err := service.GetPreference(ctx, "identity")
	if err != nil || !touched {
		t.Fatalf("get identity: touched=%v err=%v", touched, err)
	}
	if descriptor.Name() != "matrix" || descriptor.Version() != "v3" || descriptor.Visibility() != VisibilityInternal {
		t.Fatalf("unexpected identity descriptor: %s", descriptor)
	}

	services, err := service.ListServices(ctx)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) != len(service.ServiceNames()) {
		t.Fatalf("list and names disagree: %d vs %d", len(services), len(service.ServiceNames()))
	}
}

func TestService_SetterMapsUnknownService(t *testing.T) {
	service := newTestService(t)

	err := service.SetName(context.Background(), "bogus", "matrix")
	if err == nil {
		t.Fatalf("expected unknown service to fail")
	}
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("mapped error must keep the sentinel chain, got %v", err)
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected mapped rich error, got %T", err)
	}
	if richErr.TextCode != CatalogErrorUnknownService {
		t.Fatalf("unexpected text code: %q", richErr.TextCode)
	}
}

func TestService_SnapshotRoundTrip(t *testing.T) {
	store := newMemorySnapshotStore()
	service := newTestService(t, WithSnapshotStore(store))
	ctx := context.Background()

	if err := service.SetRegion(ctx, All, "zion"); err != nil {
		t.Fatalf("set region: %v", err)
	}
	if err := service.SetVersion(ctx, "identity", "v3"); err != nil {
		t.Fatalf("set version: %v", err)
	}

	info, err := service.SaveSnapshot(ctx, "profile-1")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if info.ProfileID != "profile-1" {
		t.Fatalf("unexpected profile id: %q", info.ProfileID)
	}
	if len(info.ServiceTypes) != len(service.ServiceNames()) {
		t.Fatalf("snapshot must cover every touched service, got %v", info.ServiceTypes)
	}
	if info.SavedAt.IsZero() {
		t.Fatalf("save must stamp completion time")
	}

	restored := newTestService(t, WithSnapshotStore(store))
	if err := restored.ApplySnapshot(ctx, "profile-1"); err != nil {
		t.Fatalf("apply snapshot: %v", err)
	}
	descriptor, touched, err := restored.GetPreference(ctx, "identity")
	if err != nil || !touched {
		t.Fatalf("get identity after apply: touched=%v err=%v", touched, err)
	}
	if descriptor.Region() != "zion" || descriptor.Version() != "v3" {
		t.Fatalf("restored descriptor mismatch: %s", descriptor)
	}

	if err := service.DeleteSnapshot(ctx, "profile-1"); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}
	if _, ok := store.snapshots["profile-1"]; ok {
		t.Fatalf("snapshot not removed from store")
	}
}

func TestService_SnapshotWithoutStoreFails(t *testing.T) {
	service := newTestService(t)

	_, err := service.SaveSnapshot(context.Background(), "profile-1")
	if err == nil {
		t.Fatalf("expected missing snapshot store to fail")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.TextCode != CatalogErrorSnapshotFailed {
		t.Fatalf("unexpected text code: %q", richErr.TextCode)
	}
}

func TestService_ResolveProfileIDFallsBackToConfig(t *testing.T) {
	store := newMemorySnapshotStore()
	service, err := NewService(
		Config{Snapshot: SnapshotConfig{ProfileID: "configured-profile"}},
		WithRoleSource(newTestProvider(t, "testcloud")),
		WithSnapshotStore(store),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	info, err := service.SaveSnapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if info.ProfileID != "configured-profile" {
		t.Fatalf("expected fallback to configured profile, got %q", info.ProfileID)
	}

	// Without an argument or configured profile a fresh id is generated.
	blank := newTestService(t, WithSnapshotStore(store))
	generated, err := blank.SaveSnapshot(context.Background(), "  ")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if generated.ProfileID == "" {
		t.Fatalf("expected a generated profile id")
	}
}

func TestService_EnqueueSnapshotFlush(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	service := newTestService(t, WithJobEnqueuer(enqueuer))

	if err := service.EnqueueSnapshotFlush(context.Background(), "profile-1"); err != nil {
		t.Fatalf("enqueue flush: %v", err)
	}
	if len(enqueuer.messages) != 1 {
		t.Fatalf("expected one enqueued message, got %d", len(enqueuer.messages))
	}
	msg := enqueuer.messages[0]
	if msg.JobID != JobIDSnapshotFlush {
		t.Fatalf("unexpected job id: %q", msg.JobID)
	}
	if msg.Parameters["profile_id"] != "profile-1" {
		t.Fatalf("unexpected parameters: %v", msg.Parameters)
	}
	if msg.IdempotencyKey != JobIDSnapshotFlush+"::profile-1" {
		t.Fatalf("unexpected idempotency key: %q", msg.IdempotencyKey)
	}
}

func TestService_EnqueueWithoutEnqueuerFails(t *testing.T) {
	service := newTestService(t)
	if err := service.EnqueueSnapshotFlush(context.Background(), "profile-1"); err == nil {
		t.Fatalf("expected missing enqueuer to fail")
	}
}
