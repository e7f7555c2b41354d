package adapters_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-command"
	job "github.com/goliatone/go-job"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-service-catalog/adapters/gocommand"
	"github.com/goliatone/go-service-catalog/adapters/gojob"
	"github.com/goliatone/go-service-catalog/adapters/gologger"
	catalogcommand "github.com/goliatone/go-service-catalog/command"
	"github.com/goliatone/go-service-catalog/core"
	catalogquery "github.com/goliatone/go-service-catalog/query"
)

func TestRuntimeCompatibility_GoJobGoCommandGoLogger(t *testing.T) {
	ctx := context.Background()

	logger := &compatLogger{}
	provider := &compatProvider{logger: logger}

	_, _, jobProvider, jobLogger := gologger.ResolveForJob("catalog", provider, nil)
	if jobProvider == nil || jobLogger == nil {
		t.Fatalf("expected go-job logger bridges")
	}

	enqueueProbe := &compatEnqueuer{}
	enqueueAdapter := gojob.NewEnqueuerAdapter(enqueueProbe)
	if err := enqueueAdapter.Enqueue(ctx, &core.JobExecutionMessage{
		JobID:          core.JobIDSnapshotFlush,
		ScriptPath:     "catalog/snapshot_flush",
		Parameters:     map[string]any{"profile_id": "profile_1"},
		IdempotencyKey: "idem_1",
		DedupPolicy:    "drop",
	}); err != nil {
		t.Fatalf("enqueue via gojob adapter: %v", err)
	}
	if enqueueProbe.last == nil || enqueueProbe.last.JobID != core.JobIDSnapshotFlush {
		t.Fatalf("expected go-job message mapping through enqueuer adapter")
	}

	queueRegistry := jobqueuecommand.NewRegistry()
	commandAdapter := gocommand.NewRegistryAdapter(command.NewRegistry())
	if err := commandAdapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	if err := commandAdapter.RegisterCommand(command.CommandFunc[compatMessage](func(context.Context, compatMessage) error {
		return nil
	})); err != nil {
		t.Fatalf("register command: %v", err)
	}
	if err := commandAdapter.Initialize(); err != nil {
		t.Fatalf("initialize command registry: %v", err)
	}
	if _, ok := queueRegistry.Get("catalog.compat.command"); !ok {
		t.Fatalf("expected command resolver hook to mirror command into go-job queue registry")
	}
}

func TestRuntimeCompatibility_CatalogCommandsAndQueriesDispatchThroughWrappers(t *testing.T) {
	ctx := context.Background()
	service, probe := newCompatService(t)
	adapter := gocommand.NewRegistryAdapter(command.NewRegistry())

	setRegionSub, err := gocommand.RegisterAndSubscribe(adapter, catalogcommand.NewSetRegionCommand(service))
	if err != nil {
		t.Fatalf("register set-region wrapper: %v", err)
	}
	defer setRegionSub.Unsubscribe()

	flushSub, err := gocommand.RegisterAndSubscribe(adapter, catalogcommand.NewEnqueueSnapshotFlushCommand(service))
	if err != nil {
		t.Fatalf("register snapshot-flush wrapper: %v", err)
	}
	defer flushSub.Unsubscribe()

	preferenceSub, err := gocommand.RegisterAndSubscribeQuery(adapter, catalogquery.NewGetPreferenceQuery(service))
	if err != nil {
		t.Fatalf("register preference query wrapper: %v", err)
	}
	defer preferenceSub.Unsubscribe()

	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize adapter: %v", err)
	}

	if err := gocommand.Dispatch(ctx, catalogcommand.SetRegionMessage{
		Selector: core.All,
		Region:   "zion",
	}); err != nil {
		t.Fatalf("dispatch set-region: %v", err)
	}

	result, err := gocommand.Query[catalogquery.GetPreferenceMessage, catalogquery.PreferenceResult](
		ctx,
		catalogquery.GetPreferenceMessage{ServiceType: "compute"},
	)
	if err != nil {
		t.Fatalf("query preference: %v", err)
	}
	if !result.Customized || result.Descriptor == nil {
		t.Fatalf("expected customized compute preference, got %+v", result)
	}
	if result.Descriptor.Region() != "zion" {
		t.Fatalf("expected broadcast region through dispatch, got %q", result.Descriptor.Region())
	}

	if err := gocommand.Dispatch(ctx, catalogcommand.EnqueueSnapshotFlushMessage{
		ProfileID: "profile_compat",
	}); err != nil {
		t.Fatalf("dispatch snapshot flush enqueue: %v", err)
	}
	if probe.last == nil || probe.last.JobID != core.JobIDSnapshotFlush {
		t.Fatalf("expected flush job enqueued through gojob adapter")
	}
	if probe.last.Parameters["profile_id"] != "profile_compat" {
		t.Fatalf("expected profile parameter mapping, got %#v", probe.last.Parameters)
	}
}

func newCompatService(t *testing.T) (*core.Service, *compatEnqueuer) {
	t.Helper()

	provider, err := core.NewProvider("testcloud",
		core.RoleBinding{
			Role:          core.RoleAuth,
			NewAuthPlugin: func() core.AuthPlugin { return compatAuthPlugin{} },
		},
		compatServiceBinding("compute"),
		compatServiceBinding("identity"),
	)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	probe := &compatEnqueuer{}
	service, err := core.NewService(core.Config{},
		core.WithRoleSource(provider),
		core.WithJobEnqueuer(gojob.NewEnqueuerAdapter(probe)),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service, probe
}

type compatAuthPlugin struct{}

func (compatAuthPlugin) AuthVersion() string { return "discoverable" }

func compatServiceBinding(serviceType string) core.RoleBinding {
	return core.RoleBinding{
		Role: serviceType,
		NewDescriptor: func() (*core.ServiceDescriptor, error) {
			return core.NewServiceDescriptor(serviceType)
		},
	}
}

type compatMessage struct{}

func (compatMessage) Type() string { return "catalog.compat.command" }

type compatEnqueuer struct {
	last *job.ExecutionMessage
}

func (e *compatEnqueuer) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	e.last = msg
	return nil
}

type compatProvider struct {
	logger glog.Logger
}

func (p *compatProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type compatLogger struct{}

func (compatLogger) Trace(string, ...any)                    {}
func (compatLogger) Debug(string, ...any)                    {}
func (compatLogger) Info(string, ...any)                     {}
func (compatLogger) Warn(string, ...any)                     {}
func (compatLogger) Error(string, ...any)                    {}
func (compatLogger) Fatal(string, ...any)                    {}
func (compatLogger) WithContext(context.Context) glog.Logger { return compatLogger{} }
