package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Registry is the discovery contract the orchestrator resolves providers
// through. Concrete mechanisms (static table, manifest scan, environment
// registry) live behind this interface.
type Registry interface {
	Register(provider Provider) error
	Resolve(name string) (Provider, error)
	List() []Provider
}

// PreferenceRecord is the detached, persistable form of a customized
// descriptor.
type PreferenceRecord struct {
	ServiceType string
	ServiceName string
	Region      string
	Version     string
	Visibility  Visibility
}

// SnapshotStore persists touched preferences per profile so a later session
// can restore them.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, profileID string, records []PreferenceRecord) error
	LoadSnapshot(ctx context.Context, profileID string) ([]PreferenceRecord, error)
	DeleteSnapshot(ctx context.Context, profileID string) error
}

type StoreProvider interface {
	SnapshotStore() SnapshotStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

// SnapshotInfo describes a completed snapshot save.
type SnapshotInfo struct {
	ProfileID    string
	ServiceTypes []string
	SavedAt      time.Time
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type JobExecutionMessage struct {
	JobID          string
	ScriptPath     string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *JobExecutionMessage) error
}

type JobDelivery interface {
	Message() *JobExecutionMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}

type JobWorkerHook interface {
	OnStart(ctx context.Context, event JobWorkerEvent)
	OnSuccess(ctx context.Context, event JobWorkerEvent)
	OnFailure(ctx context.Context, event JobWorkerEvent)
	OnRetry(ctx context.Context, event JobWorkerEvent)
}

type JobWorkerEvent struct {
	Message   *JobExecutionMessage
	Attempt   int
	Delay     time.Duration
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}
