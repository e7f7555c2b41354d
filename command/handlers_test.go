package command

import (
	"context"
	"testing"
	"time"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-service-catalog/core"
)

type stubMutatingService struct {
	setNameFn       func(ctx context.Context, selector string, name string) error
	setRegionFn     func(ctx context.Context, selector string, region string) error
	setVersionFn    func(ctx context.Context, selector string, version string) error
	setVisibilityFn func(ctx context.Context, selector string, visibility string) error
	saveSnapshotFn  func(ctx context.Context, profileID string) (core.SnapshotInfo, error)
	applySnapshotFn func(ctx context.Context, profileID string) error
	deleteFn        func(ctx context.Context, profileID string) error
	enqueueFlushFn  func(ctx context.Context, profileID string) error
}

func (s stubMutatingService) SetName(ctx context.Context, selector string, name string) error {
	return s.setNameFn(ctx, selector, name)
}

func (s stubMutatingService) SetRegion(ctx context.Context, selector string, region string) error {
	return s.setRegionFn(ctx, selector, region)
}

func (s stubMutatingService) SetVersion(ctx context.Context, selector string, version string) error {
	return s.setVersionFn(ctx, selector, version)
}

func (s stubMutatingService) SetVisibility(ctx context.Context, selector string, visibility string) error {
	return s.setVisibilityFn(ctx, selector, visibility)
}

func (s stubMutatingService) SaveSnapshot(ctx context.Context, profileID string) (core.SnapshotInfo, error) {
	return s.saveSnapshotFn(ctx, profileID)
}

func (s stubMutatingService) ApplySnapshot(ctx context.Context, profileID string) error {
	return s.applySnapshotFn(ctx, profileID)
}

func (s stubMutatingService) DeleteSnapshot(ctx context.Context, profileID string) error {
	return s.deleteFn(ctx, profileID)
}

func (s stubMutatingService) EnqueueSnapshotFlush(ctx context.Context, profileID string) error {
	return s.enqueueFlushFn(ctx, profileID)
}

func TestPreferenceCommands_DelegateToService(t *testing.T) {
	t.Run("set name", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			setNameFn: func(_ context.Context, selector string, name string) error {
				called = true
				if selector != core.All || name != "matrix" {
					t.Fatalf("unexpected payload: %q %q", selector, name)
				}
				return nil
			},
		}
		cmd := NewSetNameCommand(svc)
		if err := cmd.Execute(context.Background(), SetNameMessage{Selector: core.All, Name: "matrix"}); err != nil {
			t.Fatalf("execute set name: %v", err)
		}
		if !called {
			t.Fatalf("expected set name invocation")
		}
	})

	t.Run("set region", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			setRegionFn: func(_ context.Context, selector string, region string) error {
				called = true
				if selector != "compute" || region != "zion" {
					t.Fatalf("unexpected payload: %q %q", selector, region)
				}
				return nil
			},
		}
		cmd := NewSetRegionCommand(svc)
		if err := cmd.Execute(context.Background(), SetRegionMessage{Selector: "compute", Region: "zion"}); err != nil {
			t.Fatalf("execute set region: %v", err)
		}
		if !called {
			t.Fatalf("expected set region invocation")
		}
	})

	t.Run("set version", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			setVersionFn: func(_ context.Context, selector string, version string) error {
				called = true
				if selector != "identity" || version != "v3" {
					t.Fatalf("unexpected payload: %q %q", selector, version)
				}
				return nil
			},
		}
		cmd := NewSetVersionCommand(svc)
		if err := cmd.Execute(context.Background(), SetVersionMessage{Selector: "identity", Version: "v3"}); err != nil {
			t.Fatalf("execute set version: %v", err)
		}
		if !called {
			t.Fatalf("expected set version invocation")
		}
	})

	t.Run("set visibility", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			setVisibilityFn: func(_ context.Context, selector string, visibility string) error {
				called = true
				if selector != "identity" || visibility != "internal" {
					t.Fatalf("unexpected payload: %q %q", selector, visibility)
				}
				return nil
			},
		}
		cmd := NewSetVisibilityCommand(svc)
		if err := cmd.Execute(context.Background(), SetVisibilityMessage{Selector: "identity", Visibility: "internal"}); err != nil {
			t.Fatalf("execute set visibility: %v", err)
		}
		if !called {
			t.Fatalf("expected set visibility invocation")
		}
	})
}

func TestSaveSnapshotCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.SnapshotInfo{
		ProfileID:    "profile-1",
		ServiceTypes: []string{"compute", "identity"},
		SavedAt:      time.Now().UTC(),
	}
	called := false
	svc := stubMutatingService{
		saveSnapshotFn: func(_ context.Context, profileID string) (core.SnapshotInfo, error) {
			called = true
			if profileID != "profile-1" {
				t.Fatalf("unexpected profile id: %q", profileID)
			}
			return expected, nil
		},
	}

	cmd := NewSaveSnapshotCommand(svc)
	collector := gocmd.NewResult[core.SnapshotInfo]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, SaveSnapshotMessage{ProfileID: "profile-1"}); err != nil {
		t.Fatalf("execute save snapshot: %v", err)
	}
	if !called {
		t.Fatalf("expected save snapshot invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.ProfileID != expected.ProfileID || len(result.ServiceTypes) != 2 {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestSnapshotCommands_DelegateToService(t *testing.T) {
	t.Run("apply", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			applySnapshotFn: func(_ context.Context, profileID string) error {
				called = true
				if profileID != "profile-1" {
					t.Fatalf("unexpected profile id: %q", profileID)
				}
				return nil
			},
		}
		cmd := NewApplySnapshotCommand(svc)
		if err := cmd.Execute(context.Background(), ApplySnapshotMessage{ProfileID: "profile-1"}); err != nil {
			t.Fatalf("execute apply snapshot: %v", err)
		}
		if !called {
			t.Fatalf("expected apply snapshot invocation")
		}
	})

	t.Run("delete", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			deleteFn: func(_ context.Context, profileID string) error {
				called = true
				return nil
			},
		}
		cmd := NewDeleteSnapshotCommand(svc)
		if err := cmd.Execute(context.Background(), DeleteSnapshotMessage{ProfileID: "profile-1"}); err != nil {
			t.Fatalf("execute delete snapshot: %v", err)
		}
		if !called {
			t.Fatalf("expected delete snapshot invocation")
		}
	})

	t.Run("flush enqueue", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			enqueueFlushFn: func(_ context.Context, profileID string) error {
				called = true
				if profileID != "profile-1" {
					t.Fatalf("unexpected profile id: %q", profileID)
				}
				return nil
			},
		}
		cmd := NewEnqueueSnapshotFlushCommand(svc)
		if err := cmd.Execute(context.Background(), EnqueueSnapshotFlushMessage{ProfileID: "profile-1"}); err != nil {
			t.Fatalf("execute flush enqueue: %v", err)
		}
		if !called {
			t.Fatalf("expected flush enqueue invocation")
		}
	})
}

func TestMessages_Validate(t *testing.T) {
	if err := (SetNameMessage{Name: "matrix"}).Validate(); err == nil {
		t.Fatalf("expected blank selector to fail")
	}
	if err := (SetNameMessage{Selector: "compute", Name: "matrix"}).Validate(); err != nil {
		t.Fatalf("valid set name rejected: %v", err)
	}
	if err := (SetVisibilityMessage{Selector: "compute", Visibility: "sideways"}).Validate(); err == nil {
		t.Fatalf("expected unknown visibility to fail")
	}
	if err := (SetVisibilityMessage{Selector: "compute", Visibility: "public"}).Validate(); err != nil {
		t.Fatalf("valid visibility rejected: %v", err)
	}
	if err := (SaveSnapshotMessage{}).Validate(); err != nil {
		t.Fatalf("save snapshot must accept an empty profile id: %v", err)
	}
	if err := (ApplySnapshotMessage{}).Validate(); err == nil {
		t.Fatalf("expected blank apply profile id to fail")
	}
	if err := (DeleteSnapshotMessage{}).Validate(); err == nil {
		t.Fatalf("expected blank delete profile id to fail")
	}
}
