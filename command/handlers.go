package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-service-catalog/core"
)

type MutatingService interface {
	SetName(ctx context.Context, selector string, name string) error
	SetRegion(ctx context.Context, selector string, region string) error
	SetVersion(ctx context.Context, selector string, version string) error
	SetVisibility(ctx context.Context, selector string, visibility string) error
	SaveSnapshot(ctx context.Context, profileID string) (core.SnapshotInfo, error)
	ApplySnapshot(ctx context.Context, profileID string) error
	DeleteSnapshot(ctx context.Context, profileID string) error
	EnqueueSnapshotFlush(ctx context.Context, profileID string) error
}

type SetNameCommand struct {
	service MutatingService
}

func NewSetNameCommand(service MutatingService) *SetNameCommand {
	return &SetNameCommand{service: service}
}

func (c *SetNameCommand) Execute(ctx context.Context, msg SetNameMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: preference service is required")
	}
	return c.service.SetName(ctx, msg.Selector, msg.Name)
}

type SetRegionCommand struct {
	service MutatingService
}

func NewSetRegionCommand(service MutatingService) *SetRegionCommand {
	return &SetRegionCommand{service: service}
}

func (c *SetRegionCommand) Execute(ctx context.Context, msg SetRegionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: preference service is required")
	}
	return c.service.SetRegion(ctx, msg.Selector, msg.Region)
}

type SetVersionCommand struct {
	service MutatingService
}

func NewSetVersionCommand(service MutatingService) *SetVersionCommand {
	return &SetVersionCommand{service: service}
}

func (c *SetVersionCommand) Execute(ctx context.Context, msg SetVersionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: preference service is required")
	}
	return c.service.SetVersion(ctx, msg.Selector, msg.Version)
}

type SetVisibilityCommand struct {
	service MutatingService
}

func NewSetVisibilityCommand(service MutatingService) *SetVisibilityCommand {
	return &SetVisibilityCommand{service: service}
}

func (c *SetVisibilityCommand) Execute(ctx context.Context, msg SetVisibilityMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: preference service is required")
	}
	return c.service.SetVisibility(ctx, msg.Selector, msg.Visibility)
}

type SaveSnapshotCommand struct {
	service MutatingService
}

func NewSaveSnapshotCommand(service MutatingService) *SaveSnapshotCommand {
	return &SaveSnapshotCommand{service: service}
}

func (c *SaveSnapshotCommand) Execute(ctx context.Context, msg SaveSnapshotMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: snapshot service is required")
	}
	out, err := c.service.SaveSnapshot(ctx, msg.ProfileID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ApplySnapshotCommand struct {
	service MutatingService
}

func NewApplySnapshotCommand(service MutatingService) *ApplySnapshotCommand {
	return &ApplySnapshotCommand{service: service}
}

func (c *ApplySnapshotCommand) Execute(ctx context.Context, msg ApplySnapshotMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: snapshot service is required")
	}
	return c.service.ApplySnapshot(ctx, msg.ProfileID)
}

type DeleteSnapshotCommand struct {
	service MutatingService
}

func NewDeleteSnapshotCommand(service MutatingService) *DeleteSnapshotCommand {
	return &DeleteSnapshotCommand{service: service}
}

func (c *DeleteSnapshotCommand) Execute(ctx context.Context, msg DeleteSnapshotMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: snapshot service is required")
	}
	return c.service.DeleteSnapshot(ctx, msg.ProfileID)
}

type EnqueueSnapshotFlushCommand struct {
	service MutatingService
}

func NewEnqueueSnapshotFlushCommand(service MutatingService) *EnqueueSnapshotFlushCommand {
	return &EnqueueSnapshotFlushCommand{service: service}
}

func (c *EnqueueSnapshotFlushCommand) Execute(ctx context.Context, msg EnqueueSnapshotFlushMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: snapshot service is required")
	}
	return c.service.EnqueueSnapshotFlush(ctx, msg.ProfileID)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
