package command

import (
	"strings"

	"github.com/goliatone/go-service-catalog/core"
)

const (
	TypeSetName              = "catalog.command.preference.set_name"
	TypeSetRegion            = "catalog.command.preference.set_region"
	TypeSetVersion           = "catalog.command.preference.set_version"
	TypeSetVisibility        = "catalog.command.preference.set_visibility"
	TypeSaveSnapshot         = "catalog.command.snapshot.save"
	TypeApplySnapshot        = "catalog.command.snapshot.apply"
	TypeDeleteSnapshot       = "catalog.command.snapshot.delete"
	TypeEnqueueSnapshotFlush = "catalog.command.snapshot.flush_enqueue"
)

type SetNameMessage struct {
	Selector string
	Name     string
}

func (SetNameMessage) Type() string { return TypeSetName }

func (m SetNameMessage) Validate() error {
	return validateSelector(m.Selector)
}

type SetRegionMessage struct {
	Selector string
	Region   string
}

func (SetRegionMessage) Type() string { return TypeSetRegion }

func (m SetRegionMessage) Validate() error {
	return validateSelector(m.Selector)
}

type SetVersionMessage struct {
	Selector string
	Version  string
}

func (SetVersionMessage) Type() string { return TypeSetVersion }

func (m SetVersionMessage) Validate() error {
	return validateSelector(m.Selector)
}

type SetVisibilityMessage struct {
	Selector   string
	Visibility string
}

func (SetVisibilityMessage) Type() string { return TypeSetVisibility }

func (m SetVisibilityMessage) Validate() error {
	if err := validateSelector(m.Selector); err != nil {
		return err
	}
	if _, err := core.ParseVisibility(m.Visibility); err != nil {
		return commandWrapValidation(err, "command: invalid visibility")
	}
	return nil
}

type SaveSnapshotMessage struct {
	ProfileID string
}

func (SaveSnapshotMessage) Type() string { return TypeSaveSnapshot }

// Validate accepts an empty profile id: the service falls back to the
// configured profile, then generates one.
func (SaveSnapshotMessage) Validate() error { return nil }

type ApplySnapshotMessage struct {
	ProfileID string
}

func (ApplySnapshotMessage) Type() string { return TypeApplySnapshot }

func (m ApplySnapshotMessage) Validate() error {
	if strings.TrimSpace(m.ProfileID) == "" {
		return commandValidationError("profile_id", "profile id is required")
	}
	return nil
}

type DeleteSnapshotMessage struct {
	ProfileID string
}

func (DeleteSnapshotMessage) Type() string { return TypeDeleteSnapshot }

func (m DeleteSnapshotMessage) Validate() error {
	if strings.TrimSpace(m.ProfileID) == "" {
		return commandValidationError("profile_id", "profile id is required")
	}
	return nil
}

type EnqueueSnapshotFlushMessage struct {
	ProfileID string
}

func (EnqueueSnapshotFlushMessage) Type() string { return TypeEnqueueSnapshotFlush }

func (EnqueueSnapshotFlushMessage) Validate() error { return nil }

func validateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return commandValidationError("selector", "service selector is required")
	}
	return nil
}
