package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[SetNameMessage]              = (*SetNameCommand)(nil)
	_ gocmd.Commander[SetRegionMessage]            = (*SetRegionCommand)(nil)
	_ gocmd.Commander[SetVersionMessage]           = (*SetVersionCommand)(nil)
	_ gocmd.Commander[SetVisibilityMessage]        = (*SetVisibilityCommand)(nil)
	_ gocmd.Commander[SaveSnapshotMessage]         = (*SaveSnapshotCommand)(nil)
	_ gocmd.Commander[ApplySnapshotMessage]        = (*ApplySnapshotCommand)(nil)
	_ gocmd.Commander[DeleteSnapshotMessage]       = (*DeleteSnapshotCommand)(nil)
	_ gocmd.Commander[EnqueueSnapshotFlushMessage] = (*EnqueueSnapshotFlushCommand)(nil)
)
