package sqlstore

import "github.com/goliatone/go-service-catalog/core"

var (
	_ core.SnapshotStore          = (*SnapshotStore)(nil)
	_ core.SnapshotStore          = (*CachedSnapshotStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
