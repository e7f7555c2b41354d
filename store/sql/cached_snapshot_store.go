package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-service-catalog/core"
)

const snapshotCacheKeyPrefix = "go-service-catalog::preferences::v1"

// CachedSnapshotStore keeps loaded snapshots in a read-through cache and
// invalidates on every write to the same profile.
type CachedSnapshotStore struct {
	base  core.SnapshotStore
	cache repositorycache.CacheService
}

func NewCachedSnapshotStore(
	base core.SnapshotStore,
	cacheService repositorycache.CacheService,
) (*CachedSnapshotStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base snapshot store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: snapshot cache service is required")
	}
	return &CachedSnapshotStore{base: base, cache: cacheService}, nil
}

// SnapshotCacheKey returns the deterministic cache key contract for
// snapshot reads: go-service-catalog::preferences::v1::<profile_id> with
// the profile segment URL-path escaped after trimming.
func SnapshotCacheKey(profileID string) (string, error) {
	trimmed := strings.TrimSpace(profileID)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: profile id is required")
	}
	return snapshotCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedSnapshotStore) SaveSnapshot(ctx context.Context, profileID string, records []core.PreferenceRecord) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached snapshot store is not configured")
	}
	cacheKey, err := SnapshotCacheKey(profileID)
	if err != nil {
		return err
	}
	if err := s.base.SaveSnapshot(ctx, profileID, records); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func (s *CachedSnapshotStore) LoadSnapshot(ctx context.Context, profileID string) ([]core.PreferenceRecord, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached snapshot store is not configured")
	}
	cacheKey, err := SnapshotCacheKey(profileID)
	if err != nil {
		return nil, err
	}

	records, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) ([]core.PreferenceRecord, error) {
		fetched, fetchErr := s.base.LoadSnapshot(ctx, profileID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return clonePreferenceRecords(fetched), nil
	})
	if err != nil {
		return nil, err
	}
	return clonePreferenceRecords(records), nil
}

func (s *CachedSnapshotStore) DeleteSnapshot(ctx context.Context, profileID string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached snapshot store is not configured")
	}
	cacheKey, err := SnapshotCacheKey(profileID)
	if err != nil {
		return err
	}
	if err := s.base.DeleteSnapshot(ctx, profileID); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func clonePreferenceRecords(records []core.PreferenceRecord) []core.PreferenceRecord {
	if len(records) == 0 {
		return []core.PreferenceRecord{}
	}
	out := make([]core.PreferenceRecord, len(records))
	copy(out, records)
	return out
}

var _ core.SnapshotStore = (*CachedSnapshotStore)(nil)
