package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-service-catalog/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SnapshotStore persists preference snapshots keyed by profile id. A save
// replaces the profile's rows wholesale inside one transaction so a
// snapshot is never half old, half new.
type SnapshotStore struct {
	db   *bun.DB
	repo repository.Repository[*preferenceRecord]
}

func NewSnapshotStore(db *bun.DB) (*SnapshotStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*preferenceRecord](db, preferenceHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid preference repository wiring: %w", err)
		}
	}
	return &SnapshotStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, profileID string, records []core.PreferenceRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: snapshot store is not configured")
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return fmt.Errorf("sqlstore: profile id is required")
	}
	now := time.Now().UTC()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*preferenceRecord)(nil)).
			Where("?TableAlias.profile_id = ?", profileID).
			Exec(ctx); err != nil {
			return err
		}
		for _, record := range records {
			row := newPreferenceRecord(profileID, record, now)
			row.ID = uuid.NewString()
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SnapshotStore) LoadSnapshot(ctx context.Context, profileID string) ([]core.PreferenceRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: snapshot store is not configured")
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, fmt.Errorf("sqlstore: profile id is required")
	}

	var rows []*preferenceRecord
	err := s.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.profile_id = ?", profileID).
		OrderExpr("?TableAlias.service_type ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]core.PreferenceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}

func (s *SnapshotStore) DeleteSnapshot(ctx context.Context, profileID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: snapshot store is not configured")
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return fmt.Errorf("sqlstore: profile id is required")
	}

	_, err := s.db.NewDelete().
		Model((*preferenceRecord)(nil)).
		Where("?TableAlias.profile_id = ?", profileID).
		Exec(ctx)
	return err
}
