package sqlstore

import (
	"time"

	"github.com/goliatone/go-service-catalog/core"
	"github.com/uptrace/bun"
)

type preferenceRecord struct {
	bun.BaseModel `bun:"table:service_preferences,alias:sp"`

	ID          string    `bun:"id,pk"`
	ProfileID   string    `bun:"profile_id,notnull"`
	ServiceType string    `bun:"service_type,notnull"`
	ServiceName string    `bun:"service_name"`
	Region      string    `bun:"region"`
	Version     string    `bun:"version"`
	Visibility  string    `bun:"visibility"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func newPreferenceRecord(profileID string, record core.PreferenceRecord, now time.Time) *preferenceRecord {
	return &preferenceRecord{
		ProfileID:   profileID,
		ServiceType: record.ServiceType,
		ServiceName: record.ServiceName,
		Region:      record.Region,
		Version:     record.Version,
		Visibility:  string(record.Visibility),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *preferenceRecord) toDomain() core.PreferenceRecord {
	if r == nil {
		return core.PreferenceRecord{}
	}
	return core.PreferenceRecord{
		ServiceType: r.ServiceType,
		ServiceName: r.ServiceName,
		Region:      r.Region,
		Version:     r.Version,
		Visibility:  core.Visibility(r.Visibility),
	}
}
