package models

import (
	"time"

	"midas/internal/uuid"

	"gorm.io/gorm"
)

// WealthSnapshot records one day's wealth figure for an entity.
// This is immutable time-series data — no Base embed, no soft deletes.
//
// Amount and DailyChange are stored in cents to avoid floating-point drift.
// DailyChange is NULL (not zero) when no snapshot exists for the prior
// calendar day; consumers must be able to tell "no change" from "no data".
type WealthSnapshot struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	EntityID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_snapshots_entity_day" json:"entity_id"`
	Day         time.Time `gorm:"not null;uniqueIndex:uq_snapshots_entity_day" json:"day"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Rank        *int      `json:"rank,omitempty"`
	DailyChange *int64    `gorm:"type:bigint" json:"daily_change,omitempty"`
	Source      string    `json:"source,omitempty"`
	Entity      Entity    `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"entity,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *WealthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}

// Day granularity is calendar days in UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
