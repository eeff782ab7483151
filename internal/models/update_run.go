package models

import (
	"time"

	"midas/internal/uuid"

	"gorm.io/gorm"
)

// RunStatus is the outcome of an ingestion run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusPartial RunStatus = "partial"
	RunStatusFailed  RunStatus = "failed"
)

// UpdateRun is one audit entry per ingestion run. Append-only: rows are
// never mutated after the run completes.
type UpdateRun struct {
	ID                 string    `gorm:"type:uuid;primaryKey" json:"id"`
	RunType            string    `gorm:"not null" json:"run_type"`
	RecordsCreated     int       `json:"records_created"`
	RecordsUpdated     int       `json:"records_updated"`
	RecordsFailed      int       `json:"records_failed"`
	ComparisonsCreated int       `json:"comparisons_created"`
	Status             RunStatus `gorm:"not null" json:"status"`
	ErrorMessage       string    `json:"error_message,omitempty"`
	DurationMs         int64     `json:"duration_ms"`
	StartedAt          time.Time `gorm:"not null" json:"started_at"`
	CompletedAt        time.Time `json:"completed_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (r *UpdateRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
