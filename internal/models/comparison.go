package models

import (
	"time"

	"midas/internal/uuid"

	"gorm.io/gorm"
)

// CalculatedComparison is a cached derivation: how many units of a catalog
// cost an entity's usable wealth could fund on a given day. At most one row
// exists per (entity, unit cost, day); recomputation overwrites in place.
//
// WealthAmount is the usable wealth (net worth minus the living reserve,
// floored at zero) that was the input to the computation, in cents.
type CalculatedComparison struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	EntityID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_comparisons_entity_cost_day" json:"entity_id"`
	UnitCostID   string    `gorm:"type:uuid;not null;uniqueIndex:uq_comparisons_entity_cost_day" json:"unit_cost_id"`
	Day          time.Time `gorm:"not null;uniqueIndex:uq_comparisons_entity_cost_day" json:"day"`
	WealthAmount int64     `gorm:"type:bigint;not null" json:"wealth_amount"`
	Quantity     int64     `gorm:"type:bigint;not null" json:"quantity"`
	Entity       Entity    `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"entity,omitempty"`
	UnitCost     UnitCost  `gorm:"foreignKey:UnitCostID;constraint:OnDelete:CASCADE" json:"unit_cost,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (c *CalculatedComparison) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	return nil
}
