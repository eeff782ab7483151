package models

import "time"

// Region tags a unit cost with the part of the world its price was sourced
// from. Unrecognized regions resolve to RegionGlobal on read.
type Region string

const (
	RegionGlobal       Region = "global"
	RegionNorthAmerica Region = "north_america"
	RegionSouthAmerica Region = "south_america"
	RegionEurope       Region = "europe"
	RegionAfrica       Region = "africa"
	RegionAsiaPacific  Region = "asia_pacific"
)

// DefaultRegion is the canonical fallback when a requested region is
// unrecognized or has no active catalog entries.
const DefaultRegion = RegionGlobal

// ParseRegion validates a region string. The boolean reports whether the
// input was recognized; unrecognized input returns DefaultRegion.
func ParseRegion(s string) (Region, bool) {
	switch Region(s) {
	case RegionGlobal, RegionNorthAmerica, RegionSouthAmerica,
		RegionEurope, RegionAfrica, RegionAsiaPacific:
		return Region(s), true
	}
	return DefaultRegion, false
}

// CostCategory groups catalog entries for display.
type CostCategory string

const (
	CostCategoryHealth         CostCategory = "health"
	CostCategoryEducation      CostCategory = "education"
	CostCategoryFood           CostCategory = "food"
	CostCategoryHousing        CostCategory = "housing"
	CostCategoryInfrastructure CostCategory = "infrastructure"
	CostCategoryEnvironment    CostCategory = "environment"
	CostCategoryLuxury         CostCategory = "luxury"
)

// UnitCost is a catalog entry expressing a real-world cost used as a
// comparison denominator. Cost is in cents and must be positive.
// The catalog is maintained out of band; the ingestion pipeline never
// writes to it.
type UnitCost struct {
	Base
	Name         string       `gorm:"not null" json:"name"`
	Cost         int64        `gorm:"type:bigint;not null" json:"cost"`
	Unit         string       `gorm:"not null" json:"unit"`
	UnitPlural   string       `json:"unit_plural,omitempty"`
	Description  string       `json:"description,omitempty"`
	Source       string       `json:"source,omitempty"`
	SourceURL    string       `json:"source_url,omitempty"`
	Region       Region       `gorm:"not null;default:'global';index" json:"region"`
	Category     CostCategory `gorm:"not null" json:"category"`
	IsActive     bool         `gorm:"default:true" json:"is_active"`
	Priority     int          `gorm:"default:0" json:"priority"`
	LastVerified *time.Time   `json:"last_verified,omitempty"`
}

// PluralUnit returns the unit label appropriate for the given quantity.
func (u *UnitCost) PluralUnit(quantity int64) string {
	if quantity == 1 || u.UnitPlural == "" {
		return u.Unit
	}
	return u.UnitPlural
}
