package models

// Setting is a key-value configuration row read by the pipeline and the
// comparison engine at the start of each run rather than hardcoded.
type Setting struct {
	Base
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// Setting keys seeded on startup.
const (
	SettingLivingReserveCents   = "living_reserve_cents"
	SettingTopNLimit            = "top_n_limit"
	SettingSkipZeroQuantityRows = "skip_zero_quantity_rows"
)
