package models

import "time"

// Entity represents a tracked individual on the wealth list. The slug is
// derived from the feed's external identifier and is immutable after first
// sighting; all other profile fields are overwritten on every ingestion run.
type Entity struct {
	Base
	Slug       string     `gorm:"uniqueIndex;not null" json:"slug"`
	Name       string     `gorm:"not null" json:"name"`
	Country    string     `json:"country,omitempty"`
	Industries string     `json:"industries,omitempty"`
	Gender     string     `json:"gender,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	SourceURI  string     `json:"source_uri,omitempty"`

	// Relationships
	Snapshots   []WealthSnapshot       `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"snapshots,omitempty"`
	Comparisons []CalculatedComparison `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"comparisons,omitempty"`
}
