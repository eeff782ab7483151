package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/models"
)

// statsService derives fleet-wide statistics from the latest snapshots.
type statsService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
	settings  SettingsServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB, snapshots SnapshotServicer, settings SettingsServicer) StatsServicer {
	return &statsService{db: db, snapshots: snapshots, settings: settings}
}

// FleetStats sums each entity's most recent snapshot amount over the current
// top-N. An entity dropped from the latest feed still contributes its last
// known figure. A pure read-side fold: recomputed on demand, never persisted.
func (s *statsService) FleetStats() (*FleetStats, error) {
	day, err := s.snapshots.LatestDay()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &FleetStats{}, nil
		}
		return nil, err
	}

	topN := int(s.settings.GetInt64(models.SettingTopNLimit, DefaultTopNLimit))

	latest := s.db.Model(&models.WealthSnapshot{}).
		Select("entity_id, MAX(day) AS day").
		Group("entity_id")

	var snapshots []models.WealthSnapshot
	if err := s.db.Model(&models.WealthSnapshot{}).
		Joins("JOIN (?) latest ON latest.entity_id = wealth_snapshots.entity_id AND latest.day = wealth_snapshots.day", latest).
		Order("rank ASC").
		Limit(topN).
		Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &FleetStats{Day: day}
	for i := range snapshots {
		stats.TotalWealth += snapshots[i].Amount
		stats.EntityCount++
	}
	return stats, nil
}
