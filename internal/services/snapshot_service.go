package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/logger"
	"midas/internal/models"
)

// MaxHistoryDays bounds history queries to one year.
const MaxHistoryDays = 365

// snapshotService handles the daily wealth time series.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// UpsertDaily writes the snapshot for (entity, day).
//
// The day-over-day change is computed against exactly the prior calendar
// day, not the most recent prior snapshot: a data gap must surface as a NULL
// change, never as a comparison against stale data.
func (s *snapshotService) UpsertDaily(entityID string, day time.Time, amount int64, rank *int, source string) (*models.WealthSnapshot, error) {
	day = models.TruncateToDay(day)
	yesterday := day.AddDate(0, 0, -1)

	var dailyChange *int64
	var prior models.WealthSnapshot
	err := s.db.Where("entity_id = ? AND day = ?", entityID, yesterday).First(&prior).Error
	switch {
	case err == nil:
		change := amount - prior.Amount
		dailyChange = &change
	case errors.Is(err, gorm.ErrRecordNotFound):
		// NULL, not zero. Consumers must be able to tell "no change"
		// apart from "no data".
		logger.Get().Debugw("no prior-day snapshot, storing null daily change",
			"entity_id", entityID, "day", day.Format("2006-01-02"))
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshot models.WealthSnapshot
	err = s.db.Where("entity_id = ? AND day = ?", entityID, day).First(&snapshot).Error
	switch {
	case err == nil:
		if err := s.db.Model(&snapshot).Updates(map[string]interface{}{
			"amount":       amount,
			"rank":         rank,
			"daily_change": dailyChange,
			"source":       source,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		snapshot.Amount = amount
		snapshot.Rank = rank
		snapshot.DailyChange = dailyChange
		snapshot.Source = source
		return &snapshot, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		snapshot = models.WealthSnapshot{
			EntityID:    entityID,
			Day:         day,
			Amount:      amount,
			Rank:        rank,
			DailyChange: dailyChange,
			Source:      source,
		}
		if err := s.db.Create(&snapshot).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &snapshot, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetHistory returns up to days snapshots for an entity, ascending by day.
// days outside [1, 365] is rejected before any query executes.
func (s *snapshotService) GetHistory(entityID string, days int) ([]models.WealthSnapshot, error) {
	if days < 1 || days > MaxHistoryDays {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be between 1 and 365")
	}

	since := models.TruncateToDay(time.Now()).AddDate(0, 0, -(days - 1))

	var snapshots []models.WealthSnapshot
	if err := s.db.Where("entity_id = ? AND day >= ?", entityID, since).
		Order("day ASC").
		Limit(days).
		Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshots, nil
}

// LatestAtOrBefore returns the entity's most recent snapshot at or before day.
func (s *snapshotService) LatestAtOrBefore(entityID string, day time.Time) (*models.WealthSnapshot, error) {
	var snapshot models.WealthSnapshot
	err := s.db.Where("entity_id = ? AND day <= ?", entityID, models.TruncateToDay(day)).
		Order("day DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}

// LatestDay returns the most recent day with any snapshot. gorm.ErrRecordNotFound
// surfaces as ErrNotFound when the time series is empty.
func (s *snapshotService) LatestDay() (time.Time, error) {
	var snapshot models.WealthSnapshot
	err := s.db.Order("day DESC").First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot.Day, nil
}
