package services

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/logger"
	"midas/internal/models"
)

// Default values seeded into the settings table on startup.
const (
	DefaultLivingReserveCents = int64(1_000_000_000) // $10,000,000
	DefaultTopNLimit          = int64(50)
)

// settingsService handles the key-value configuration store.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// Seed inserts default values for any missing settings keys.
func (s *settingsService) Seed() error {
	defaults := map[string]string{
		models.SettingLivingReserveCents:   strconv.FormatInt(DefaultLivingReserveCents, 10),
		models.SettingTopNLimit:            strconv.FormatInt(DefaultTopNLimit, 10),
		models.SettingSkipZeroQuantityRows: "true",
	}

	for key, value := range defaults {
		setting := models.Setting{Key: key, Value: value}
		result := s.db.Where("key = ?", key).FirstOrCreate(&setting)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
	}
	return nil
}

// Get returns the raw value for a key.
func (s *settingsService) Get(key string) (string, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrSettingNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return setting.Value, nil
}

// GetInt64 returns a numeric setting, or fallback when the key is missing
// or unparsable.
func (s *settingsService) GetInt64(key string, fallback int64) int64 {
	value, err := s.Get(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		logger.Get().Warnw("invalid numeric setting, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

// GetBool returns a boolean setting, or fallback when the key is missing
// or unparsable.
func (s *settingsService) GetBool(key string, fallback bool) bool {
	value, err := s.Get(key)
	if err != nil {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	logger.Get().Warnw("invalid boolean setting, using fallback", "key", key, "value", value)
	return fallback
}

// Set creates or updates a setting.
func (s *settingsService) Set(key, value string) (*models.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Setting key is required")
	}

	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		if err := s.db.Model(&setting).Update("value", value).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		setting.Value = value
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{Key: key, Value: value}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &setting, nil
}

// List returns all settings ordered by key.
func (s *settingsService) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}
