package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/feed"
	"midas/internal/models"
	"midas/internal/pagination"
)

// entityService handles entity profile business logic.
type entityService struct {
	db *gorm.DB
}

// NewEntityService creates a new EntityServicer.
func NewEntityService(db *gorm.DB) EntityServicer {
	return &entityService{db: db}
}

// UpsertFromFeed inserts or overwrites the entity for a feed record.
//
// The existence check runs before the write on purpose: a combined upsert
// cannot report whether the row was newly created, and the pipeline's audit
// counts depend on an honest wasCreated signal.
//
// Updates overwrite all mutable fields unconditionally, including fields the
// feed stopped sending. Last-write-wins, with erasure.
func (s *entityService) UpsertFromFeed(rec feed.Record) (*models.Entity, bool, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "Display name is required")
	}

	slugSource := rec.URI
	if strings.TrimSpace(slugSource) == "" {
		slugSource = name
	}
	slug := feed.Slugify(slugSource)
	if slug == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "Cannot derive a slug for record")
	}

	fields := map[string]interface{}{
		"name":       name,
		"country":    rec.Country,
		"industries": feed.JoinIndustries(rec.Industries),
		"gender":     rec.Gender,
		"image_url":  feed.NormalizeImageURL(rec.ImageURL),
		"bio":        feed.JoinBios(rec.Bios),
		"source_uri": rec.URI,
	}

	var entity models.Entity
	err := s.db.Where("slug = ?", slug).First(&entity).Error
	switch {
	case err == nil:
		birth := feed.ParseBirthEpoch(rec.BirthDate)
		fields["birth_date"] = birth
		if err := s.db.Model(&entity).Updates(fields).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("slug = ?", slug).First(&entity).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &entity, false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entity = models.Entity{
			Slug:       slug,
			Name:       name,
			Country:    rec.Country,
			Industries: feed.JoinIndustries(rec.Industries),
			Gender:     rec.Gender,
			ImageURL:   feed.NormalizeImageURL(rec.ImageURL),
			Bio:        feed.JoinBios(rec.Bios),
			BirthDate:  feed.ParseBirthEpoch(rec.BirthDate),
			SourceURI:  rec.URI,
		}
		if err := s.db.Create(&entity).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &entity, true, nil

	default:
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetBySlug returns an entity by its slug.
func (s *entityService) GetBySlug(slug string) (*models.Entity, error) {
	var entity models.Entity
	if err := s.db.Where("slug = ?", slug).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entity, nil
}

// ListEntities returns a paginated list of entities ordered by name,
// optionally filtered by a case-insensitive name search.
func (s *entityService) ListEntities(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Entity], error) {
	page.Defaults()

	base := s.db.Model(&models.Entity{})
	if search = strings.TrimSpace(search); search != "" {
		base = base.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entities []models.Entity
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&entities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entities, page.Page, page.PageSize, totalItems)
	return &result, nil
}
