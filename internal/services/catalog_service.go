package services

import (
	"errors"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/logger"
	"midas/internal/models"
	"midas/internal/pagination"
)

const (
	catalogCacheSize = 16
	catalogCacheTTL  = 5 * time.Minute
)

// cachedCatalog is one region's active entries with a fetch timestamp.
type cachedCatalog struct {
	costs     []models.UnitCost
	fetchedAt time.Time
}

// catalogService handles unit-cost catalog maintenance and region-aware
// resolution. Active-catalog lookups are cached per region; any catalog
// write purges the cache.
type catalogService struct {
	db    *gorm.DB
	cache *lru.Cache
	now   func() time.Time
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(db *gorm.DB) CatalogServicer {
	cache, _ := lru.New(catalogCacheSize)
	return &catalogService{db: db, cache: cache, now: time.Now}
}

// CreateUnitCost creates a catalog entry. Cost must be positive.
func (s *catalogService) CreateUnitCost(input UnitCostInput) (*models.UnitCost, error) {
	if err := validateUnitCostInput(input); err != nil {
		return nil, err
	}

	cost := &models.UnitCost{
		Name:         input.Name,
		Cost:         input.Cost,
		Unit:         input.Unit,
		UnitPlural:   input.UnitPlural,
		Description:  input.Description,
		Source:       input.Source,
		SourceURL:    input.SourceURL,
		Region:       input.Region,
		Category:     input.Category,
		IsActive:     input.IsActive,
		Priority:     input.Priority,
		LastVerified: input.LastVerified,
	}
	if err := s.db.Create(cost).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.Purge()
	return cost, nil
}

// UpdateUnitCost overwrites a catalog entry's writable fields.
func (s *catalogService) UpdateUnitCost(id string, input UnitCostInput) (*models.UnitCost, error) {
	if err := validateUnitCostInput(input); err != nil {
		return nil, err
	}

	cost, err := s.GetUnitCostByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(cost).Updates(map[string]interface{}{
		"name":          input.Name,
		"cost":          input.Cost,
		"unit":          input.Unit,
		"unit_plural":   input.UnitPlural,
		"description":   input.Description,
		"source":        input.Source,
		"source_url":    input.SourceURL,
		"region":        input.Region,
		"category":      input.Category,
		"is_active":     input.IsActive,
		"priority":      input.Priority,
		"last_verified": input.LastVerified,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.Purge()
	return s.GetUnitCostByID(id)
}

// DeleteUnitCost soft-deletes a catalog entry.
func (s *catalogService) DeleteUnitCost(id string) error {
	cost, err := s.GetUnitCostByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(cost).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Purge()
	return nil
}

// GetUnitCostByID returns a catalog entry by its ID.
func (s *catalogService) GetUnitCostByID(id string) (*models.UnitCost, error) {
	var cost models.UnitCost
	if err := s.db.Where("id = ?", id).First(&cost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnitCostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cost, nil
}

// ListUnitCosts returns a paginated list of all catalog entries, active or
// not, in canonical display order.
func (s *catalogService) ListUnitCosts(page pagination.PageRequest) (*pagination.PageResponse[models.UnitCost], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.UnitCost{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var costs []models.UnitCost
	if err := base.Order("category ASC, priority ASC").Scopes(pagination.Paginate(page)).Find(&costs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(costs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ActiveCosts resolves the requested region and returns its active entries.
//
// An unrecognized region is not a caller error: it maps to the default
// region and is logged at warning level. A recognized region with zero
// active entries falls back once to the default region. An empty default
// region is a hard configuration error.
func (s *catalogService) ActiveCosts(requested string) ([]models.UnitCost, models.Region, error) {
	region, recognized := models.ParseRegion(requested)
	if !recognized && strings.TrimSpace(requested) != "" {
		logger.Get().Warnw("unrecognized region, using default",
			"requested", requested, "default", models.DefaultRegion)
	}

	costs, err := s.activeCostsForRegion(region)
	if err != nil {
		return nil, region, err
	}
	if len(costs) == 0 && region != models.DefaultRegion {
		region = models.DefaultRegion
		costs, err = s.activeCostsForRegion(region)
		if err != nil {
			return nil, region, err
		}
	}
	if len(costs) == 0 {
		return nil, region, apperrors.ErrEmptyCatalog
	}
	return costs, region, nil
}

// AllActiveCosts returns every active entry regardless of region.
func (s *catalogService) AllActiveCosts() ([]models.UnitCost, error) {
	var costs []models.UnitCost
	if err := s.db.Where("is_active = ?", true).
		Order("category ASC, priority ASC").
		Find(&costs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return costs, nil
}

// activeCostsForRegion queries one region's active entries through the cache.
func (s *catalogService) activeCostsForRegion(region models.Region) ([]models.UnitCost, error) {
	if v, ok := s.cache.Get(string(region)); ok {
		cached := v.(cachedCatalog)
		if s.now().Sub(cached.fetchedAt) < catalogCacheTTL {
			return cached.costs, nil
		}
	}

	var costs []models.UnitCost
	if err := s.db.Where("region = ? AND is_active = ?", region, true).
		Order("category ASC, priority ASC").
		Find(&costs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.Add(string(region), cachedCatalog{costs: costs, fetchedAt: s.now()})
	return costs, nil
}

// validateUnitCostInput enforces the catalog invariants at write time.
func validateUnitCostInput(input UnitCostInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if strings.TrimSpace(input.Unit) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unit is required")
	}
	if input.Cost <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Cost must be positive")
	}
	if _, ok := models.ParseRegion(string(input.Region)); !ok {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown region")
	}
	return nil
}
