package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/models"
)

// comparisonService implements the comparison engine.
type comparisonService struct {
	db        *gorm.DB
	catalog   CatalogServicer
	snapshots SnapshotServicer
	settings  SettingsServicer
}

// NewComparisonService creates a new ComparisonServicer.
func NewComparisonService(db *gorm.DB, catalog CatalogServicer, snapshots SnapshotServicer, settings SettingsServicer) ComparisonServicer {
	return &comparisonService{db: db, catalog: catalog, snapshots: snapshots, settings: settings}
}

// UsableWealth is amount minus reserve, floored at zero. Never negative.
func (s *comparisonService) UsableWealth(amount, reserve int64) int64 {
	usable := amount - reserve
	if usable < 0 {
		return 0
	}
	return usable
}

// Quantity is floor(usableWealth / cost). Integer division on cents; both
// operands carry the same sub-unit so the quotient is a plain count.
func (s *comparisonService) Quantity(usableWealth int64, cost *models.UnitCost) (int64, error) {
	if cost.Cost <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidCatalogEntry,
			errors.New("unit cost "+cost.ID+" has non-positive cost"))
	}
	if usableWealth <= 0 {
		return 0, nil
	}
	return usableWealth / cost.Cost, nil
}

// Preview computes comparisons for an arbitrary wealth amount against the
// resolved region's catalog, without persisting anything.
func (s *comparisonService) Preview(amount int64, region string) ([]ComparisonItem, models.Region, error) {
	costs, resolved, err := s.catalog.ActiveCosts(region)
	if err != nil {
		return nil, resolved, err
	}

	reserve := s.settings.GetInt64(models.SettingLivingReserveCents, DefaultLivingReserveCents)
	usable := s.UsableWealth(amount, reserve)
	day := models.TruncateToDay(time.Now())

	items := make([]ComparisonItem, 0, len(costs))
	for i := range costs {
		quantity, err := s.Quantity(usable, &costs[i])
		if err != nil {
			return nil, resolved, err
		}
		items = append(items, ComparisonItem{
			UnitCost:     costs[i],
			Quantity:     quantity,
			WealthAmount: usable,
			Day:          day,
		})
	}
	return items, resolved, nil
}

// ComputeAll upserts a comparison row for every entity with a snapshot at or
// before day and every active unit cost, using each entity's most recent
// snapshot at or before the day. Zero-quantity rows are elided when the
// policy says so. Re-runs are idempotent: rows are upserted, never duplicated.
func (s *comparisonService) ComputeAll(day time.Time, opts ComputeOptions) (int, error) {
	day = models.TruncateToDay(day)

	costs, err := s.catalog.AllActiveCosts()
	if err != nil {
		return 0, err
	}
	if len(costs) == 0 {
		return 0, nil
	}

	var entities []models.Entity
	if err := s.db.Find(&entities).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for i := range entities {
		snapshot, err := s.snapshots.LatestAtOrBefore(entities[i].ID, day)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrNotFound.Code {
				continue
			}
			return count, err
		}

		reserve := opts.Reserve
		usable := s.UsableWealth(snapshot.Amount, reserve)

		for j := range costs {
			quantity, err := s.Quantity(usable, &costs[j])
			if err != nil {
				return count, err
			}
			if quantity == 0 && opts.SkipZeroQuantityRows {
				continue
			}
			if err := s.upsertComparison(entities[i].ID, costs[j].ID, day, usable, quantity); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// EntityComparisons returns the precomputed comparisons for the entity's
// most recent calculation day, scoped to the resolved region's catalog and
// in canonical display order. An empty result means no data is available for
// that entity; it is not an error.
func (s *comparisonService) EntityComparisons(entityID string, region string) ([]ComparisonItem, models.Region, error) {
	costs, resolved, err := s.catalog.ActiveCosts(region)
	if err != nil {
		return nil, resolved, err
	}

	var latest models.CalculatedComparison
	err = s.db.Where("entity_id = ?", entityID).Order("day DESC").First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ComparisonItem{}, resolved, nil
		}
		return nil, resolved, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	costIDs := make([]string, len(costs))
	byID := make(map[string]int, len(costs))
	for i := range costs {
		costIDs[i] = costs[i].ID
		byID[costs[i].ID] = i
	}

	var rows []models.CalculatedComparison
	if err := s.db.Where("entity_id = ? AND day = ? AND unit_cost_id IN ?", entityID, latest.Day, costIDs).
		Find(&rows).Error; err != nil {
		return nil, resolved, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Emit in catalog order: category ASC, priority ASC.
	items := make([]ComparisonItem, 0, len(rows))
	for i := range costs {
		for j := range rows {
			if byID[rows[j].UnitCostID] != i {
				continue
			}
			items = append(items, ComparisonItem{
				UnitCost:     costs[i],
				Quantity:     rows[j].Quantity,
				WealthAmount: rows[j].WealthAmount,
				Day:          rows[j].Day,
			})
		}
	}
	return items, resolved, nil
}

// upsertComparison writes the row for (entity, cost, day), updating in place
// when it already exists.
func (s *comparisonService) upsertComparison(entityID, unitCostID string, day time.Time, wealthAmount, quantity int64) error {
	var existing models.CalculatedComparison
	err := s.db.Where("entity_id = ? AND unit_cost_id = ? AND day = ?", entityID, unitCostID, day).
		First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"wealth_amount": wealthAmount,
			"quantity":      quantity,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.CalculatedComparison{
			EntityID:     entityID,
			UnitCostID:   unitCostID,
			Day:          day,
			WealthAmount: wealthAmount,
			Quantity:     quantity,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
