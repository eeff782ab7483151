package services

import (
	"context"
	"time"

	"midas/internal/feed"
	"midas/internal/models"
	"midas/internal/pagination"
)

// SettingsServicer defines the contract for the key-value configuration store.
type SettingsServicer interface {
	Seed() error
	Get(key string) (string, error)
	GetInt64(key string, fallback int64) int64
	GetBool(key string, fallback bool) bool
	Set(key, value string) (*models.Setting, error)
	List() ([]models.Setting, error)
}

// EntityServicer defines the contract for entity profile logic.
type EntityServicer interface {
	// UpsertFromFeed inserts or fully overwrites the entity for a feed
	// record. The boolean reports whether the row was newly created.
	UpsertFromFeed(rec feed.Record) (*models.Entity, bool, error)
	GetBySlug(slug string) (*models.Entity, error)
	ListEntities(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Entity], error)
}

// SnapshotServicer defines the contract for the daily wealth time series.
type SnapshotServicer interface {
	// UpsertDaily writes the snapshot for (entity, day), computing the
	// day-over-day change against exactly the prior calendar day.
	UpsertDaily(entityID string, day time.Time, amount int64, rank *int, source string) (*models.WealthSnapshot, error)
	// GetHistory returns up to days snapshots ascending by day.
	// days outside [1, 365] is rejected before any query executes.
	GetHistory(entityID string, days int) ([]models.WealthSnapshot, error)
	LatestAtOrBefore(entityID string, day time.Time) (*models.WealthSnapshot, error)
	LatestDay() (time.Time, error)
}

// UnitCostInput carries the writable fields of a catalog entry.
type UnitCostInput struct {
	Name         string
	Cost         int64
	Unit         string
	UnitPlural   string
	Description  string
	Source       string
	SourceURL    string
	Region       models.Region
	Category     models.CostCategory
	IsActive     bool
	Priority     int
	LastVerified *time.Time
}

// CatalogServicer defines the contract for unit-cost catalog maintenance
// and region-aware catalog resolution.
type CatalogServicer interface {
	CreateUnitCost(input UnitCostInput) (*models.UnitCost, error)
	UpdateUnitCost(id string, input UnitCostInput) (*models.UnitCost, error)
	DeleteUnitCost(id string) error
	GetUnitCostByID(id string) (*models.UnitCost, error)
	ListUnitCosts(page pagination.PageRequest) (*pagination.PageResponse[models.UnitCost], error)
	// ActiveCosts resolves the requested region (unrecognized input maps to
	// the default region), falling back once to the default region when the
	// resolved region has no active entries. Returns the entries in
	// canonical display order and the region they came from.
	ActiveCosts(requested string) ([]models.UnitCost, models.Region, error)
	// AllActiveCosts returns every active entry regardless of region, in
	// canonical display order.
	AllActiveCosts() ([]models.UnitCost, error)
}

// ComparisonItem is one derived comparison ready for display.
type ComparisonItem struct {
	UnitCost     models.UnitCost `json:"unit_cost"`
	Quantity     int64           `json:"quantity"`
	WealthAmount int64           `json:"wealth_amount"`
	Day          time.Time       `json:"day"`
}

// ComputeOptions controls bulk pre-computation.
type ComputeOptions struct {
	// Reserve is the living-reserve threshold in cents subtracted from each
	// entity's net worth before division.
	Reserve int64
	// SkipZeroQuantityRows elides rows whose quantity is zero. This is a
	// storage-size optimization: with it on, "computed and zero" and "never
	// computed" are indistinguishable from the stored rows alone.
	SkipZeroQuantityRows bool
}

// ComparisonServicer defines the contract for the comparison engine.
type ComparisonServicer interface {
	// Quantity is floor(usableWealth / cost). A non-positive cost is a
	// catalog invariant violation, never silently coerced.
	Quantity(usableWealth int64, cost *models.UnitCost) (int64, error)
	// UsableWealth is amount minus reserve, floored at zero.
	UsableWealth(amount, reserve int64) int64
	// Preview computes comparisons for an arbitrary amount without storing them.
	Preview(amount int64, region string) ([]ComparisonItem, models.Region, error)
	// ComputeAll upserts a comparison row for every (entity with a snapshot
	// at or before day, active unit cost) pair and returns the row count.
	ComputeAll(day time.Time, opts ComputeOptions) (int, error)
	// EntityComparisons returns the precomputed comparisons for an entity's
	// most recent calculation day, scoped to the resolved region's catalog.
	EntityComparisons(entityID string, region string) ([]ComparisonItem, models.Region, error)
}

// FleetStats aggregates the latest snapshot across the tracked population.
type FleetStats struct {
	TotalWealth int64     `json:"total_wealth"`
	EntityCount int       `json:"entity_count"`
	Day         time.Time `json:"day"`
}

// StatsServicer defines the contract for fleet-wide aggregation.
type StatsServicer interface {
	FleetStats() (*FleetStats, error)
}

// RunResult summarizes one ingestion run.
type RunResult struct {
	Success            bool             `json:"success"`
	RecordsCreated     int              `json:"recordsCreated"`
	RecordsUpdated     int              `json:"recordsUpdated"`
	RecordsFailed      int              `json:"recordsFailed"`
	ComparisonsCreated int              `json:"comparisonsCreated"`
	ExecutionTimeMs    int64            `json:"executionTimeMs"`
	Status             models.RunStatus `json:"status"`
	Error              string           `json:"error,omitempty"`
}

// IngestServicer defines the contract for the ingestion pipeline.
type IngestServicer interface {
	// Run executes one full ingestion: fetch, per-record upserts, bulk
	// pre-computation, audit record. The returned RunResult is always
	// populated, even when err is non-nil.
	Run(ctx context.Context) (*RunResult, error)
	ListRuns(page pagination.PageRequest) (*pagination.PageResponse[models.UpdateRun], error)
}

// UserServicer defines the contract for administrator accounts.
type UserServicer interface {
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	// Bootstrap creates the initial admin account when the table is empty.
	Bootstrap(email, password string) error
}
