package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "midas/internal/errors"
	"midas/internal/feed"
	"midas/internal/logger"
	"midas/internal/models"
	"midas/internal/pagination"
	"midas/internal/retry"
)

// RunTypeDailyRefresh is the run type recorded for feed-triggered ingestions.
const RunTypeDailyRefresh = "daily_refresh"

// ingestService orchestrates one ingestion run: fetch the feed, upsert
// profiles and snapshots, pre-compute comparisons, record an audit entry.
type ingestService struct {
	db          *gorm.DB
	fetcher     feed.Fetcher
	entities    EntityServicer
	snapshots   SnapshotServicer
	comparisons ComparisonServicer
	settings    SettingsServicer
	now         func() time.Time
}

// NewIngestService creates a new IngestServicer.
func NewIngestService(
	db *gorm.DB,
	fetcher feed.Fetcher,
	entities EntityServicer,
	snapshots SnapshotServicer,
	comparisons ComparisonServicer,
	settings SettingsServicer,
) IngestServicer {
	return &ingestService{
		db:          db,
		fetcher:     fetcher,
		entities:    entities,
		snapshots:   snapshots,
		comparisons: comparisons,
		settings:    settings,
		now:         time.Now,
	}
}

// Run executes one full ingestion. The returned RunResult is always
// populated, even when err is non-nil; the caller reports its counts either
// way. A single bad record never aborts the batch; a fetch failure aborts
// the run before any writes.
func (s *ingestService) Run(ctx context.Context) (*RunResult, error) {
	log := logger.Get()
	startedAt := s.now()
	result := &RunResult{}

	topN := int(s.settings.GetInt64(models.SettingTopNLimit, DefaultTopNLimit))
	reserve := s.settings.GetInt64(models.SettingLivingReserveCents, DefaultLivingReserveCents)
	skipZero := s.settings.GetBool(models.SettingSkipZeroQuantityRows, true)

	records, err := s.fetcher.FetchTop(ctx, topN)
	if err != nil {
		// Aborts before any writes; only the audit entry is recorded.
		appErr := apperrors.Wrap(apperrors.ErrFeedUnavailable, err)
		s.finishRun(result, startedAt, models.RunStatusFailed, appErr.Internal.Error())
		return result, appErr
	}

	day := models.TruncateToDay(s.now())

	for i := range records {
		created, err := s.processRecord(records[i], day)
		if err != nil {
			result.RecordsFailed++
			log.Warnw("record failed, continuing batch",
				"rank", records[i].Rank,
				"name", records[i].Name,
				"error", err,
			)
			continue
		}
		if created {
			result.RecordsCreated++
		} else {
			result.RecordsUpdated++
		}
	}

	comparisonsCreated, err := s.comparisons.ComputeAll(day, ComputeOptions{
		Reserve:              reserve,
		SkipZeroQuantityRows: skipZero,
	})
	result.ComparisonsCreated = comparisonsCreated
	if err != nil {
		s.finishRun(result, startedAt, models.RunStatusFailed, err.Error())
		return result, err
	}

	status := models.RunStatusSuccess
	switch {
	case len(records) > 0 && result.RecordsFailed == len(records):
		status = models.RunStatusFailed
	case result.RecordsFailed > 0:
		status = models.RunStatusPartial
	}

	s.finishRun(result, startedAt, status, "")
	log.Infow("ingestion run completed",
		"status", status,
		"created", result.RecordsCreated,
		"updated", result.RecordsUpdated,
		"failed", result.RecordsFailed,
		"comparisons", result.ComparisonsCreated,
		"duration_ms", result.ExecutionTimeMs,
	)
	return result, nil
}

// processRecord upserts one feed record's profile and snapshot. Store writes
// go through bounded retries; only transient errors are retried.
func (s *ingestService) processRecord(rec feed.Record, day time.Time) (bool, error) {
	var entity *models.Entity
	var created bool

	err := retry.Do(retry.DefaultAttempts, retry.DefaultBaseDelay, func() error {
		var err error
		entity, created, err = s.entities.UpsertFromFeed(rec)
		return err
	})
	if err != nil {
		return false, err
	}

	var rank *int
	if rec.Rank > 0 {
		r := rec.Rank
		rank = &r
	}

	err = retry.Do(retry.DefaultAttempts, retry.DefaultBaseDelay, func() error {
		_, err := s.snapshots.UpsertDaily(entity.ID, day, feed.WorthToCents(rec.Worth), rank, rec.Source)
		return err
	})
	if err != nil {
		return created, err
	}
	return created, nil
}

// finishRun stamps the result and appends the audit entry. Audit failures
// are logged but never override the run outcome.
func (s *ingestService) finishRun(result *RunResult, startedAt time.Time, status models.RunStatus, errMsg string) {
	completedAt := s.now()
	result.Status = status
	result.Success = status == models.RunStatusSuccess
	result.Error = errMsg
	result.ExecutionTimeMs = completedAt.Sub(startedAt).Milliseconds()

	run := &models.UpdateRun{
		RunType:            RunTypeDailyRefresh,
		RecordsCreated:     result.RecordsCreated,
		RecordsUpdated:     result.RecordsUpdated,
		RecordsFailed:      result.RecordsFailed,
		ComparisonsCreated: result.ComparisonsCreated,
		Status:             status,
		ErrorMessage:       errMsg,
		DurationMs:         result.ExecutionTimeMs,
		StartedAt:          startedAt,
		CompletedAt:        completedAt,
	}
	if err := s.db.Create(run).Error; err != nil {
		logger.Get().Errorw("failed to record update run", "error", err, "status", status)
	}
}

// ListRuns returns the ingestion audit trail, most recent first.
func (s *ingestService) ListRuns(page pagination.PageRequest) (*pagination.PageResponse[models.UpdateRun], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.UpdateRun{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var runs []models.UpdateRun
	if err := base.Order("started_at DESC").Scopes(pagination.Paginate(page)).Find(&runs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(runs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
