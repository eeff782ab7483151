package services

import (
	"testing"

	"midas/internal/models"
	"midas/internal/testutil"
)

func TestUpsertDaily(t *testing.T) {
	t.Run("first_snapshot_has_null_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		rank := 1
		snapshot, err := svc.UpsertDaily(entity.ID, testutil.Day(0), 50_000_000_000, &rank, "feed")
		testutil.AssertNoError(t, err)

		if snapshot.DailyChange != nil {
			t.Errorf("expected NULL daily change without a prior day, got %d", *snapshot.DailyChange)
		}
		if snapshot.Amount != 50_000_000_000 {
			t.Errorf("expected amount 50000000000, got %d", snapshot.Amount)
		}
	})

	t.Run("change_computed_against_prior_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		_, err := svc.UpsertDaily(entity.ID, testutil.Day(1), 50_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		snapshot, err := svc.UpsertDaily(entity.ID, testutil.Day(0), 60_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		if snapshot.DailyChange == nil {
			t.Fatal("expected a daily change with a prior-day snapshot")
		}
		if *snapshot.DailyChange != 10_000_000_000 {
			t.Errorf("expected change 10000000000, got %d", *snapshot.DailyChange)
		}
	})

	t.Run("unchanged_amount_is_zero_not_null", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		_, err := svc.UpsertDaily(entity.ID, testutil.Day(1), 50_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		snapshot, err := svc.UpsertDaily(entity.ID, testutil.Day(0), 50_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		if snapshot.DailyChange == nil {
			t.Fatal("expected zero change, not NULL, when the prior day exists")
		}
		if *snapshot.DailyChange != 0 {
			t.Errorf("expected change 0, got %d", *snapshot.DailyChange)
		}
	})

	t.Run("gap_yields_null_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		// Data from three days ago, nothing yesterday: the change must not
		// be computed against the stale snapshot.
		_, err := svc.UpsertDaily(entity.ID, testutil.Day(3), 50_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		snapshot, err := svc.UpsertDaily(entity.ID, testutil.Day(0), 60_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		if snapshot.DailyChange != nil {
			t.Errorf("expected NULL change across a data gap, got %d", *snapshot.DailyChange)
		}
	})

	t.Run("same_day_rerun_overwrites", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		_, err := svc.UpsertDaily(entity.ID, testutil.Day(0), 50_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		snapshot, err := svc.UpsertDaily(entity.ID, testutil.Day(0), 55_000_000_000, nil, "feed")
		testutil.AssertNoError(t, err)

		if snapshot.Amount != 55_000_000_000 {
			t.Errorf("expected overwritten amount, got %d", snapshot.Amount)
		}

		var count int64
		db.Model(&models.WealthSnapshot{}).Where("entity_id = ?", entity.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 row per (entity, day), got %d", count)
		}
	})
}

func TestGetHistory(t *testing.T) {
	t.Run("rejects_out_of_range_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		for _, days := range []int{0, -1, 366} {
			_, err := svc.GetHistory(entity.ID, days)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("returns_window_ascending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(5), 100)
		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(2), 200)
		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(0), 300)

		history, err := svc.GetHistory(entity.ID, 3)
		testutil.AssertNoError(t, err)

		if len(history) != 2 {
			t.Fatalf("expected 2 snapshots inside a 3-day window, got %d", len(history))
		}
		if history[0].Amount != 200 || history[1].Amount != 300 {
			t.Errorf("expected ascending day order, got amounts %d, %d", history[0].Amount, history[1].Amount)
		}
	})

	t.Run("empty_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		history, err := svc.GetHistory(entity.ID, 30)
		testutil.AssertNoError(t, err)
		if len(history) != 0 {
			t.Errorf("expected empty history, got %d rows", len(history))
		}
	})
}

func TestLatestAtOrBefore(t *testing.T) {
	t.Run("picks_most_recent_within_bound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(4), 100)
		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(2), 200)
		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(0), 300)

		snapshot, err := svc.LatestAtOrBefore(entity.ID, testutil.Day(1))
		testutil.AssertNoError(t, err)
		if snapshot.Amount != 200 {
			t.Errorf("expected the day-2 snapshot, got amount %d", snapshot.Amount)
		}
	})

	t.Run("no_snapshot_at_or_before", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(0), 100)

		_, err := svc.LatestAtOrBefore(entity.ID, testutil.Day(2))
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})
}

func TestLatestDay(t *testing.T) {
	t.Run("empty_series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)

		_, err := svc.LatestDay()
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("returns_max_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db)
		entity := testutil.CreateTestEntity(t, db)

		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(3), 100)
		testutil.CreateTestSnapshot(t, db, entity.ID, testutil.Day(1), 200)

		day, err := svc.LatestDay()
		testutil.AssertNoError(t, err)
		if !day.Equal(testutil.Day(1)) {
			t.Errorf("expected day %v, got %v", testutil.Day(1), day)
		}
	})
}
