package services

import (
	"strconv"
	"testing"

	"midas/internal/models"
	"midas/internal/testutil"
)

func TestSettingsSeed(t *testing.T) {
	t.Run("seeds_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		testutil.AssertNoError(t, svc.Seed())

		reserve, err := svc.Get(models.SettingLivingReserveCents)
		testutil.AssertNoError(t, err)
		if reserve != strconv.FormatInt(DefaultLivingReserveCents, 10) {
			t.Errorf("expected default reserve, got %s", reserve)
		}

		topN, err := svc.Get(models.SettingTopNLimit)
		testutil.AssertNoError(t, err)
		if topN != "50" {
			t.Errorf("expected default top-n 50, got %s", topN)
		}

		skip, err := svc.Get(models.SettingSkipZeroQuantityRows)
		testutil.AssertNoError(t, err)
		if skip != "true" {
			t.Errorf("expected skip-zero default true, got %s", skip)
		}
	})

	t.Run("preserves_existing_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		testutil.CreateTestSetting(t, db, models.SettingTopNLimit, "25")
		testutil.AssertNoError(t, svc.Seed())

		value, err := svc.Get(models.SettingTopNLimit)
		testutil.AssertNoError(t, err)
		if value != "25" {
			t.Errorf("seed must not overwrite existing values, got %s", value)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		testutil.AssertNoError(t, svc.Seed())
		testutil.AssertNoError(t, svc.Seed())

		var count int64
		db.Model(&models.Setting{}).Count(&count)
		if count != 3 {
			t.Errorf("expected 3 settings rows after double seed, got %d", count)
		}
	})
}

func TestSettingsGet(t *testing.T) {
	t.Run("missing_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		_, err := svc.Get("no_such_key")
		testutil.AssertAppError(t, err, "SETTING_NOT_FOUND")
	})
}

func TestSettingsGetInt64(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)

	testutil.CreateTestSetting(t, db, "numeric", "42")
	testutil.CreateTestSetting(t, db, "garbage", "not-a-number")

	if got := svc.GetInt64("numeric", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := svc.GetInt64("garbage", 7); got != 7 {
		t.Errorf("expected fallback 7 for unparsable value, got %d", got)
	}
	if got := svc.GetInt64("missing", 7); got != 7 {
		t.Errorf("expected fallback 7 for missing key, got %d", got)
	}
}

func TestSettingsGetBool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)

	testutil.CreateTestSetting(t, db, "on", "true")
	testutil.CreateTestSetting(t, db, "off", "0")
	testutil.CreateTestSetting(t, db, "garbage", "maybe")

	if !svc.GetBool("on", false) {
		t.Error("expected true for value true")
	}
	if svc.GetBool("off", true) {
		t.Error("expected false for value 0")
	}
	if !svc.GetBool("garbage", true) {
		t.Error("expected fallback true for unparsable value")
	}
	if svc.GetBool("missing", false) {
		t.Error("expected fallback false for missing key")
	}
}

func TestSettingsSet(t *testing.T) {
	t.Run("creates_then_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		setting, err := svc.Set(models.SettingTopNLimit, "100")
		testutil.AssertNoError(t, err)
		if setting.Value != "100" {
			t.Errorf("expected value 100, got %s", setting.Value)
		}

		setting, err = svc.Set(models.SettingTopNLimit, "200")
		testutil.AssertNoError(t, err)
		if setting.Value != "200" {
			t.Errorf("expected value 200, got %s", setting.Value)
		}

		var count int64
		db.Model(&models.Setting{}).Where("key = ?", models.SettingTopNLimit).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row per key, got %d", count)
		}
	})

	t.Run("empty_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		_, err := svc.Set("  ", "value")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSettingsList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)

	testutil.CreateTestSetting(t, db, "b_key", "2")
	testutil.CreateTestSetting(t, db, "a_key", "1")

	settings, err := svc.List()
	testutil.AssertNoError(t, err)
	if len(settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(settings))
	}
	if settings[0].Key != "a_key" {
		t.Errorf("expected key-ordered list, got %s first", settings[0].Key)
	}
}
