package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"midas/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day returns a UTC calendar day n days before today.
func Day(daysAgo int) time.Time {
	return models.TruncateToDay(time.Now()).AddDate(0, 0, -daysAgo)
}

// CreateTestUser creates an active admin user with a hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("admin%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEntity creates an entity with a unique slug.
func CreateTestEntity(t *testing.T, db *gorm.DB) *models.Entity {
	t.Helper()

	n := nextID()
	entity := &models.Entity{
		Slug:    fmt.Sprintf("test-entity-%d", n),
		Name:    fmt.Sprintf("Test Entity %d", n),
		Country: "United States",
	}
	if err := db.Create(entity).Error; err != nil {
		t.Fatalf("failed to create test entity: %v", err)
	}
	return entity
}

// CreateTestSnapshot creates a snapshot for (entity, day) with the given
// amount in cents. Rank defaults to 1; DailyChange stays NULL.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, entityID string, day time.Time, amount int64) *models.WealthSnapshot {
	t.Helper()

	rank := 1
	snapshot := &models.WealthSnapshot{
		EntityID: entityID,
		Day:      models.TruncateToDay(day),
		Amount:   amount,
		Rank:     &rank,
		Source:   "test",
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snapshot
}

// CreateTestUnitCost creates an active unit cost in the given region with
// the given cost in cents.
func CreateTestUnitCost(t *testing.T, db *gorm.DB, region models.Region, cost int64) *models.UnitCost {
	t.Helper()

	n := nextID()
	uc := &models.UnitCost{
		Name:     fmt.Sprintf("Test Cost %d", n),
		Cost:     cost,
		Unit:     "unit",
		Region:   region,
		Category: models.CostCategoryHealth,
		IsActive: true,
		Priority: int(n),
	}
	if err := db.Create(uc).Error; err != nil {
		t.Fatalf("failed to create test unit cost: %v", err)
	}
	return uc
}

// CreateTestSetting creates or replaces a settings row.
func CreateTestSetting(t *testing.T, db *gorm.DB, key, value string) *models.Setting {
	t.Helper()

	setting := &models.Setting{Key: key, Value: value}
	if err := db.Where("key = ?", key).Assign(models.Setting{Value: value}).FirstOrCreate(setting).Error; err != nil {
		t.Fatalf("failed to create test setting: %v", err)
	}
	return setting
}
