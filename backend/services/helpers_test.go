package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"senya/backend/models"
	"senya/backend/progression"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

var userSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

func newTestService(t *testing.T, opts ...func(*Options)) (*ProgressionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	o := Options{Clock: progression.FixedClock(testNow), Pick: func(int) int { return 0 }}
	for _, fn := range opts {
		fn(&o)
	}
	return NewProgressionService(db, o), db
}

// seedUser creates an account with a profile. Fields with store defaults are
// written after insert so zero values stick.
func seedUser(t *testing.T, db *gorm.DB, profile models.UserProfile) models.UserProfile {
	t.Helper()
	userSeq++
	account := models.Account{
		Name:         "Test User",
		Username:     fmt.Sprintf("user%d", userSeq),
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	account.Email = account.Username + "@example.com"
	require.NoError(t, db.Create(&account).Error)

	profile.UserID = account.ID
	require.NoError(t, db.Create(&profile).Error)
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", account.ID).
		Updates(map[string]interface{}{
			"hearts":      profile.Hearts,
			"rubies":      profile.Rubies,
			"streak":      profile.Streak,
			"certificate": profile.Certificate,
		}).Error)
	return profile
}

func seedUnit(t *testing.T, db *gorm.DB, title string, order int) models.Unit {
	t.Helper()
	unit := models.Unit{Title: title, OrderIndex: order}
	require.NoError(t, db.Create(&unit).Error)
	return unit
}

func seedLesson(t *testing.T, db *gorm.DB, unitID uint, order, reward int) models.Lesson {
	t.Helper()
	lesson := models.Lesson{UnitID: unitID, Title: "lesson", OrderIndex: order, RubiesReward: reward}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func seedLessonProgress(t *testing.T, db *gorm.DB, userID, lessonID uint, progress int, completed bool) {
	t.Helper()
	row := models.LessonProgress{UserID: userID, LessonID: lessonID, Progress: progress, Completed: completed}
	require.NoError(t, db.Create(&row).Error)
}

func loadProfile(t *testing.T, db *gorm.DB, userID uint) models.UserProfile {
	t.Helper()
	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", userID).Take(&profile).Error)
	return profile
}

func ptr(t time.Time) *time.Time { return &t }
