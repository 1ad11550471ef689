package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"senya/backend/models"
	"senya/backend/progression"
)

// newFileTestDB opens a file-backed sqlite store that several connections can
// share. Writers take the database lock at BEGIN and wait for each other.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "senya.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

func TestConcurrentCompletionPaysRewardOnce(t *testing.T) {
	db := newFileTestDB(t)
	svc := NewProgressionService(db, Options{Clock: progression.FixedClock(testNow), Retries: 5})

	user := seedUser(t, db, models.UserProfile{Hearts: 5, Rubies: 3})
	unit := seedUnit(t, db, "Unit", 0)
	lesson := seedLesson(t, db, unit.ID, 0, 20)

	const workers = 6
	outcomes := make([]progression.LessonOutcome, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			outcomes[i], errs[i] = svc.UpdateLessonProgress(context.Background(), user.UserID, lesson.ID,
				progression.LessonAnswer{Progress: 100, IsCorrect: true, CurrentQuestion: 6})
		}(i)
	}
	close(start)
	wg.Wait()

	paid := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, outcomes[i].Completed)
		if outcomes[i].RubiesEarned > 0 {
			assert.Equal(t, 20, outcomes[i].RubiesEarned)
			paid++
		}
	}
	assert.Equal(t, 1, paid)

	profile := loadProfile(t, db, user.UserID)
	assert.Equal(t, 23, profile.Rubies)
	assert.Equal(t, 1, profile.Streak)

	var rows int64
	require.NoError(t, db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.UserID, lesson.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
