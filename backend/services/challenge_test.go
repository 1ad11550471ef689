package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senya/backend/models"
	"senya/backend/progression"
)

func TestDailyChallenge(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, models.UserProfile{Hearts: 5, Streak: 4, LastChallengeDate: ptr(testNow.AddDate(0, 0, -1))})
	unit := seedUnit(t, db, "Unit", 0)
	lesson := seedLesson(t, db, unit.ID, 0, 5)

	_, err := svc.DailyChallenge(ctx, user.UserID)
	assert.ErrorIs(t, err, progression.ErrNotFound)

	seedLessonProgress(t, db, user.UserID, lesson.ID, 100, true)
	picked, err := svc.DailyChallenge(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, lesson.ID, picked.ID)

	res, err := svc.CompleteDailyChallenge(ctx, user.UserID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, DailyChallengeRubies, res.RubiesEarned)
	assert.Equal(t, 10, res.Rubies)
	assert.Equal(t, 5, res.Streak)

	res, err = svc.CompleteDailyChallenge(ctx, user.UserID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 10, res.Rubies)
	assert.Equal(t, 5, res.Streak)

	_, err = svc.DailyChallenge(ctx, user.UserID)
	assert.ErrorIs(t, err, progression.ErrAlreadyDone)
}

func TestDailyChallengeStreakResetsAfterGap(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, models.UserProfile{Hearts: 5, Streak: 9, LastChallengeDate: ptr(testNow.AddDate(0, 0, -3))})

	res, err := svc.CompleteDailyChallenge(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)
}

func TestPurchaseHearts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, models.UserProfile{Hearts: 3, Rubies: 12})
	pkg := models.HeartPackage{Name: "Refill", HeartsAmount: 5, RubyCost: 10}
	require.NoError(t, db.Create(&pkg).Error)

	res, err := svc.PurchaseHearts(ctx, user.UserID, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, progression.MaxHearts, res.Hearts)
	assert.Equal(t, 2, res.Rubies)

	_, err = svc.PurchaseHearts(ctx, user.UserID, pkg.ID)
	assert.ErrorIs(t, err, progression.ErrInsufficientRubies)
	assert.Equal(t, 2, loadProfile(t, db, user.UserID).Rubies)

	_, err = svc.PurchaseHearts(ctx, user.UserID, 404)
	assert.ErrorIs(t, err, progression.ErrNotFound)

	packages, err := svc.HeartPackages(ctx)
	require.NoError(t, err)
	assert.Len(t, packages, 1)
}

func TestIssueCertificate(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, models.UserProfile{Hearts: 5})

	cert, err := svc.IssueCertificate(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", cert.Name)
	assert.Equal(t, "SSL-1-1710504000", cert.CertificateID)
	assert.True(t, loadProfile(t, db, user.UserID).Certificate)

	_, err = svc.IssueCertificate(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.True(t, loadProfile(t, db, user.UserID).Certificate)
}

func TestWalletDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	w, err := svc.Wallet(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, Wallet{Hearts: progression.MaxHearts}, w)
}
