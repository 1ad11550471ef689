package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senya/backend/models"
	"senya/backend/progression"
)

func seedPractice(t *testing.T, svc *ProgressionService) (models.PracticeLevel, models.PracticeGame) {
	t.Helper()
	level := models.PracticeLevel{Name: "Intermediate Signs", OrderIndex: 0}
	require.NoError(t, svc.db.Create(&level).Error)
	game := models.PracticeGame{LevelID: level.ID, GameIdentifier: "sign-match", Name: "Sign Match"}
	require.NoError(t, svc.db.Create(&game).Error)
	return level, game
}

func TestUpdatePracticeScoreHighScore(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, models.UserProfile{Hearts: 4, Rubies: 1})
	level, game := seedPractice(t, svc)
	require.NoError(t, db.Create(&models.PracticeProgress{
		UserID: user.UserID, LevelID: level.ID, GameID: game.ID, HighScore: 50, Progress: 50,
	}).Error)

	out, err := svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: level.ID, GameID: "sign-match", Score: 160})
	require.NoError(t, err)
	assert.Equal(t, 100, out.LevelProgress)
	assert.Equal(t, 160, out.GameHighScore)
	assert.Equal(t, 30, out.RubiesEarned)
	assert.Equal(t, 31, out.TotalRubies)
	assert.Equal(t, 4, out.Hearts)
	assert.True(t, out.Completed)

	var row models.PracticeProgress
	require.NoError(t, db.Where("user_id = ? AND game_id = ?", user.UserID, game.ID).Take(&row).Error)
	assert.Equal(t, 160, row.HighScore)
	assert.Equal(t, 100, row.Progress)
	assert.True(t, row.Completed)

	out, err = svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: level.ID, GameID: "sign-match", Score: 40, HeartsLost: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Hearts, "a failing score costs one heart")
	assert.Equal(t, 100, out.LevelProgress)
	assert.Equal(t, 160, out.GameHighScore)
	assert.True(t, out.Completed)
	assert.Zero(t, out.RubiesEarned)
}

func TestUpdatePracticeScoreFirstRound(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, models.UserProfile{Hearts: 5})
	level, _ := seedPractice(t, svc)

	out, err := svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: level.ID, GameID: "sign-match", Score: 75, HeartsLost: 2})
	require.NoError(t, err)
	assert.Equal(t, 75, out.LevelProgress)
	assert.Equal(t, 6, out.RubiesEarned, "tier reward only, no bonus on a first score")
	assert.Equal(t, 3, out.Hearts)
	assert.False(t, out.Completed)
}

func TestUpdatePracticeScoreErrors(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, models.UserProfile{Hearts: 5, Rubies: 7})
	level, _ := seedPractice(t, svc)

	_, err := svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: level.ID, GameID: "nope", Score: 90})
	assert.ErrorIs(t, err, progression.ErrInvalidInput)

	_, err = svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: 404, GameID: "sign-match", Score: 90})
	assert.ErrorIs(t, err, progression.ErrNotFound)

	_, err = svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: level.ID, GameID: "sign-match", Score: -1})
	assert.ErrorIs(t, err, progression.ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&models.PracticeProgress{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 7, loadProfile(t, db, user.UserID).Rubies)
}

func TestPracticeLevelsView(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, models.UserProfile{Hearts: 5})
	level, _ := seedPractice(t, svc)
	second := models.PracticeGame{LevelID: level.ID, GameIdentifier: "speed-sign", Name: "Speed"}
	require.NoError(t, db.Create(&second).Error)
	locked := models.PracticeLevel{Name: "Advanced", OrderIndex: 1, RequiredProgress: 40}
	require.NoError(t, db.Create(&locked).Error)

	_, err := svc.UpdatePracticeScore(ctx, user.UserID, progression.PracticeRound{LevelID: level.ID, GameID: "speed-sign", Score: 85})
	require.NoError(t, err)

	view, err := svc.PracticeLevels(ctx, user.UserID)
	require.NoError(t, err)
	assert.Zero(t, view.OverallProgress)
	require.Len(t, view.Levels, 2)

	first := view.Levels[0]
	assert.True(t, first.Unlocked)
	assert.Equal(t, 85, first.Progress)
	require.Len(t, first.Games, 2)
	for _, g := range first.Games {
		if g.ID == "speed-sign" {
			assert.Equal(t, 85, g.UserProgress.HighScore)
			assert.True(t, g.UserProgress.Completed)
		} else {
			assert.Zero(t, g.UserProgress.HighScore)
		}
	}
	assert.False(t, view.Levels[1].Unlocked)
}

func TestPracticeSigns(t *testing.T) {
	svc, db := newTestService(t)
	unit := seedUnit(t, db, "Unit", 0)
	lesson := seedLesson(t, db, unit.ID, 0, 5)
	for _, s := range []models.Sign{
		{LessonID: lesson.ID, Text: "a", VideoURL: "a.mp4", DifficultyLevel: models.DifficultyBeginner},
		{LessonID: lesson.ID, Text: "b", VideoURL: "b.mp4", DifficultyLevel: models.DifficultyAdvanced},
		{LessonID: lesson.ID, Text: "c", VideoURL: "c.mp4", DifficultyLevel: models.DifficultyAdvanced, Archived: true},
	} {
		sign := s
		require.NoError(t, db.Create(&sign).Error)
	}

	signs, err := svc.PracticeSigns(context.Background(), models.DifficultyAdvanced)
	require.NoError(t, err)
	require.Len(t, signs, 1)
	assert.Equal(t, "b", signs[0].Text)

	signs, err = svc.PracticeSigns(context.Background(), models.Difficulty("expert"))
	require.NoError(t, err)
	require.Len(t, signs, 1)
	assert.Equal(t, "a", signs[0].Text)
}
