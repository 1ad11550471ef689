package services

import (
	"context"

	"gorm.io/gorm"

	"senya/backend/models"
)

// performanceLimit caps each user-performance ranking.
const performanceLimit = 5

// AnalyticsService answers the admin dashboard queries. All reads, no locks.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type ArchivedCounts struct {
	Units   int64 `json:"units"`
	Lessons int64 `json:"lessons"`
	Signs   int64 `json:"signs"`
}

// DashboardSummary counts active content; Archived counts the rest.
type DashboardSummary struct {
	Units       int64          `json:"units"`
	Lessons     int64          `json:"lessons"`
	Signs       int64          `json:"signs"`
	Archived    ArchivedCounts `json:"archived"`
	TotalRubies int64          `json:"total_rubies"`
}

// Summary returns content counts and the rubies obtainable from active lessons.
func (s *AnalyticsService) Summary(ctx context.Context) (DashboardSummary, error) {
	db := s.db.WithContext(ctx)
	var sum DashboardSummary

	counts := []struct {
		model    interface{}
		archived bool
		dest     *int64
	}{
		{&models.Unit{}, false, &sum.Units},
		{&models.Unit{}, true, &sum.Archived.Units},
		{&models.Lesson{}, false, &sum.Lessons},
		{&models.Lesson{}, true, &sum.Archived.Lessons},
		{&models.Sign{}, false, &sum.Signs},
		{&models.Sign{}, true, &sum.Archived.Signs},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("archived = ?", c.archived).Count(c.dest).Error; err != nil {
			return sum, classify(err)
		}
	}

	err := db.Model(&models.Lesson{}).
		Select("COALESCE(SUM(rubies_reward), 0)").
		Where("archived = ?", false).
		Scan(&sum.TotalRubies).Error
	return sum, classify(err)
}

type UnitLessonCount struct {
	UnitID      uint   `json:"unit_id"`
	UnitTitle   string `json:"unit_title"`
	LessonCount int64  `json:"lesson_count"`
}

// LessonsPerUnit counts active lessons for every active unit, including
// units that have none.
func (s *AnalyticsService) LessonsPerUnit(ctx context.Context) ([]UnitLessonCount, error) {
	rows := []UnitLessonCount{}
	err := s.db.WithContext(ctx).Model(&models.Unit{}).
		Select("units.id AS unit_id, units.title AS unit_title, COUNT(lessons.id) AS lesson_count").
		Joins("LEFT JOIN lessons ON lessons.unit_id = units.id AND lessons.archived = ? AND lessons.deleted_at IS NULL", false).
		Where("units.archived = ?", false).
		Group("units.id, units.title, units.order_index").
		Order("units.order_index, units.id").
		Scan(&rows).Error
	return rows, classify(err)
}

type LessonSignCount struct {
	LessonID    uint   `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
	SignCount   int64  `json:"sign_count"`
}

// SignsPerLesson counts active signs for every active lesson.
func (s *AnalyticsService) SignsPerLesson(ctx context.Context) ([]LessonSignCount, error) {
	rows := []LessonSignCount{}
	err := s.db.WithContext(ctx).Model(&models.Lesson{}).
		Select("lessons.id AS lesson_id, lessons.title AS lesson_title, COUNT(signs.id) AS sign_count").
		Joins("LEFT JOIN signs ON signs.lesson_id = lessons.id AND signs.archived = ? AND signs.deleted_at IS NULL", false).
		Where("lessons.archived = ?", false).
		Group("lessons.id, lessons.title, lessons.order_index").
		Order("lessons.order_index, lessons.id").
		Scan(&rows).Error
	return rows, classify(err)
}

// SignsByDifficulty counts active signs per difficulty. Every known level is
// present, with zero when no sign uses it.
func (s *AnalyticsService) SignsByDifficulty(ctx context.Context) (map[models.Difficulty]int64, error) {
	var rows []struct {
		DifficultyLevel models.Difficulty
		Count           int64
	}
	err := s.db.WithContext(ctx).Model(&models.Sign{}).
		Select("difficulty_level, COUNT(*) AS count").
		Where("archived = ?", false).
		Group("difficulty_level").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	summary := map[models.Difficulty]int64{
		models.DifficultyBeginner:     0,
		models.DifficultyIntermediate: 0,
		models.DifficultyAdvanced:     0,
	}
	for _, row := range rows {
		if _, ok := summary[row.DifficultyLevel]; ok {
			summary[row.DifficultyLevel] = row.Count
		}
	}
	return summary, nil
}

type LessonFailCount struct {
	LessonID    uint   `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
	FailCount   int64  `json:"fail_count"`
}

type LessonAverage struct {
	LessonID    uint    `json:"lesson_id"`
	LessonTitle string  `json:"lesson_title"`
	AvgProgress float64 `json:"avg_progress"`
}

// UserPerformance ranks lessons learners struggle with.
type UserPerformance struct {
	// MostFailed: most started-but-not-completed progress rows.
	MostFailed []LessonFailCount `json:"most_failed"`
	// LowestProgress: lowest mean progress over learners who started.
	LowestProgress []LessonAverage `json:"lowest_progress"`
}

func (s *AnalyticsService) UserPerformance(ctx context.Context) (UserPerformance, error) {
	db := s.db.WithContext(ctx)
	perf := UserPerformance{MostFailed: []LessonFailCount{}, LowestProgress: []LessonAverage{}}

	err := db.Model(&models.LessonProgress{}).
		Select("lesson_progress.lesson_id, lessons.title AS lesson_title, COUNT(*) AS fail_count").
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.completed = ?", false).
		Group("lesson_progress.lesson_id, lessons.title").
		Order("fail_count DESC, lesson_progress.lesson_id").
		Limit(performanceLimit).
		Scan(&perf.MostFailed).Error
	if err != nil {
		return perf, classify(err)
	}

	err = db.Model(&models.LessonProgress{}).
		Select("lesson_progress.lesson_id, lessons.title AS lesson_title, AVG(lesson_progress.progress) AS avg_progress").
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Group("lesson_progress.lesson_id, lessons.title").
		Order("avg_progress ASC, lesson_progress.lesson_id").
		Limit(performanceLimit).
		Scan(&perf.LowestProgress).Error
	return perf, classify(err)
}
