package services

import (
	"context"

	"gorm.io/gorm"

	"senya/backend/models"
)

func activeSigns(db *gorm.DB) *gorm.DB {
	return db.Where("archived = ?", false).Order("id")
}

// Lessons lists every active lesson ordered by order_index.
func (s *ProgressionService) Lessons(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.read(ctx).Where("archived = ?", false).Order("order_index, id").Find(&lessons).Error
	return lessons, classify(err)
}

// LessonDetail is an active lesson with its active signs. VideoURL is the
// first sign's video and serves as the lesson preview.
type LessonDetail struct {
	models.Lesson
	VideoURL string `json:"video_url,omitempty"`
}

func (s *ProgressionService) Lesson(ctx context.Context, lessonID uint) (LessonDetail, error) {
	db := s.read(ctx)
	lesson, err := activeLesson(db, lessonID)
	if err != nil {
		return LessonDetail{}, classify(err)
	}
	if err := db.Scopes(activeSigns).Where("lesson_id = ?", lessonID).Find(&lesson.Signs).Error; err != nil {
		return LessonDetail{}, classify(err)
	}
	detail := LessonDetail{Lesson: lesson}
	if len(lesson.Signs) > 0 {
		detail.VideoURL = lesson.Signs[0].VideoURL
	}
	return detail, nil
}

// ContentTree returns active units, their active lessons and those lessons'
// active signs, each level in display order.
func (s *ProgressionService) ContentTree(ctx context.Context) ([]models.Unit, error) {
	var units []models.Unit
	err := s.read(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("archived = ?", false).Order("order_index")
		}).
		Preload("Lessons.Signs", activeSigns).
		Where("archived = ?", false).
		Order("order_index").
		Find(&units).Error
	return units, classify(err)
}
