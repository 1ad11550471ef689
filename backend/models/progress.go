package models

import "time"

// LessonProgress is created lazily on a user's first answer in a lesson.
type LessonProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_lesson" json:"user_id"`
	LessonID     uint      `gorm:"not null;uniqueIndex:idx_user_lesson" json:"lesson_id"`
	Progress     int       `gorm:"not null;default:0" json:"progress"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"`
	LastQuestion int       `gorm:"not null;default:0" json:"last_question"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PracticeProgress tracks one (user, level, game) triple.
type PracticeProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_level_game" json:"user_id"`
	LevelID   uint      `gorm:"not null;uniqueIndex:idx_user_level_game" json:"level_id"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_user_level_game" json:"game_id"`
	HighScore int       `gorm:"not null;default:0" json:"high_score"`
	Progress  int       `gorm:"not null;default:0" json:"progress"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }

func (PracticeProgress) TableName() string { return "user_practice_progress" }

type UnitProgress struct {
	ProgressPercentage float64 `json:"progress_percentage"`
	CompletedLessons   int     `json:"completed_lessons"`
	TotalLessons       int     `json:"total_lessons"`
}
