package models

import "gorm.io/gorm"

type Unit struct {
	gorm.Model
	Title       string   `gorm:"uniqueIndex;not null" json:"title"`
	Description string   `json:"description"`
	OrderIndex  int      `gorm:"index;not null;default:0" json:"order_index"`
	Status      string   `gorm:"default:active" json:"status"`
	Archived    bool     `gorm:"not null;default:false" json:"archived"`
	Lessons     []Lesson `json:"lessons"`
}

type Lesson struct {
	gorm.Model
	UnitID       uint   `gorm:"index;not null" json:"unit_id"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`
	RubiesReward int    `gorm:"not null;default:0" json:"rubies_reward"`
	OrderIndex   int    `gorm:"not null;default:0" json:"order_index"`
	ImageURL     string `json:"image_url"`
	Archived     bool   `gorm:"not null;default:false" json:"archived"`
	Signs        []Sign `json:"signs,omitempty"`
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Sign is the atomic content item of a lesson.
type Sign struct {
	gorm.Model
	LessonID        uint       `gorm:"index;not null" json:"lesson_id"`
	Text            string     `gorm:"not null" json:"text"`
	VideoURL        string     `gorm:"not null" json:"video_url"`
	DifficultyLevel Difficulty `gorm:"default:beginner" json:"difficulty"`
	Archived        bool       `gorm:"not null;default:false" json:"archived"`
}
