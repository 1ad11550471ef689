package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account holds credentials and identity. Its profile is created in the
// same transaction and lives as long as the account.
type Account struct {
	gorm.Model
	Name         string      `json:"name"`
	Username     string      `gorm:"uniqueIndex;not null" json:"username"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         Role        `gorm:"default:user" json:"role"`
	Status       string      `gorm:"default:active" json:"status"`
	LastLogin    *time.Time  `json:"last_login,omitempty"`
	Profile      UserProfile `gorm:"foreignKey:UserID" json:"-"`
}

// UserProfile is the per-user economy state mutated by the progression rules.
type UserProfile struct {
	UserID            uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProfileURL        string     `json:"profile_url"`
	Rubies            int        `gorm:"not null;default:0" json:"rubies"`
	Hearts            int        `gorm:"not null;default:5" json:"hearts"`
	HeartsLastUpdated *time.Time `json:"hearts_last_updated"`
	Streak            int        `gorm:"not null;default:0" json:"streak"`
	LastLessonDate    *time.Time `json:"last_lesson_date"`
	LastChallengeDate *time.Time `json:"last_challenge_date"`
	Certificate       bool       `gorm:"not null;default:false" json:"certificate"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
