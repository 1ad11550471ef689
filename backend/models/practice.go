package models

import "gorm.io/gorm"

type PracticeLevel struct {
	gorm.Model
	Name             string         `gorm:"not null" json:"name"`
	Description      string         `json:"description"`
	RequiredProgress int            `gorm:"not null;default:0" json:"required_progress"`
	OrderIndex       int            `gorm:"not null;default:0" json:"order_index"`
	Games            []PracticeGame `gorm:"foreignKey:LevelID" json:"games"`
}

type PracticeGame struct {
	gorm.Model
	LevelID        uint   `gorm:"index;not null" json:"level_id"`
	GameIdentifier string `gorm:"size:50;not null;index" json:"game_identifier"`
	Name           string `gorm:"not null" json:"name"`
	Description    string `json:"description"`
}
