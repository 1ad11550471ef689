package models

type HeartPackage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	HeartsAmount int    `gorm:"not null" json:"hearts_amount"`
	RubyCost     int    `gorm:"not null" json:"ruby_cost"`
}
