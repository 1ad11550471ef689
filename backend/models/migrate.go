package models

import "gorm.io/gorm"

// All lists every model in dependency order for AutoMigrate and test teardown.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&UserProfile{},
		&Unit{},
		&Lesson{},
		&Sign{},
		&LessonProgress{},
		&PracticeLevel{},
		&PracticeGame{},
		&PracticeProgress{},
		&HeartPackage{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
