package models

import (
	"gorm.io/gorm"
)

// Migrate runs migrations for all application models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Message{}, &Follow{}, &Like{})
}
