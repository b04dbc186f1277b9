package database

import (
	"blogapi/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models,
// parents first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Author{},
		&models.Post{},
	}
}

// AutoMigrate creates or updates the tables of PersistentModels.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}
