package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for all repository models. Used by
// cmd/seed and the test suites; production deployments run it at startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&propertyModel{},
		&bookingModel{},
		&favoriteModel{},
	)
}
