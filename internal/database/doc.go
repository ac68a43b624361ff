// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── settings/        # Key/value settings (durable quote state lives here)
//
// The quote collection is not normalised into its own table. It is stored as
// a single JSON document under the "quotes" settings key, next to
// "selectedCategory" and the quote sync status keys:
//
//	db, err := database.NewDatabase("./quotes.db")
//	repo := db.Settings()
//	raw, found, err := repo.Get(entities.SettingKeyQuotes)
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to the AutoMigrate call in database.go
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
