package database

import (
	"fmt"
	"log"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, repository.ErrNotConfigured
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	if err := VerifyOwnership(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate syncs the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.RefreshToken{},
		&model.InventoryItem{},
		&model.Order{},
		&model.Workspace{},
		&model.AuditLog{},
	)
}

// VerifyOwnership checks that the owner column underpinning multi-tenancy is
// actually present on both data tables. A missing column is a setup problem
// the operator can fix (add the column, backfill) and must surface as such,
// not as a generic query failure.
func VerifyOwnership(db *gorm.DB) error {
	for _, m := range []interface{}{&model.Order{}, &model.InventoryItem{}} {
		if !db.Migrator().HasColumn(m, "owner_id") {
			return fmt.Errorf("%w: %T", repository.ErrSchemaMismatch, m)
		}
	}
	return nil
}
